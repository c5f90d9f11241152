package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kornnellio/adventuretime-sub001/internal/helpers"
	"github.com/kornnellio/adventuretime-sub001/internal/models"
	"github.com/kornnellio/adventuretime-sub001/internal/payments"
	"github.com/kornnellio/adventuretime-sub001/internal/services"
)

// requireClaims pulls the authenticated user's claims and parsed ID off the
// context. Writes the error response itself when they are missing.
func requireClaims(c *gin.Context) (*helpers.CustomClaims, uuid.UUID, bool) {
	userClaims, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse("unauthorized"))
		return nil, uuid.Nil, false
	}

	claims, ok := userClaims.(*helpers.CustomClaims)
	if !ok {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse("invalid user claims"))
		return nil, uuid.Nil, false
	}

	userID, err := uuid.Parse(claims.UserID())
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid user ID in token"))
		return nil, uuid.Nil, false
	}
	return claims, userID, true
}

func Checkout(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, userID, ok := requireClaims(c)
		if !ok {
			return
		}

		var req services.CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		result, err := bs.Checkout(c.Request.Context(), userID, req)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(result, "Checkout started"))
	}
}

func AttachPhone(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, userID, ok := requireClaims(c)
		if !ok {
			return
		}

		intentID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid intent ID format"))
			return
		}

		var body struct {
			Phone string `json:"phone"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		intent, err := bs.AttachPhone(c.Request.Context(), userID, intentID, body.Phone)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}
		if intent == nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse("payment intent not found"))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(intent, "Phone number saved"))
	}
}

// PaymentCallback receives the provider's server-to-server notification for
// booking payments. The provider only needs a 200; errors are reported so it
// retries.
func PaymentCallback(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := c.Request.ParseForm(); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid callback payload"))
			return
		}

		if err := bs.HandleCallback(c.Request.Context(), c.Request.PostForm); err != nil {
			if err == payments.ErrBadSignature {
				c.JSON(http.StatusUnauthorized, models.ErrorResponse(err.Error()))
				return
			}
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "OK"))
	}
}

func IntentStatus(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, userID, ok := requireClaims(c)
		if !ok {
			return
		}

		intentID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid intent ID format"))
			return
		}

		payload, err := bs.IntentStatus(c.Request.Context(), userID, intentID, claims.IsAdmin())
		if err != nil {
			c.JSON(http.StatusForbidden, models.ErrorResponse(err.Error()))
			return
		}
		if payload == nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse("payment intent not found"))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(payload, ""))
	}
}

func ListMyBookings(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, userID, ok := requireClaims(c)
		if !ok {
			return
		}

		views, err := bs.ListUserBookings(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(views, ""))
	}
}
