package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kornnellio/adventuretime-sub001/internal/models"
	"github.com/kornnellio/adventuretime-sub001/internal/services"
)

// ValidateCoupon answers the checkout coupon form. A wrong code is a 200
// with valid:false; only infrastructure failures are errors.
func ValidateCoupon(cs *services.CouponService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Code        string  `json:"code"`
			AdventureID string  `json:"adventureId"`
			BasePrice   float64 `json:"basePrice"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		result, err := cs.Validate(c.Request.Context(), req.Code, req.AdventureID, req.BasePrice)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(result, ""))
	}
}

func CreateCoupon(cs *services.CouponService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var coupon models.Coupon
		if err := c.ShouldBindJSON(&coupon); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		created, err := cs.CreateCoupon(c.Request.Context(), &coupon)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(created, "Coupon created successfully"))
	}
}

func ListCoupons(cs *services.CouponService) gin.HandlerFunc {
	return func(c *gin.Context) {
		offsetInt, limitInt, ok := pagination(c)
		if !ok {
			return
		}

		coupons, total, err := cs.ListCoupons(c.Request.Context(), offsetInt, limitInt)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		page := (offsetInt / limitInt) + 1
		c.JSON(http.StatusOK, models.PaginatedResponse(coupons, page, limitInt, total))
	}
}

func DeactivateCoupon(cs *services.CouponService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid coupon ID format"))
			return
		}

		if err := cs.DeactivateCoupon(c.Request.Context(), id); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Coupon deactivated"))
	}
}

func DeleteCoupon(cs *services.CouponService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid coupon ID format"))
			return
		}

		if err := cs.DeleteCoupon(c.Request.Context(), id); err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Coupon deleted successfully"))
	}
}
