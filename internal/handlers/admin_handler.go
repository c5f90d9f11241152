package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kornnellio/adventuretime-sub001/internal/models"
	"github.com/kornnellio/adventuretime-sub001/internal/services"
)

func ListUsers(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		offsetInt, limitInt, ok := pagination(c)
		if !ok {
			return
		}

		users, total, err := us.ListUsers(c.Request.Context(), offsetInt, limitInt)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		page := (offsetInt / limitInt) + 1
		c.JSON(http.StatusOK, models.PaginatedResponse(users, page, limitInt, total))
	}
}

func GetUserOrders(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid user ID format"))
			return
		}

		orders, err := us.GetUserOrders(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		if orders == nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse("user not found"))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(orders, ""))
	}
}

// ListAllBookings is the staff view across customers, optionally filtered by
// raw status.
func ListAllBookings(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		offsetInt, limitInt, ok := pagination(c)
		if !ok {
			return
		}

		bookings, total, err := bs.ListBookings(c.Request.Context(), c.Query("status"), offsetInt, limitInt)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		views := make([]models.BookingView, 0, len(bookings))
		for _, b := range bookings {
			views = append(views, b.View())
		}

		page := (offsetInt / limitInt) + 1
		c.JSON(http.StatusOK, models.PaginatedResponse(views, page, limitInt, total))
	}
}

func UpdateBookingStatus(bs *services.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid booking ID format"))
			return
		}

		var body struct {
			Status string `json:"status"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		booking, err := bs.UpdateBookingStatus(c.Request.Context(), id, body.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}
		if booking == nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse("booking not found"))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(booking.View(), "Booking status updated"))
	}
}

func ListVouchers(vs *services.VoucherService) gin.HandlerFunc {
	return func(c *gin.Context) {
		offsetInt, limitInt, ok := pagination(c)
		if !ok {
			return
		}

		vouchers, total, err := vs.ListVouchers(c.Request.Context(), offsetInt, limitInt)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}

		page := (offsetInt / limitInt) + 1
		c.JSON(http.StatusOK, models.PaginatedResponse(vouchers, page, limitInt, total))
	}
}
