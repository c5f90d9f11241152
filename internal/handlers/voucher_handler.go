package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kornnellio/adventuretime-sub001/internal/models"
	"github.com/kornnellio/adventuretime-sub001/internal/payments"
	"github.com/kornnellio/adventuretime-sub001/internal/services"
)

func PurchaseVoucher(vs *services.VoucherService) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, userID, ok := requireClaims(c)
		if !ok {
			return
		}

		var req services.VoucherPurchaseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		result, err := vs.Purchase(c.Request.Context(), userID, req)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(result, "Voucher purchase started"))
	}
}

func VoucherCallback(vs *services.VoucherService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := c.Request.ParseForm(); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid callback payload"))
			return
		}

		if err := vs.HandleCallback(c.Request.Context(), c.Request.PostForm); err != nil {
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

func GetVoucher(vs *services.VoucherService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, userID, ok := requireClaims(c)
		if !ok {
			return
		}

		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid voucher ID format"))
			return
		}

		voucher, err := vs.GetVoucherByID(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse(err.Error()))
			return
		}
		if voucher == nil {
			c.JSON(http.StatusNotFound, models.ErrorResponse("voucher not found"))
			return
		}
		if voucher.UserID != userID && !claims.IsAdmin() {
			c.JSON(http.StatusForbidden, models.ErrorResponse("forbidden"))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(voucher, ""))
	}
}

// VoucherPDF streams the printable gift voucher.
func VoucherPDF(vs *services.VoucherService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, userID, ok := requireClaims(c)
		if !ok {
			return
		}

		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid voucher ID format"))
			return
		}

		pdfBytes, err := vs.RenderPDF(c.Request.Context(), userID, id, claims.IsAdmin())
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		c.Header("Content-Disposition", "attachment; filename=voucher-"+id.String()+".pdf")
		c.Data(http.StatusOK, "application/pdf", pdfBytes)
	}
}
