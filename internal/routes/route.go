package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/kornnellio/adventuretime-sub001/internal/container"
	"github.com/kornnellio/adventuretime-sub001/internal/handlers"
	"github.com/kornnellio/adventuretime-sub001/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	if container.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{container.Config.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	// Checkout and payment endpoints get a tighter budget than browsing.
	checkoutLimiter := middleware.NewRateLimiter(2, 5)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "OK",
				"service": "adventuretime-api",
			})
		})

		// public catalog
		v1.GET("/adventures", handlers.ListAdventures(container.AdventureService))
		v1.GET("/adventures/:id", handlers.GetAdventureByID(container.AdventureService))
		v1.GET("/categories", handlers.ListCategories(container.AdventureService))

		// coupon form on the checkout page, pre-auth
		v1.POST("/coupons/validate", checkoutLimiter.Limit(), handlers.ValidateCoupon(container.CouponService))

		// provider IPN callbacks, authenticated by signature
		v1.POST("/payments/callback", checkoutLimiter.Limit(), handlers.PaymentCallback(container.BookingService))
		v1.POST("/payments/voucher-callback", checkoutLimiter.Limit(), handlers.VoucherCallback(container.VoucherService))
	}

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(container.Config.JWTSecret))

	bookingRoutes := protected.Group("/bookings")
	{
		bookingRoutes.POST("/checkout", checkoutLimiter.Limit(), handlers.Checkout(container.BookingService))
		bookingRoutes.GET("/", handlers.ListMyBookings(container.BookingService))
	}

	intentRoutes := protected.Group("/intents")
	{
		intentRoutes.PATCH("/:id/phone", handlers.AttachPhone(container.BookingService))
		intentRoutes.GET("/:id/status", handlers.IntentStatus(container.BookingService))
	}

	voucherRoutes := protected.Group("/vouchers")
	{
		voucherRoutes.POST("/", checkoutLimiter.Limit(), handlers.PurchaseVoucher(container.VoucherService))
		voucherRoutes.GET("/:id", handlers.GetVoucher(container.VoucherService))
		voucherRoutes.GET("/:id/pdf", handlers.VoucherPDF(container.VoucherService))
	}

	admin := protected.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	{
		admin.POST("/adventures", handlers.CreateAdventure(container.AdventureService))
		admin.PATCH("/adventures/:id", handlers.UpdateAdventure(container.AdventureService))
		admin.DELETE("/adventures/:id", handlers.DeleteAdventure(container.AdventureService))

		admin.POST("/categories", handlers.CreateCategory(container.AdventureService))
		admin.DELETE("/categories/:id", handlers.DeleteCategory(container.AdventureService))

		admin.POST("/coupons", handlers.CreateCoupon(container.CouponService))
		admin.GET("/coupons", handlers.ListCoupons(container.CouponService))
		admin.PATCH("/coupons/:id/deactivate", handlers.DeactivateCoupon(container.CouponService))
		admin.DELETE("/coupons/:id", handlers.DeleteCoupon(container.CouponService))

		admin.GET("/bookings", handlers.ListAllBookings(container.BookingService))
		admin.PATCH("/bookings/:id/status", handlers.UpdateBookingStatus(container.BookingService))

		admin.GET("/users", handlers.ListUsers(container.UserService))
		admin.GET("/users/:id/orders", handlers.GetUserOrders(container.UserService))

		admin.GET("/vouchers", handlers.ListVouchers(container.VoucherService))
	}

	return r
}
