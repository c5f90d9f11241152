package container

import (
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kornnellio/adventuretime-sub001/internal/cache"
	"github.com/kornnellio/adventuretime-sub001/internal/config"
	"github.com/kornnellio/adventuretime-sub001/internal/models"
	"github.com/kornnellio/adventuretime-sub001/internal/payments"
	"github.com/kornnellio/adventuretime-sub001/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Logger *slog.Logger
	Config *config.Config

	MongoDBClient *mongo.Client
	Cache         *cache.Cache

	AdventureService *services.AdventureService
	BookingService   *services.BookingService
	CouponService    *services.CouponService
	VoucherService   *services.VoucherService
	UserService      *services.UserService
	IntentExpiry     *services.IntentExpiryCron
}

// NewContainer creates a new dependency injection container. redisClient may
// be nil, in which case caching is disabled.
func NewContainer(
	logger *slog.Logger,
	cfg *config.Config,
	mongoDBClient *mongo.Client,
	redisClient *redis.Client,
) *Container {
	repo := models.MongodbNewRepo(mongoDBClient)
	appCache := cache.New(redisClient)
	payClient := payments.NewClient(cfg.PaymentSignatureKey, cfg.PaymentReturnURL)

	couponService := services.NewCouponService(repo)
	adventureService := services.NewAdventureService(repo, appCache)
	bookingService := services.NewBookingService(repo, repo, repo, couponService, payClient, appCache)
	voucherService := services.NewVoucherService(repo, repo, payClient)
	userService := services.NewUserService(repo)
	intentExpiry := services.NewIntentExpiryCron(repo, logger)

	return &Container{
		Logger:           logger,
		Config:           cfg,
		MongoDBClient:    mongoDBClient,
		Cache:            appCache,
		AdventureService: adventureService,
		BookingService:   bookingService,
		CouponService:    couponService,
		VoucherService:   voucherService,
		UserService:      userService,
		IntentExpiry:     intentExpiry,
	}
}
