package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sdp-labs/pos-api/internal/application/service"
	"github.com/sdp-labs/pos-api/internal/config"
	"github.com/sdp-labs/pos-api/internal/events"
	"github.com/sdp-labs/pos-api/internal/infrastructure/cache"
	"github.com/sdp-labs/pos-api/internal/infrastructure/database"
	"github.com/sdp-labs/pos-api/internal/infrastructure/repository"
	"github.com/sdp-labs/pos-api/internal/presentation/http/handler"
	"github.com/sdp-labs/pos-api/internal/presentation/http/routes"
	"github.com/sdp-labs/pos-api/internal/terminal"
	"github.com/sdp-labs/pos-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	// Seed default data
	if err := database.SeedDefaultData(db, &cfg.Admin); err != nil {
		logger.Warn("failed to seed default data", zap.Error(err))
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	merchantRepo := repository.NewMerchantRepository(db)
	productRepo := repository.NewProductRepository(db)
	variationRepo := repository.NewProductVariationRepository(db)
	taxRateRepo := repository.NewTaxRateRepository(db)
	discountRepo := repository.NewDiscountRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	orderItemRepo := repository.NewOrderItemRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	refundRepo := repository.NewRefundRepository(db)
	giftCardRepo := repository.NewGiftCardRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Order cache (optional)
	var orderCache cache.OrderCache = cache.NopOrderCache{}
	if cfg.Redis.Enabled {
		orderCache = cache.NewRedisOrderCache(&cfg.Redis, logger)
	}

	// Order event publisher (optional)
	var publisher events.Publisher = events.NopPublisher{}
	var kafkaPublisher *events.KafkaPublisher
	if cfg.Kafka.Enabled {
		kafkaPublisher = events.NewKafkaPublisher(&cfg.Kafka, logger)
		publisher = kafkaPublisher
	}

	// Card terminal provider client
	providerClient := terminal.NewClient(&cfg.Terminal)

	// Initialize services
	authService := service.NewAuthService(userRepo, merchantRepo, jwtManager, logger)
	userService := service.NewUserService(userRepo)
	merchantService := service.NewMerchantService(merchantRepo)
	productService := service.NewProductService(productRepo, variationRepo, taxRateRepo)
	taxRateService := service.NewTaxRateService(taxRateRepo)
	discountService := service.NewDiscountService(discountRepo, productRepo)
	orderService := service.NewOrderService(orderRepo, orderItemRepo, productRepo, taxRateRepo, discountRepo, orderCache, publisher, logger)
	paymentService := service.NewPaymentService(orderRepo, paymentRepo, giftCardRepo, providerClient, orderCache, publisher, cfg.App.Currency, logger)
	refundService := service.NewRefundService(orderRepo, paymentRepo, refundRepo, providerClient, orderCache, publisher, logger)
	giftCardService := service.NewGiftCardService(giftCardRepo, logger)
	reservationService := service.NewReservationService(reservationRepo)
	auditService := service.NewAuditService(auditRepo, logger)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		User:        handler.NewUserHandler(userService),
		Merchant:    handler.NewMerchantHandler(merchantService, auditService),
		Product:     handler.NewProductHandler(productService, auditService),
		TaxRate:     handler.NewTaxRateHandler(taxRateService, auditService),
		Discount:    handler.NewDiscountHandler(discountService, auditService),
		Order:       handler.NewOrderHandler(orderService, auditService),
		Payment:     handler.NewPaymentHandler(paymentService, cfg.Terminal.WebhookSecret, logger),
		Refund:      handler.NewRefundHandler(refundService, auditService),
		GiftCard:    handler.NewGiftCardHandler(giftCardService, auditService),
		Reservation: handler.NewReservationHandler(reservationService),
		Audit:       handler.NewAuditHandler(auditService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		Logger:          logger,
		IdempotencyRepo: idempotencyRepo,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting", zap.String("port", cfg.App.Port), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(); err != nil {
			logger.Error("closing event publisher", zap.Error(err))
		}
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.App.Debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
