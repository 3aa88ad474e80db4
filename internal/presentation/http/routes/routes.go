package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sdp-labs/pos-api/internal/config"
	"github.com/sdp-labs/pos-api/internal/domain/enum"
	domainRepo "github.com/sdp-labs/pos-api/internal/domain/repository"
	"github.com/sdp-labs/pos-api/internal/presentation/http/handler"
	"github.com/sdp-labs/pos-api/internal/presentation/http/middleware"
	"github.com/sdp-labs/pos-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth        *handler.AuthHandler
	User        *handler.UserHandler
	Merchant    *handler.MerchantHandler
	Product     *handler.ProductHandler
	TaxRate     *handler.TaxRateHandler
	Discount    *handler.DiscountHandler
	Order       *handler.OrderHandler
	Payment     *handler.PaymentHandler
	Refund      *handler.RefundHandler
	GiftCard    *handler.GiftCardHandler
	Reservation *handler.ReservationHandler
	Audit       *handler.AuditHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	Logger          *zap.Logger
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))
	router.Use(middleware.Metrics())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(api, h)

		// Card provider webhook authenticates with an HMAC signature
		// rather than a bearer token.
		api.POST("/webhooks/terminal", h.Payment.ProviderWebhook)

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-merchant rate limiter
		rateLimiter := middleware.NewMerchantRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   middleware.DefaultRateLimiterConfig().CleanupInterval,
			EntryTTL:          middleware.DefaultRateLimiterConfig().EntryTTL,
		})
		protected.Use(rateLimiter.Middleware())

		// Mutation replays (client retries on payments and refunds) are
		// absorbed by the idempotency layer.
		protected.Use(middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}))

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerAuthRoutes(api *gin.RouterGroup, h *Handlers) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	registerOrderRoutes(protected, h)
	registerCatalogRoutes(protected, h)
	registerGiftCardRoutes(protected, h)
	registerReservationRoutes(protected, h)
	registerUserRoutes(protected, h)
	registerMerchantRoutes(protected, h)
	registerAuditRoutes(protected, h)
}

func registerOrderRoutes(protected *gin.RouterGroup, h *Handlers) {
	orders := protected.Group("/orders")
	{
		orders.GET("", h.Order.List)
		orders.POST("", h.Order.Create)
		orders.GET("/:id", h.Order.Get)
		orders.GET("/:id/receipt", h.Order.Receipt)
		orders.POST("/:id/cancel", h.Order.Cancel)

		orders.POST("/:id/items", h.Order.AddItem)
		orders.PATCH("/:id/items/:itemId", h.Order.UpdateItemQuantity)
		orders.DELETE("/:id/items/:itemId", h.Order.RemoveItem)

		orders.POST("/:id/discount", h.Order.ApplyDiscount)
		orders.DELETE("/:id/discount", h.Order.RemoveDiscount)

		orders.POST("/:id/pay", h.Payment.Pay)
		orders.POST("/:id/payments/:paymentId/cancel", h.Payment.CancelCardPayment)

		orders.POST("/:id/refund", h.Refund.Refund)
		orders.GET("/:id/refunds", h.Refund.List)
	}
}

func registerCatalogRoutes(protected *gin.RouterGroup, h *Handlers) {
	manage := middleware.RequireRole(enum.RoleBusinessOwner, enum.RoleSuperAdmin)

	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/:id", h.Product.Get)
		products.POST("", manage, h.Product.Create)
		products.PUT("/:id", manage, h.Product.Update)
		products.DELETE("/:id", manage, h.Product.Delete)
		products.POST("/:id/variations", manage, h.Product.AddVariation)
		products.DELETE("/:id/variations/:variationId", manage, h.Product.RemoveVariation)
	}

	taxRates := protected.Group("/tax-rates")
	{
		taxRates.GET("", h.TaxRate.List)
		taxRates.POST("", manage, h.TaxRate.Create)
		taxRates.PUT("/:id", manage, h.TaxRate.Update)
		taxRates.DELETE("/:id", manage, h.TaxRate.Delete)
	}

	discounts := protected.Group("/discounts")
	{
		discounts.GET("", h.Discount.List)
		discounts.GET("/:id", h.Discount.Get)
		discounts.POST("", manage, h.Discount.Create)
		discounts.DELETE("/:id", manage, h.Discount.Delete)
	}
}

func registerGiftCardRoutes(protected *gin.RouterGroup, h *Handlers) {
	giftCards := protected.Group("/gift-cards")
	{
		giftCards.GET("", h.GiftCard.List)
		giftCards.POST("", h.GiftCard.Create)
		giftCards.GET("/:code", h.GiftCard.Get)
		giftCards.POST("/:code/deactivate", h.GiftCard.Deactivate)
	}
}

func registerReservationRoutes(protected *gin.RouterGroup, h *Handlers) {
	reservations := protected.Group("/reservations")
	{
		reservations.GET("", h.Reservation.List)
		reservations.POST("", h.Reservation.Create)
		reservations.PUT("/:id", h.Reservation.Update)
		reservations.POST("/:id/cancel", h.Reservation.Cancel)
	}
}

func registerUserRoutes(protected *gin.RouterGroup, h *Handlers) {
	users := protected.Group("/users")
	users.Use(middleware.RequireRole(enum.RoleBusinessOwner, enum.RoleSuperAdmin))
	{
		users.GET("", h.User.List)
		users.POST("", h.User.CreateEmployee)
		users.GET("/:id", h.User.Get)
		users.DELETE("/:id", h.User.Delete)
	}
}

func registerMerchantRoutes(protected *gin.RouterGroup, h *Handlers) {
	merchants := protected.Group("/merchants")
	{
		merchants.GET("", middleware.RequireRole(enum.RoleSuperAdmin), h.Merchant.List)
		merchants.GET("/:id", h.Merchant.Get)
		merchants.PUT("/:id", middleware.RequireRole(enum.RoleBusinessOwner, enum.RoleSuperAdmin), h.Merchant.Update)
	}
}

func registerAuditRoutes(protected *gin.RouterGroup, h *Handlers) {
	audit := protected.Group("/audit-logs")
	audit.Use(middleware.RequireRole(enum.RoleBusinessOwner, enum.RoleSuperAdmin))
	{
		audit.GET("", h.Audit.List)
	}
}
