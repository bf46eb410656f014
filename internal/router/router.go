package router

import (
	"time"

	"github.com/younger1612/Rd-storev1/internal/config"
	"github.com/younger1612/Rd-storev1/internal/handler"
	"github.com/younger1612/Rd-storev1/internal/middleware"
	"github.com/younger1612/Rd-storev1/internal/repository"
	"github.com/younger1612/Rd-storev1/internal/repository/memory"
	"github.com/younger1612/Rd-storev1/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis.
// A nil db switches the whole repository layer to the in-memory store.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*gin.Engine, error) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(cfg.RateLimitPerMin, time.Minute))

	// ── Repositories ─────────────────────────────────────────────────────────
	var (
		productRepo    repository.ProductRepository
		purchaseRepo   repository.PurchaseRepository
		adjustmentRepo repository.AdjustmentRepository
		orderRepo      repository.OrderRepository
	)
	if db != nil {
		productRepo = repository.NewProductRepository(db)
		purchaseRepo = repository.NewPurchaseRepository(db)
		adjustmentRepo = repository.NewAdjustmentRepository(db)
		orderRepo = repository.NewOrderRepository(db)
	} else {
		store := memory.NewStore()
		productRepo = memory.NewProductRepository(store)
		purchaseRepo = memory.NewPurchaseRepository(store)
		adjustmentRepo = memory.NewAdjustmentRepository(store)
		orderRepo = memory.NewOrderRepository(store)
	}

	// ── Services ─────────────────────────────────────────────────────────────
	ledgerSvc := service.NewLedgerService(productRepo, purchaseRepo, adjustmentRepo, orderRepo, rdb)
	productSvc := service.NewProductService(productRepo, adjustmentRepo, rdb)
	purchaseSvc := service.NewPurchaseService(purchaseRepo)
	orderSvc := service.NewOrderService(orderRepo)
	authSvc, err := service.NewAuthService(cfg)
	if err != nil {
		return nil, err
	}

	// ── Handlers ─────────────────────────────────────────────────────────────
	productsH := handler.NewProductsHandler(productSvc, ledgerSvc)
	purchasesH := handler.NewPurchasesHandler(purchaseSvc, ledgerSvc)
	ordersH := handler.NewOrdersHandler(orderSvc)
	authH := handler.NewAuthHandler(authSvc)

	// ── Routes ───────────────────────────────────────────────────────────────
	api := r.Group("/api")

	api.GET("/health", handler.Health(db))
	api.POST("/auth/login", middleware.LoginRateLimiter(), authH.Login)

	// Mutations can require a token; reads stay open either way because the
	// reference deployment ran fully open.
	mutate := api.Group("")
	if cfg.AuthRequired {
		mutate.Use(middleware.JWTAuth(cfg.JWTSecret))
	}

	api.GET("/products", productsH.List)
	api.GET("/products/:id/adjustments", productsH.AdjustmentHistory)
	mutate.POST("/products", productsH.Create)
	mutate.PUT("/products/:id/stock", productsH.AdjustStock)
	mutate.PUT("/products/:id/price", productsH.AdjustPrice)
	mutate.PUT("/products/:id/specs", productsH.ReplaceSpecs)
	mutate.DELETE("/products/:id", productsH.Delete)

	api.GET("/purchases", purchasesH.List)
	mutate.POST("/purchases", purchasesH.Record)
	mutate.PUT("/purchases/:id", purchasesH.Update)
	mutate.DELETE("/purchases/:id", purchasesH.Delete)

	api.GET("/orders", ordersH.List)
	api.GET("/orders/:id", ordersH.Get)
	mutate.POST("/orders", ordersH.Create)
	mutate.PUT("/orders/:id", ordersH.Update)
	mutate.DELETE("/orders/:id", ordersH.Delete)

	return r, nil
}
