package router

import (
	"time"

	"github.com/Shunea/be-easyreserv-sub000/internal/config"
	"github.com/Shunea/be-easyreserv-sub000/internal/handler"
	"github.com/Shunea/be-easyreserv-sub000/internal/middleware"
	"github.com/Shunea/be-easyreserv-sub000/internal/model"
	"github.com/Shunea/be-easyreserv-sub000/internal/realtime"
	"github.com/Shunea/be-easyreserv-sub000/internal/repository"
	"github.com/Shunea/be-easyreserv-sub000/internal/service"
	"github.com/Shunea/be-easyreserv-sub000/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
// The dispatcher is built at the composition root and shared with the worker
// pool, so services and workers enqueue through the same instance.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, hub *realtime.Hub, dispatcher *worker.Dispatcher) *gin.Engine {
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
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	stockRepo := repository.NewStockRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	planRepo := repository.NewPlanRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	ledger := service.NewStockLedger(stockRepo, cfg.StockTxTimeout())
	boardPublisher := service.NewBoardPublisher(orderRepo, reservationRepo, hub)

	orderSvc := service.NewOrderService(orderRepo, productRepo, reservationRepo, planRepo, ledger, dispatcher, boardPublisher)
	stockSvc := service.NewStockService(stockRepo, ledger)

	// ── Handlers ─────────────────────────────────────────────────────────────
	ordersH := handler.NewOrdersHandler(orderSvc)
	stockH := handler.NewStockHandler(stockSvc)
	boardH := handler.NewBoardHandler(boardPublisher)
	realtimeH := handler.NewRealtimeHandler(hub, cfg.JWTSecret)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// WebSocket — token travels in the query string, not the Authorization header
	r.GET("/v1/ws/board", realtimeH.Board)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	staffAndGuests := middleware.RequireRole(
		model.RoleAdmin, model.RoleWaiter, model.RoleHostess, model.RoleSeniorHostess,
		model.RoleCook, model.RoleBarman, model.RoleUser,
	)
	frontOfHouse := middleware.RequireRole(
		model.RoleAdmin, model.RoleWaiter, model.RoleHostess, model.RoleSeniorHostess,
	)
	kitchenAndBar := middleware.RequireRole(
		model.RoleAdmin, model.RoleWaiter, model.RoleHostess, model.RoleSeniorHostess,
		model.RoleCook, model.RoleBarman,
	)

	v1 := r.Group("/v1", jwtMW)
	{
		// Guests order through the same endpoints as staff
		v1.POST("/reservations/:id/orders", staffAndGuests, ordersH.Create)
		v1.GET("/reservations/:id/orders", staffAndGuests, ordersH.List)
		v1.PATCH("/orders/:id", staffAndGuests, ordersH.Update)
		v1.DELETE("/orders", staffAndGuests, ordersH.Delete)

		// Kitchen and bar advance orders; waiters complete them
		v1.PATCH("/orders/:id/status", kitchenAndBar, ordersH.UpdateStatus)

		// Board bootstrap for displays
		v1.GET("/reservations/:id/board", kitchenAndBar, boardH.Get)

		// Warehouse
		v1.GET("/stock", frontOfHouse, stockH.List)
		v1.PATCH("/stock/:id", frontOfHouse, stockH.Adjust)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
