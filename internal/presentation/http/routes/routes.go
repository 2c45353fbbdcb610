package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/fagundes/debt-ledger/internal/config"
	"github.com/fagundes/debt-ledger/internal/domain/enum"
	"github.com/fagundes/debt-ledger/internal/presentation/http/dto/response"
	"github.com/fagundes/debt-ledger/internal/presentation/http/handler"
	"github.com/fagundes/debt-ledger/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// MsgRouteNotFound answers requests for paths the API does not serve.
const MsgRouteNotFound = "Rota não encontrada."

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Customer  *handler.CustomerHandler
	Action    *handler.ActionHandler
	Report    *handler.ReportHandler
	Trash     *handler.TrashHandler
	Operator  *handler.OperatorHandler
	Dashboard *handler.DashboardHandler
	Printer   *handler.PrinterHandler
	Events    *handler.EventsHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Auth        middleware.Authenticator
	Cfg         *config.Config
	Log         zerolog.Logger
	RateLimiter *middleware.OperatorRateLimiter
	// HealthCheck pings the ledger backend. Nil reports ok.
	HealthCheck func(ctx context.Context) error
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Log))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		status, code := "ok", http.StatusOK
		if deps.HealthCheck != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
			defer cancel()
			if err := deps.HealthCheck(ctx); err != nil {
				status, code = "degraded", http.StatusServiceUnavailable
			}
		}
		c.JSON(code, gin.H{
			"status":  status,
			"service": deps.Cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h, deps)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.Auth))

		registerProtectedRoutes(protected, h, deps)
	}

	router.NoRoute(func(c *gin.Context) {
		response.NotFound(c, MsgRouteNotFound)
	})

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	auth := v1.Group("/auth")
	{
		login := []gin.HandlerFunc{h.Auth.Login}
		if deps.RateLimiter != nil {
			login = append([]gin.HandlerFunc{deps.RateLimiter.Middleware()}, login...)
		}
		auth.POST("/login", login...)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/auth/me", h.Auth.Me)

	protected.GET("/dashboard", h.Dashboard.GetStats)
	protected.GET("/events", h.Events.Stream)

	registerCustomerRoutes(protected, h)
	registerActionRoutes(protected, h, deps)
	registerTrashRoutes(protected, h)
	registerPrinterRoutes(protected, h)
	registerOperatorRoutes(protected, h)

	protected.POST("/exports/pdf", h.Report.ExportPDF)
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.GET("/:id/statement", h.Customer.Statement)
		customers.GET("/:id/report", h.Report.Report)
		customers.GET("/:id/ticket", h.Report.Ticket)
		customers.POST("/:id/exports", h.Report.Export)
	}
}

func registerActionRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	action := protected.Group("/action")
	{
		action.GET("", h.Action.Slot)
		action.POST("", h.Action.Open)
		action.PATCH("", h.Action.Revise)
		action.DELETE("", h.Action.Cancel)

		confirm := []gin.HandlerFunc{h.Action.Confirm}
		if deps.RateLimiter != nil {
			confirm = append([]gin.HandlerFunc{deps.RateLimiter.Middleware()}, confirm...)
		}
		action.POST("/confirm", confirm...)
	}
}

func registerTrashRoutes(protected *gin.RouterGroup, h *Handlers) {
	trash := protected.Group("/trash")
	{
		trash.GET("", h.Trash.List)
		trash.POST("/:id/restore", h.Trash.Restore)
		trash.DELETE("/:id", middleware.RequireRole(enum.RoleAdmin), h.Trash.Delete)
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printer := protected.Group("/printer")
	{
		printer.GET("/status", h.Printer.GetStatus)
		printer.POST("/test", h.Printer.TestPrint)
		printer.POST("/tickets", h.Printer.PrintTicket)
	}
}

func registerOperatorRoutes(protected *gin.RouterGroup, h *Handlers) {
	operators := protected.Group("/operators")
	operators.Use(middleware.RequireRole(enum.RoleAdmin))
	{
		operators.GET("", h.Operator.List)
		operators.POST("", h.Operator.Create)
		operators.PATCH("/:id/active", h.Operator.SetActive)
		operators.PATCH("/:id/role", h.Operator.SetRole)
		operators.PUT("/:id/password", h.Operator.ResetPassword)
	}
}
