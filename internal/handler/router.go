package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"court-booking/internal/handler/api"
	"court-booking/internal/handler/middleware"
	"court-booking/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	requestHandler *api.RequestHandler,
	bookingHandler *api.BookingHandler,
	lotteryHandler *api.LotteryHandler,
	courtHandler *api.CourtHandler,
	usageHandler *api.UsageHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, requestHandler, bookingHandler, lotteryHandler, courtHandler, usageHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	requestHandler *api.RequestHandler,
	bookingHandler *api.BookingHandler,
	lotteryHandler *api.LotteryHandler,
	courtHandler *api.CourtHandler,
	usageHandler *api.UsageHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
			})
		}

		courts := apiGroup.Group("/courts")
		courts.Use(authMiddleware.RequireAuth())
		{
			addRoutes(courts, []route{
				{Method: http.MethodGet, Path: "", Handler: courtHandler.ListCourts},
			})
		}

		requests := apiGroup.Group("/requests")
		requests.Use(authMiddleware.RequireAuth())
		{
			addRoutes(requests, []route{
				{Method: http.MethodPost, Path: "", Handler: requestHandler.CreateRequest},
				{Method: http.MethodDelete, Path: "/:id", Handler: requestHandler.WithdrawRequest},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: bookingHandler.CreateBooking},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: bookingHandler.CancelBooking},
				{Method: http.MethodPost, Path: "/:id/complete", Handler: bookingHandler.CompleteBooking,
					Mw: []gin.HandlerFunc{authMiddleware.RequireAdmin()}},
			})
		}

		lotteries := apiGroup.Group("/lotteries")
		lotteries.Use(authMiddleware.RequireAuth())
		{
			addRoutes(lotteries, []route{
				{Method: http.MethodGet, Path: "/pending-count", Handler: lotteryHandler.GetPendingCount},
				{Method: http.MethodPost, Path: "/execute", Handler: lotteryHandler.ExecuteLottery,
					Mw: []gin.HandlerFunc{authMiddleware.RequireAdmin()}},
			})
		}

		users := apiGroup.Group("/users")
		users.Use(authMiddleware.RequireAuth())
		{
			addRoutes(users, []route{
				{Method: http.MethodGet, Path: "/me/usage", Handler: usageHandler.GetMyUsage},
			})
		}
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
