package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tablebook/internal/handler/api"
	"tablebook/internal/handler/middleware"
	"tablebook/internal/pkg/config"
	"tablebook/internal/pkg/linktoken"
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
	holdHandler *api.HoldHandler,
	reservationHandler *api.ReservationHandler,
	venueHandler *api.VenueHandler,
	linkTokenMiddleware *middleware.LinkTokenMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, holdHandler, reservationHandler, venueHandler, linkTokenMiddleware)
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
	holdHandler *api.HoldHandler,
	reservationHandler *api.ReservationHandler,
	venueHandler *api.VenueHandler,
	linkTokenMiddleware *middleware.LinkTokenMiddleware,
) {
	engine.GET("/health", healthCheck)

	apiGroup := engine.Group("/api")
	{
		venues := apiGroup.Group("/venues/:venue_id")
		{
			addRoutes(venues, []route{
				{Method: http.MethodPost, Path: "/holds", Handler: holdHandler.CreateHold},
				{Method: http.MethodPost, Path: "/reservations", Handler: reservationHandler.CreateReservation},
				{Method: http.MethodGet, Path: "/reservations", Handler: reservationHandler.ListReservations},
				{Method: http.MethodGet, Path: "/availability", Handler: venueHandler.Availability},
				{Method: http.MethodGet, Path: "/suggestions", Handler: venueHandler.Suggestions},
			})
		}

		holds := apiGroup.Group("/holds")
		{
			addRoutes(holds, []route{
				{Method: http.MethodGet, Path: "/:id", Handler: holdHandler.GetHold},
				{Method: http.MethodDelete, Path: "/:id", Handler: holdHandler.CancelHold},
			})
		}

		reservations := apiGroup.Group("/reservations")
		{
			addRoutes(reservations, []route{
				{Method: http.MethodGet, Path: "/:id", Handler: reservationHandler.GetReservation},
				{Method: http.MethodPut, Path: "/:id/tables", Handler: reservationHandler.SyncTables},
				{Method: http.MethodPatch, Path: "/:id/status", Handler: reservationHandler.UpdateStatus},
			})
		}

		guest := apiGroup.Group("/guest")
		{
			addRoutes(guest, []route{
				{
					Method:  http.MethodPost,
					Path:    "/reservations/cancel",
					Handler: reservationHandler.GuestCancel,
					Mw:      []gin.HandlerFunc{linkTokenMiddleware.RequireLinkToken(linktoken.ActionCancel)},
				},
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
