package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"stagebook/internal/handler/api"
	"stagebook/internal/handler/middleware"
	"stagebook/internal/pkg/config"
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
	timelineHandler *api.TimelineHandler,
	holdHandler *api.HoldHandler,
	proposalHandler *api.ProposalHandler,
	tokenHandler *api.TokenHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, timelineHandler, holdHandler, proposalHandler, tokenHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	timelineHandler *api.TimelineHandler,
	holdHandler *api.HoldHandler,
	proposalHandler *api.ProposalHandler,
	tokenHandler *api.TokenHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		if gin.Mode() == gin.DebugMode {
			addRoutes(apiGroup.Group("/auth"), []route{
				{Method: http.MethodPost, Path: "/token", Handler: tokenHandler.IssueToken},
			})
		}

		timeline := apiGroup.Group("/timeline")
		timeline.Use(authMiddleware.RequireAuth())
		{
			addRoutes(timeline, []route{
				{Method: http.MethodGet, Path: "", Handler: timelineHandler.GetTimeline},
				{Method: http.MethodGet, Path: "/months", Handler: timelineHandler.GetMonthBuckets},
				{Method: http.MethodGet, Path: "/export.ics", Handler: timelineHandler.ExportICS},
			})
		}

		holds := apiGroup.Group("/holds")
		holds.Use(authMiddleware.RequireAuth())
		{
			addRoutes(holds, []route{
				{Method: http.MethodPost, Path: "", Handler: holdHandler.CreateHold},
				{Method: http.MethodPost, Path: "/:id/respond", Handler: holdHandler.RespondToHold},
				{Method: http.MethodDelete, Path: "/:id", Handler: holdHandler.CancelHold},
			})
		}

		proposals := apiGroup.Group("/proposals")
		proposals.Use(authMiddleware.RequireAuth())
		{
			addRoutes(proposals, []route{
				{Method: http.MethodPost, Path: "", Handler: proposalHandler.SubmitProposal},
				{Method: http.MethodPost, Path: "/:id/accept", Handler: proposalHandler.AcceptProposal},
				{Method: http.MethodPost, Path: "/:id/decline", Handler: proposalHandler.DeclineProposal},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
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
