package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"go-gym-api/internal/core/auth"
	"go-gym-api/internal/core/server"
	"go-gym-api/internal/service"
	mdw "go-gym-api/internal/transport/http/middleware"
)

// NewAPIEngine assembles the full HTTP surface: middleware chain, health
// and metrics endpoints, and the /api/v1 routes for the three collections.
func NewAPIEngine(l *zap.Logger, cat *service.Catalog, idn *service.Identity, jwter *auth.JWTer) *gin.Engine {
	r := server.NewRouter(l)

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		mdw.SimpleRecovery(),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")

	MountExerciseActions(api, cat)
	MountRoutineActions(api, cat)

	authed := api.Group("")
	authed.Use(mdw.AuthJWT(jwter))
	MountUserActions(api, authed, idn)

	return r
}
