package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"encode-service/ddd/application/app"
	"encode-service/pkg/config"
	"encode-service/pkg/middleware"
)

// NewRouter assembles the gin engine with all routes and middleware.
func NewRouter(cfg *config.Config, encodeApp *app.EncodeApp) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	ctl := NewEncodeJobController(encodeApp)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RequestContextMiddleware())
	v1.Use(middleware.AuthMiddleware(cfg.JWT))
	{
		v1.POST("/jobs", ctl.CreateEncodeJob)
		v1.GET("/jobs/:job_id", ctl.GetEncodeJob)
	}

	return r
}
