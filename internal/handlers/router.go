package handlers

import (
	"path/filepath"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ElephaSolutions/rtoappfrontend/internal/backend"
	"github.com/ElephaSolutions/rtoappfrontend/internal/branding"
	"github.com/ElephaSolutions/rtoappfrontend/internal/config"
	"github.com/ElephaSolutions/rtoappfrontend/internal/middleware"
)

// NewRouter assembles the gin engine: middleware, templates, static assets,
// and every page route. Both entrypoints and the handler tests build their
// router here.
func NewRouter(cfg *config.Config, client *backend.Client, store *branding.Store, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(gin.Recovery())
	router.Use(middleware.Branding(store))

	router.LoadHTMLGlob(cfg.Server.TemplatesGlob)
	if cfg.Server.StaticDir != "" {
		router.Static("/static", cfg.Server.StaticDir)
		router.Static("/logos", filepath.Join(cfg.Server.StaticDir, "logos"))
	}

	pages := NewPageHandler(client, cfg.Server.LoginPath, logger)

	router.GET("/", pages.Dashboard)
	router.GET("/vehicle", pages.ShowVehicleForm)
	router.POST("/vehicle", pages.SubmitVehicleForm)
	router.GET("/vehicle/view", pages.VehicleTable)
	router.POST("/vehicle/delete", pages.DeleteVehicle)
	router.GET("/license/view", pages.License)
	router.POST("/logout", pages.Logout)
	router.NoRoute(pages.NotFound)

	return router
}
