package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/ElephaSolutions/rtoappfrontend/internal/backend"
	"github.com/ElephaSolutions/rtoappfrontend/internal/branding"
	"github.com/ElephaSolutions/rtoappfrontend/internal/config"
	"github.com/ElephaSolutions/rtoappfrontend/internal/constants"
	"github.com/ElephaSolutions/rtoappfrontend/internal/handlers"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.LogLevel == "debug" {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info(fmt.Sprintf("%s Starting vehicle compliance front-end", constants.AppName()),
		zap.Int("port", cfg.Server.Port),
		zap.String("backend", cfg.Backend.BaseURL),
		zap.String("log_level", cfg.LogLevel),
	)

	// Branding is loaded once and immutable for the process lifetime
	store := branding.NewStore(cfg.Branding.ConfigPath, cfg.Branding.DefaultClient, logger)

	client := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, logger)

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := handlers.NewRouter(cfg, client, store, logger)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info(fmt.Sprintf("%s Server listening", constants.AppName()), zap.String("address", addr))

	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
