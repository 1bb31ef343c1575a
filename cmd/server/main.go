package main

import (
	"context"
	"flag"
	"log"

	"github.com/franckalain/nutritionguard/internal/analysis"
	"github.com/franckalain/nutritionguard/internal/config"
	"github.com/franckalain/nutritionguard/internal/locale"
	"github.com/franckalain/nutritionguard/internal/metrics"
	"github.com/franckalain/nutritionguard/internal/ml"
	"github.com/franckalain/nutritionguard/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file")
	flag.Parse()

	envErr := godotenv.Load()

	if *configPath == "" {
		*configPath = config.GetConfigPath()
	}

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize logger
	logger, err := newLogger(cfg.Server.Debug)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	if envErr != nil {
		logger.Info("No .env file found")
	}
	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	metrics.Register()

	// Initialize ML service
	model, err := ml.NewModel(cfg.ML.Type, cfg.ML.ConfigPath, logger)
	if err != nil {
		logger.Fatal("Failed to create ML model", zap.Error(err))
	}
	defer model.Close()

	if err := model.Load(context.Background()); err != nil {
		logger.Fatal("Failed to load ML model", zap.String("type", cfg.ML.Type), zap.Error(err))
	}
	if cfg.ML.Type == "stub" {
		logger.Warn("Using the offline stub model; no nutrition values will be estimated")
	}

	service := analysis.NewService(model, analysis.Options{
		MinImageBytes: cfg.Analysis.MinImageBytes,
		MaxImageBytes: cfg.Analysis.MaxImageBytes,
		Catalog:       locale.Lookup(cfg.Analysis.Locale),
	}, logger)

	// Initialize and start server
	srv := server.New(service, server.Options{
		Port:         cfg.Server.Port,
		StaticDir:    cfg.Server.StaticDir,
		Debug:        cfg.Server.Debug,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		ReadTimeout:  cfg.ReadTimeout(),
		WriteTimeout: cfg.WriteTimeout(),
	}, logger)
	if err := srv.Start(); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
