package main

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/JustUsingaWebsite/survey-powerops/internal/api"
	"github.com/JustUsingaWebsite/survey-powerops/internal/config"
)

var serveConfigPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the sample size calculator as an HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(serveConfigPath)
		if err != nil {
			return err
		}
		logger, err := buildLogger(cfg.Logging)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		e := echo.New()
		e.HideBanner = true
		e.Use(middleware.CORS())
		e.Use(middleware.Recover())
		e.Use(middleware.Logger())

		h := api.NewHandler(logger)
		h.RegisterRoutes(e)

		logger.Info("server ready", zap.String("addr", cfg.Server.Addr))
		return e.Start(cfg.Server.Addr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "surveyops.yaml", "YAML config file")
	rootCmd.AddCommand(serveCmd)
}

func buildLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.Development {
		zcfg = zap.NewDevelopmentConfig()
	}
	lvl, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q", cfg.Level)
	}
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}
