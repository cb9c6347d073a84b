package main

import (
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/insightdelivered/mt940-gateway/internal/api"
	"github.com/insightdelivered/mt940-gateway/internal/audit"
	"github.com/insightdelivered/mt940-gateway/internal/config"
	"github.com/insightdelivered/mt940-gateway/internal/convert"
	"github.com/insightdelivered/mt940-gateway/internal/extract"
)

func main() {
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	for _, dir := range []string{cfg.Storage.UploadDir, cfg.Storage.OutputDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Error("failed to create directory", "dir", dir, "error", err)
			os.Exit(1)
		}
	}

	auditLog, err := audit.Open(cfg.Audit.LogPath)
	if err != nil {
		logger.Error("failed to open audit log", "path", cfg.Audit.LogPath, "error", err)
		os.Exit(1)
	}
	defer auditLog.Close()

	var banks []extract.Bank
	if cfg.Converter.BankTablePath != "" {
		banks, err = extract.LoadBanks(cfg.Converter.BankTablePath)
		if err != nil {
			logger.Warn("falling back to built-in bank table", "error", err)
		}
	}

	h := &api.Handler{
		UploadDir: cfg.Storage.UploadDir,
		OutputDir: cfg.Storage.OutputDir,
		BaseURL:   cfg.Server.BaseURL,
		Timeout:   cfg.Converter.Timeout,
		Converter: convert.New(cfg.Converter.Command, cfg.Converter.Timeout, logger),
		Extractor: extract.New(banks),
		Audit:     auditLog,
		Logger:    logger,
	}

	app := fiber.New(fiber.Config{
		BodyLimit: cfg.Server.MaxUploadBytes,
	})
	app.Use(fiberrecover.New())
	app.Use(cors.New())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	h.Register(app)

	logger.Info("gateway listening",
		"addr", cfg.Server.Addr,
		"converter", cfg.Converter.Command,
		"timeout", cfg.Converter.Timeout,
	)
	if err := app.Listen(cfg.Server.Addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
