// Package api is the HTTP gateway: upload validation, conversion, metadata
// extraction, audit logging and the JSON response.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/insightdelivered/mt940-gateway/internal/audit"
	"github.com/insightdelivered/mt940-gateway/internal/convert"
	"github.com/insightdelivered/mt940-gateway/internal/extract"
	"github.com/insightdelivered/mt940-gateway/internal/metrics"
	"github.com/insightdelivered/mt940-gateway/internal/models"
	"github.com/insightdelivered/mt940-gateway/internal/sanitize"
)

const version = "1.0.0"

// Converter runs one external conversion and reports its terminal outcome.
type Converter interface {
	Convert(ctx context.Context, inputPath, outputPath string) convert.Outcome
}

// Handler holds the HTTP handlers and their collaborators.
type Handler struct {
	UploadDir string
	OutputDir string
	BaseURL   string
	Timeout   time.Duration

	Converter Converter
	Extractor *extract.Extractor
	Audit     *audit.Logger
	Logger    *slog.Logger
}

// Register sets up the gateway routes, including the read-only download
// tree over the output directory.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/api/health", h.Health)
	app.Post("/convert", h.Convert)
	app.Static("/outputs", h.OutputDir, fiber.Static{
		Browse:   false,
		Download: true,
	})
}

// Health reports liveness.
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": version,
	})
}

// Convert handles one upload: validate, store, run the converter, extract
// metadata, append the audit entry and respond.
func (h *Handler) Convert(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		metrics.RejectedUploadsTotal.Inc()
		return writeError(c, fiber.StatusBadRequest, "No file uploaded. Use form field 'file'.")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType != "application/pdf" {
		metrics.RejectedUploadsTotal.Inc()
		return writeError(c, fiber.StatusBadRequest,
			fmt.Sprintf("Only PDF uploads are accepted, got %q.", contentType))
	}

	storedName := sanitize.Sanitize(fileHeader.Filename)
	if storedName == "" || strings.Trim(storedName, "._-") == "" {
		metrics.RejectedUploadsTotal.Inc()
		return writeError(c, fiber.StatusBadRequest, "Filename is empty after sanitization.")
	}

	// Paths are fixed before any write happens: sanitized input name for the
	// upload, timestamped unique name for the output.
	inputPath := filepath.Join(h.UploadDir, storedName)
	outputName := sanitize.OutputName(fileHeader.Filename, time.Now())
	outputPath := filepath.Join(h.OutputDir, outputName)

	if err := c.SaveFile(fileHeader, inputPath); err != nil {
		h.Logger.Error("failed to store upload", "file", storedName, "error", err)
		return writeError(c, fiber.StatusInternalServerError, "Failed to store the uploaded file.")
	}

	h.Logger.Info("conversion started",
		"original", fileHeader.Filename,
		"stored", storedName,
		"output", outputName,
		"pages", extract.PageCount(inputPath),
	)

	outcome := h.Converter.Convert(c.UserContext(), inputPath, outputPath)
	metrics.ConversionsTotal.WithLabelValues(outcome.Status.String()).Inc()
	metrics.ConversionDuration.Observe(outcome.Duration.Seconds())

	switch outcome.Status {
	case convert.StatusTimeout:
		h.Logger.Warn("conversion timed out", "stored", storedName, "timeout", h.Timeout)
		h.logAudit(fileHeader.Filename, outputName, models.Metadata{Month: extract.Unknown, Bank: extract.Unknown})
		return writeError(c, fiber.StatusInternalServerError,
			fmt.Sprintf("Conversion timed out after %.0f seconds.", h.Timeout.Seconds()))

	case convert.StatusFailed:
		h.Logger.Warn("conversion failed", "stored", storedName, "stderr_bytes", len(outcome.Stderr))
		h.logAudit(fileHeader.Filename, outputName, models.Metadata{Month: extract.Unknown, Bank: extract.Unknown})
		return writeError(c, fiber.StatusInternalServerError, outcome.Stderr)
	}

	meta := h.Extractor.Metadata(outcome.Stdout, outputPath, storedName)

	if err := h.logAudit(fileHeader.Filename, outputName, meta); err != nil {
		return writeError(c, fiber.StatusInternalServerError, "Internal error while recording the conversion.")
	}

	h.Logger.Info("conversion completed",
		"output", outputName,
		"month", meta.Month,
		"bank", meta.Bank,
		"transactions", meta.Transactions,
		"duration_ms", outcome.Duration.Milliseconds(),
	)

	return c.JSON(models.ConvertResponse{
		Success:              true,
		Message:              "Conversion completed.",
		Output:               outcome.Stdout,
		DownloadURL:          h.BaseURL + "/outputs/" + outputName,
		StatementMonth:       meta.Month,
		StatementBank:        meta.Bank,
		NumberOfTransactions: meta.Transactions,
	})
}

// logAudit appends exactly one audit line for a completed conversion.
// Failed conversions carry sentinel metadata. Append errors on failure
// paths are logged only, so the caller's error payload is preserved.
func (h *Handler) logAudit(originalName, outputName string, meta models.Metadata) error {
	err := h.Audit.Append(audit.Entry{
		Time:         time.Now(),
		OriginalName: originalName,
		OutputName:   outputName,
		Month:        meta.Month,
		Bank:         meta.Bank,
		Transactions: meta.Transactions,
	})
	if err != nil {
		h.Logger.Error("failed to append audit entry", "output", outputName, "error", err)
	}
	return err
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(models.ConvertResponse{
		Success: false,
		Error:   msg,
	})
}
