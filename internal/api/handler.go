// Package api exposes the ingestion pipeline over HTTP for the mobile and
// web clients. It is a thin shell: file bytes in, statement drafts out.
package api

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"statement-ingestion-service/internal/models"
	"statement-ingestion-service/internal/parsers"
	"statement-ingestion-service/internal/templates"
	"statement-ingestion-service/pkg/errors"
	"statement-ingestion-service/pkg/logger"
)

// Handler holds the HTTP handlers for the ingestion API
type Handler struct {
	Registry *templates.Registry
	Ingestor *parsers.Ingestor
	log      logger.Logger
}

// NewHandler creates an API handler around an ingestion pipeline
func NewHandler(registry *templates.Registry, ingestor *parsers.Ingestor) *Handler {
	return &Handler{
		Registry: registry,
		Ingestor: ingestor,
		log:      logger.WithComponent("api"),
	}
}

// RegisterRoutes sets up the HTTP routes
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/api/health", h.handleHealth)
	app.Post("/api/import", h.handleImport)
	app.Get("/api/templates", h.handleTemplates)
	app.Post("/api/templates/detect", h.handleDetect)
}

// ImportResponse is the JSON response from the /api/import endpoint
type ImportResponse struct {
	Success bool                   `json:"success"`
	Error   string                 `json:"error,omitempty"`
	Outcome *parsers.ImportOutcome `json:"outcome,omitempty"`
}

// DetectRequest is the JSON request body for /api/templates/detect
type DetectRequest struct {
	Headers []string `json:"headers"`
}

// DetectResponse is the JSON response from /api/templates/detect
type DetectResponse struct {
	Detected  bool                 `json:"detected"`
	Detection *templates.Detection `json:"detection,omitempty"`
	// Mapping falls back to generic inference when no template matched
	Mapping models.Mapping `json:"mapping"`
	Usable  bool           `json:"usable"`
}

func (h *Handler) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"templates": len(h.Registry.Templates()),
	})
}

func (h *Handler) handleImport(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ImportResponse{
			Success: false,
			Error:   "no file uploaded, use form field 'file'",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ImportResponse{
			Success: false,
			Error:   "failed to open uploaded file",
		})
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ImportResponse{
			Success: false,
			Error:   "failed to read uploaded file",
		})
	}

	currency := c.FormValue("currency", "INR")
	currencySymbol := c.FormValue("currencySymbol", "₹")

	outcome, err := h.Ingestor.ImportDocument(fileHeader.Filename, content, currency, currencySymbol, h.Registry)
	if err != nil {
		h.log.WithError(err).WithField("file_name", fileHeader.Filename).Warn("Import rejected")

		status := fiber.StatusUnprocessableEntity
		if ie, ok := errors.AsIngestError(err); ok && ie.Code == errors.CodeUnsupportedFormat {
			status = fiber.StatusUnsupportedMediaType
		}
		return c.Status(status).JSON(ImportResponse{
			Success: false,
			Error:   err.Error(),
		})
	}

	h.log.WithFields(logger.Fields{
		"file_name":    fileHeader.Filename,
		"parse_method": outcome.File.ParseMethod,
		"parse_status": outcome.File.ParseStatus,
		"transactions": outcome.Result.TransactionCount,
	}).Info("Imported statement")

	return c.JSON(ImportResponse{
		Success: true,
		Outcome: outcome,
	})
}

func (h *Handler) handleTemplates(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"templates": h.Registry.Templates(),
	})
}

func (h *Handler) handleDetect(c *fiber.Ctx) error {
	var req DetectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if len(req.Headers) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "headers are required",
		})
	}

	detection := h.Registry.Detect(req.Headers)
	resp := DetectResponse{
		Detected:  detection != nil,
		Detection: detection,
	}
	if detection != nil {
		resp.Mapping = detection.Mapping
	} else {
		resp.Mapping = templates.InferMapping(req.Headers)
	}
	resp.Usable = resp.Mapping.HasMinimumColumns()

	return c.JSON(resp)
}
