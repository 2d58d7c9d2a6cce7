package restore

import (
	"errors"

	"inventory-vault/core/archive"
	"inventory-vault/core/logger"
	"inventory-vault/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Restore modes accepted by the POST body.
const (
	ModeSmartMerge = "smart_merge"
	ModeReplace    = "replace"
)

// Handler handles HTTP requests for restores.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the restore routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/restore")
	group.Post("/", h.HandleRestore)
	group.Get("/duplicates", h.HandleDuplicates)
	group.Get("/:day/:stamp/plan", h.HandlePlan)
}

// HandlePlan previews a restore without writing anything.
// @Summary Preview Restore Plan
// @Description Reconcile a snapshot collection against the live table and return the bounded plan preview. Read-only.
// @Tags restore
// @Accept json
// @Produce json
// @Param day path string true "Weekday folder"
// @Param stamp path string true "Snapshot stamp (YYYYMMDD_HHMMSS)"
// @Param collection query string true "Collection name"
// @Param limit query int false "Sample limit (default 10)"
// @Success 200 {object} reconcile.Preview "Plan Preview"
// @Failure 400 {object} map[string]string "Invalid Request"
// @Failure 404 {object} map[string]string "Snapshot Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /restore/{day}/{stamp}/plan [get]
func (h *Handler) HandlePlan(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	day, stamp := c.Params("day"), c.Params("stamp")
	collectionName := c.Query("collection")

	if !archive.IsValidDay(day) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid day: " + day})
	}
	if collectionName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "collection query parameter is required"})
	}

	plan, err := h.service.Plan(c.Context(), day, stamp, collectionName)
	if errors.Is(err, archive.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if errors.Is(err, reconcile.ErrNoIdentifier) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Restore planning failed", zap.String("stamp", stamp), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(plan.Preview(c.QueryInt("limit")))
}

// RestoreRequest is the POST /restore body.
type RestoreRequest struct {
	Day        string `json:"day"`
	Stamp      string `json:"stamp"`
	Collection string `json:"collection"`
	// Mode selects smart_merge (default) or replace.
	Mode string `json:"mode"`
	// Confirm must be true for anything to be written.
	Confirm bool `json:"confirm"`
	// DryRun suppresses writes regardless of Confirm.
	DryRun bool `json:"dry_run"`
}

// HandleRestore runs a restore in the requested mode.
// @Summary Restore Snapshot
// @Description Restore one snapshot collection into the live table. Smart merge reconciles and applies inserts/updates; replace wipes the table and reinserts the snapshot. Nothing is written unless confirm is true and dry_run is false.
// @Tags restore
// @Accept json
// @Produce json
// @Param request body restore.RestoreRequest true "Restore Request"
// @Success 200 {object} map[string]interface{} "Restore Report"
// @Failure 400 {object} map[string]string "Invalid Request"
// @Failure 404 {object} map[string]string "Snapshot Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /restore [post]
func (h *Handler) HandleRestore(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req RestoreRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body: " + err.Error()})
	}
	if req.Mode == "" {
		req.Mode = ModeSmartMerge
	}
	if !archive.IsValidDay(req.Day) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid day: " + req.Day})
	}
	if req.Stamp == "" || req.Collection == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "stamp and collection are required"})
	}

	opts := reconcile.ApplyOptions{DryRun: req.DryRun, Confirmed: req.Confirm}

	var (
		report any
		err    error
	)
	switch req.Mode {
	case ModeSmartMerge:
		report, err = h.service.Restore(c.Context(), req.Day, req.Stamp, req.Collection, opts)
	case ModeReplace:
		report, err = h.service.Replace(c.Context(), req.Day, req.Stamp, req.Collection, opts)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown mode: " + req.Mode})
	}

	if errors.Is(err, archive.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if errors.Is(err, reconcile.ErrNoIdentifier) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Restore failed",
			zap.String("mode", req.Mode),
			zap.String("collection", req.Collection),
			zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"mode":    req.Mode,
		"applied": req.Confirm && !req.DryRun,
		"report":  report,
	})
}

// HandleDuplicates reports live records sharing an identifier value.
// @Summary Duplicate Identifier Report
// @Description List groups of live records sharing the same normalized identifier value. Read-only.
// @Tags restore
// @Accept json
// @Produce json
// @Param collection query string true "Collection name"
// @Success 200 {object} restore.DuplicatesReport "Duplicates Report"
// @Failure 400 {object} map[string]string "Invalid Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /restore/duplicates [get]
func (h *Handler) HandleDuplicates(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	collectionName := c.Query("collection")
	if collectionName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "collection query parameter is required"})
	}

	report, err := h.service.Duplicates(c.Context(), collectionName)
	if errors.Is(err, reconcile.ErrNoIdentifier) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Duplicates report failed", zap.String("collection", collectionName), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}
