package backup

import (
	"errors"

	"inventory-vault/core/archive"
	"inventory-vault/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for backups.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the backup routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/backups")
	group.Post("/", h.HandleCreate)
	group.Get("/", h.HandleList)
	group.Delete("/expired", h.HandlePrune)
	group.Get("/:day", h.HandleListDay)
	group.Get("/:day/compare", h.HandleCompare)
	group.Get("/:day/:stamp/verify", h.HandleVerify)
	group.Get("/:day/:stamp/preview", h.HandlePreview)
}

// HandleCreate takes a new snapshot.
// @Summary Create Snapshot
// @Description Snapshot every configured collection into the archive. Skipped when the latest snapshot is within the backup interval, unless forced.
// @Tags backups
// @Accept json
// @Produce json
// @Param force query boolean false "Ignore the interval gate"
// @Success 200 {object} map[string]interface{} "Snapshot Descriptor"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /backups [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	force := c.Query("force") == "true"

	desc, err := h.service.Create(c.Context(), force)
	if errors.Is(err, ErrSkipped) {
		return c.JSON(fiber.Map{
			"status":   "skipped",
			"snapshot": desc,
		})
	}
	if err != nil {
		l.Error("Backup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"status":   "created",
		"snapshot": desc,
	})
}

// HandleList lists all snapshots grouped by weekday.
// @Summary List Snapshots
// @Description List every snapshot grouped by weekday, sunday first, newest first within a day.
// @Tags backups
// @Accept json
// @Produce json
// @Success 200 {array} backup.DayGroup "Snapshots by Day"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /backups [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	groups, err := h.service.List(c.Context())
	if err != nil {
		l.Error("Snapshot listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(groups)
}

// HandleListDay lists one weekday's snapshots.
// @Summary List Snapshots For A Day
// @Description List the snapshots of one weekday folder, newest first.
// @Tags backups
// @Accept json
// @Produce json
// @Param day path string true "Weekday folder (monday..sunday)"
// @Success 200 {array} archive.Descriptor "Snapshots"
// @Failure 400 {object} map[string]string "Invalid Day"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /backups/{day} [get]
func (h *Handler) HandleListDay(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	day := c.Params("day")
	if !archive.IsValidDay(day) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid day: " + day})
	}

	descs, err := h.service.ListDay(c.Context(), day)
	if err != nil {
		l.Error("Snapshot listing failed", zap.String("day", day), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(descs)
}

// HandleVerify re-checks a snapshot's integrity hashes.
// @Summary Verify Snapshot
// @Description Re-read every collection file of a snapshot, recompute hashes and compare against the descriptor.
// @Tags backups
// @Accept json
// @Produce json
// @Param day path string true "Weekday folder"
// @Param stamp path string true "Snapshot stamp (YYYYMMDD_HHMMSS)"
// @Success 200 {object} archive.VerifyReport "Verification Report"
// @Failure 404 {object} map[string]string "Snapshot Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /backups/{day}/{stamp}/verify [get]
func (h *Handler) HandleVerify(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	day, stamp := c.Params("day"), c.Params("stamp")

	report, err := h.service.Verify(c.Context(), day, stamp)
	if errors.Is(err, archive.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Snapshot verification failed", zap.String("stamp", stamp), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandlePreview returns the first rows of a snapshot collection.
// @Summary Preview Snapshot
// @Description Show the first rows of one collection file inside a snapshot.
// @Tags backups
// @Accept json
// @Produce json
// @Param day path string true "Weekday folder"
// @Param stamp path string true "Snapshot stamp (YYYYMMDD_HHMMSS)"
// @Param collection query string true "Collection name"
// @Param limit query int false "Row limit (default 10)"
// @Success 200 {object} backup.SnapshotPreview "Preview"
// @Failure 400 {object} map[string]string "Missing Collection"
// @Failure 404 {object} map[string]string "Snapshot Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /backups/{day}/{stamp}/preview [get]
func (h *Handler) HandlePreview(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	day, stamp := c.Params("day"), c.Params("stamp")
	collectionName := c.Query("collection")
	if collectionName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "collection query parameter is required"})
	}

	preview, err := h.service.Preview(c.Context(), day, stamp, collectionName, c.QueryInt("limit"))
	if errors.Is(err, archive.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Snapshot preview failed", zap.String("stamp", stamp), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(preview)
}

// HandleCompare diffs one collection between two snapshots.
// @Summary Compare Snapshots
// @Description Diff one collection between two snapshots of the same day. "from" is the older snapshot, "to" the newer one.
// @Tags backups
// @Accept json
// @Produce json
// @Param day path string true "Weekday folder"
// @Param from query string true "Older snapshot stamp"
// @Param to query string true "Newer snapshot stamp"
// @Param collection query string true "Collection name"
// @Param limit query int false "Sample limit (default 5)"
// @Success 200 {object} archive.SnapshotDiff "Snapshot Diff"
// @Failure 400 {object} map[string]string "Missing Parameters"
// @Failure 404 {object} map[string]string "Snapshot Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /backups/{day}/compare [get]
func (h *Handler) HandleCompare(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	day := c.Params("day")
	from, to := c.Query("from"), c.Query("to")
	collectionName := c.Query("collection")
	if from == "" || to == "" || collectionName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "from, to and collection query parameters are required",
		})
	}

	diff, err := h.service.Compare(c.Context(), day, from, to, collectionName, c.QueryInt("limit"))
	if errors.Is(err, archive.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Snapshot comparison failed", zap.String("day", day), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(diff)
}

// HandlePrune removes snapshots older than the retention window.
// @Summary Prune Expired Snapshots
// @Description Delete every snapshot older than the configured retention window.
// @Tags backups
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Prune Result"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /backups/expired [delete]
func (h *Handler) HandlePrune(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	removed, err := h.service.Prune(c.Context())
	if err != nil {
		l.Error("Pruning failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"status":  "pruned",
		"removed": removed,
	})
}
