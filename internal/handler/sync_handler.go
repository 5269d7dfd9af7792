package handler

import (
	"errors"
	"time"

	"go-resell-sync/internal/clover"
	"go-resell-sync/internal/repository"
	"go-resell-sync/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SyncHandler struct {
	service service.SyncService
}

func NewSyncHandler(s service.SyncService) *SyncHandler {
	return &SyncHandler{service: s}
}

type syncRequest struct {
	Direction string `json:"direction"`
}

// TriggerSync runs a pull, push-one, or full sync per the admin's request.
func (h *SyncHandler) TriggerSync(c *fiber.Ctx) error {
	var req syncRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	var (
		report *service.SyncReport
		err    error
	)

	switch req.Direction {
	case "pull":
		report, err = h.service.PullSync(c.Context())
	case "full":
		report, err = h.service.FullSync(c.Context())
	case "push":
		id, perr := parseUUID(c.Query("product_id"))
		if perr != nil {
			return c.Status(400).JSON(fiber.Map{"error": "push requires a valid product_id query parameter"})
		}
		report = &service.SyncReport{Total: 1, Errors: []string{}}
		if err = h.service.PushProduct(c.Context(), id); err == nil {
			report.Updated = 1
		}
	default:
		return c.Status(400).JSON(fiber.Map{"error": "direction must be one of: push, pull, full"})
	}

	if err != nil {
		status := 502
		switch {
		case errors.Is(err, repository.ErrSyncInProgress):
			status = 409
		case errors.Is(err, clover.ErrNotConfigured):
			status = 503
		case errors.Is(err, repository.ErrProductNotFound):
			status = 404
		}
		return c.Status(status).JSON(fiber.Map{
			"success":   false,
			"direction": req.Direction,
			"error":     err.Error(),
			"timestamp": time.Now(),
		})
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"direction": req.Direction,
		"report":    report,
		"timestamp": time.Now(),
	})
}

func (h *SyncHandler) GetStatus(c *fiber.Ctx) error {
	status, err := h.service.Status(c.Context())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to compute sync status"})
	}
	return c.JSON(status)
}
