package handler

import (
	"encoding/json"
	"errors"

	"cantera-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SyncHandler exposes the offline queue: clients enqueue captured actions,
// then trigger a replay once connectivity is back.
type SyncHandler struct {
	sync *service.SyncService
}

func NewSyncHandler(sync *service.SyncService) *SyncHandler {
	return &SyncHandler{sync: sync}
}

func (h *SyncHandler) Enqueue(c *fiber.Ctx) error {
	var input struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	switch input.Type {
	case service.ActionLog, service.ActionCPReport, service.ActionCRReport, service.ActionPersonalReport:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown action type"})
	}
	if len(input.Payload) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "payload is required"})
	}

	action, err := h.sync.Queue().Enqueue(input.Type, input.Payload)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not enqueue action"})
	}
	return c.JSON(action)
}

func (h *SyncHandler) Pending(c *fiber.Ctx) error {
	actions, err := h.sync.Queue().Pending()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load pending actions"})
	}
	return c.JSON(fiber.Map{"pending": actions, "count": len(actions)})
}

func (h *SyncHandler) Run(c *fiber.Ctx) error {
	result, err := h.sync.Run()
	if err != nil {
		if errors.Is(err, service.ErrSyncInFlight) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A sync is already running"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Sync failed"})
	}
	return c.JSON(result)
}
