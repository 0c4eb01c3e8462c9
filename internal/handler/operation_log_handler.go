package handler

import (
	"encoding/json"
	"errors"
	"time"

	"cantera-backend/internal/repository"
	"cantera-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type OperationLogHandler struct {
	logs    service.OperationLogService
	logRepo repository.OperationLogRepository
}

func NewOperationLogHandler(logs service.OperationLogService, logRepo repository.OperationLogRepository) *OperationLogHandler {
	return &OperationLogHandler{logs: logs, logRepo: logRepo}
}

func (h *OperationLogHandler) Create(c *fiber.Ctx) error {
	var input service.CreateLogInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if input.WorkerID == 0 {
		workerID, ok := c.Locals("worker_id").(float64)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		}
		input.WorkerID = uint(workerID)
	}
	if input.Date.IsZero() {
		input.Date = time.Now()
	}

	log, statuses, err := h.logs.CreateLog(input)
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": vErr.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create operation log"})
	}

	return c.JSON(fiber.Map{"log": log, "maintenance_statuses": statuses})
}

func (h *OperationLogHandler) GetByMachine(c *fiber.Ctx) error {
	machineID, err := c.ParamsInt("machineId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid machine id"})
	}

	logs, err := h.logRepo.GetByMachine(uint(machineID), c.QueryInt("limit", 50))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load logs"})
	}
	return c.JSON(logs)
}

// Update is the admin correction path for log entries whose payload was
// keyed wrong in the field. It does not replay machine hour or baseline
// side effects.
func (h *OperationLogHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id"})
	}

	log, err := h.logRepo.GetByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Log not found"})
	}

	var input struct {
		Date    *time.Time      `json:"date"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	if input.Date != nil {
		log.Date = *input.Date
	}
	if len(input.Payload) > 0 {
		log.Payload = input.Payload
	}

	if err := h.logRepo.Update(log); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update log"})
	}
	return c.JSON(log)
}
