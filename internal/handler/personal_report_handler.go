package handler

import (
	"time"

	"cantera-backend/internal/model"
	"cantera-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type PersonalReportHandler struct {
	repo repository.PersonalReportRepository
}

func NewPersonalReportHandler(repo repository.PersonalReportRepository) *PersonalReportHandler {
	return &PersonalReportHandler{repo: repo}
}

func (h *PersonalReportHandler) Create(c *fiber.Ctx) error {
	var report model.PersonalReport
	if err := c.BodyParser(&report); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if report.WorkerID == 0 {
		workerID, ok := c.Locals("worker_id").(float64)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		}
		report.WorkerID = uint(workerID)
	}
	if report.Hours <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "hours must be greater than 0"})
	}
	if report.CostCenterID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "cost_center_id is required"})
	}

	if err := h.repo.Create(&report); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create personal report"})
	}
	return c.JSON(report)
}

func (h *PersonalReportHandler) GetMine(c *fiber.Ctx) error {
	workerID, ok := c.Locals("worker_id").(float64)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	year := c.QueryInt("year")
	month := c.QueryInt("month")
	if year == 0 || month < 1 || month > 12 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "year and month query params are required"})
	}

	reports, err := h.repo.GetByWorkerAndMonth(uint(workerID), year, time.Month(month))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load reports"})
	}
	return c.JSON(reports)
}

func (h *PersonalReportHandler) GetByMonth(c *fiber.Ctx) error {
	year := c.QueryInt("year")
	month := c.QueryInt("month")
	if year == 0 || month < 1 || month > 12 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "year and month query params are required"})
	}

	reports, err := h.repo.GetByMonth(year, time.Month(month))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load reports"})
	}
	return c.JSON(reports)
}

func (h *PersonalReportHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id"})
	}

	report, err := h.repo.GetByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Report not found"})
	}

	var input struct {
		CostCenterID *uint    `json:"cost_center_id"`
		MachineID    *uint    `json:"machine_id"`
		Hours        *float64 `json:"hours"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	if input.CostCenterID != nil {
		report.CostCenterID = *input.CostCenterID
	}
	if input.MachineID != nil {
		report.MachineID = *input.MachineID
	}
	if input.Hours != nil {
		if *input.Hours <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "hours must be greater than 0"})
		}
		report.Hours = *input.Hours
	}

	if err := h.repo.Update(report); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update report"})
	}
	return c.JSON(report)
}

func (h *PersonalReportHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id"})
	}
	if err := h.repo.Delete(uint(id)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete report"})
	}
	return c.JSON(fiber.Map{"message": "Report deleted"})
}
