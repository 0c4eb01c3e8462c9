package handler

import (
	"time"

	"cantera-backend/internal/model"
	"cantera-backend/internal/repository"
	"cantera-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProductionReportHandler struct {
	repo repository.ProductionReportRepository
}

func NewProductionReportHandler(repo repository.ProductionReportRepository) *ProductionReportHandler {
	return &ProductionReportHandler{repo: repo}
}

func (h *ProductionReportHandler) CreateCP(c *fiber.Ctx) error {
	var report model.CPDailyReport
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
	if report.Date.IsZero() {
		report.Date = time.Now()
	}
	if report.CrusherEnd < report.CrusherStart || report.MillsEnd < report.MillsStart {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "end counters cannot be below start counters"})
	}

	if err := h.repo.CreateCP(&report); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create CP report"})
	}
	return c.JSON(report)
}

func (h *ProductionReportHandler) CreateCR(c *fiber.Ctx) error {
	var report model.CRDailyReport
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
	if report.Date.IsZero() {
		report.Date = time.Now()
	}
	if report.WashingEnd < report.WashingStart || report.TriturationEnd < report.TriturationStart {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "end counters cannot be below start counters"})
	}

	if err := h.repo.CreateCR(&report); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create CR report"})
	}
	return c.JSON(report)
}

func (h *ProductionReportHandler) GetByPeriod(c *fiber.Ctx) error {
	start, end, err := parsePeriodRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	switch c.Params("line") {
	case "cp":
		reports, err := h.repo.GetCPByPeriod(start, end)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load reports"})
		}
		return c.JSON(reports)
	case "cr":
		reports, err := h.repo.GetCRByPeriod(start, end)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load reports"})
		}
		return c.JSON(reports)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "line must be cp or cr"})
	}
}

// UpsertWeeklyPlan accepts any date in the target week and normalizes it to
// the Monday key before storing.
func (h *ProductionReportHandler) UpsertWeeklyPlan(c *fiber.Ctx) error {
	var plan model.CPWeeklyPlan
	if err := c.BodyParser(&plan); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if plan.WeekMonday.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "week_monday is required"})
	}
	plan.WeekMonday = service.MondayOf(plan.WeekMonday)

	if err := h.repo.UpsertWeeklyPlan(&plan); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not save weekly plan"})
	}
	return c.JSON(plan)
}

func (h *ProductionReportHandler) GetWeeklyPlans(c *fiber.Ctx) error {
	start, end, err := parsePeriodRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	plans, err := h.repo.GetWeeklyPlans(start, end)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load weekly plans"})
	}
	return c.JSON(plans)
}

func parsePeriodRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", c.Query("start"))
	if err != nil {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "start must be YYYY-MM-DD")
	}
	end, err := time.Parse("2006-01-02", c.Query("end"))
	if err != nil {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "end must be YYYY-MM-DD")
	}
	// Inclusive end date from the client becomes a half-open repo range.
	return start, end.AddDate(0, 0, 1), nil
}
