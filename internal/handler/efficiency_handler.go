package handler

import (
	"time"

	"cantera-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type EfficiencyHandler struct {
	efficiency service.EfficiencyService
}

func NewEfficiencyHandler(efficiency service.EfficiencyService) *EfficiencyHandler {
	return &EfficiencyHandler{efficiency: efficiency}
}

// Compare returns one period's efficiency against its previous equivalent.
func (h *EfficiencyHandler) Compare(c *fiber.Ctx) error {
	line, period, cutoff, err := parseEfficiencyQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	comparison, err := h.efficiency.Compare(line, period, cutoff)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(comparison)
}

// Dashboard returns the day/week/month/year comparisons the home screen shows.
func (h *EfficiencyHandler) Dashboard(c *fiber.Ctx) error {
	line := c.Query("line", service.LineCP)
	if line != service.LineCP && line != service.LineCR {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "line must be CP or CR"})
	}

	cutoff := time.Now()
	if raw := c.Query("cutoff"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "cutoff must be YYYY-MM-DD"})
		}
		cutoff = parsed
	}

	dashboard, err := h.efficiency.Dashboard(line, cutoff)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not compute dashboard"})
	}
	return c.JSON(dashboard)
}

func parseEfficiencyQuery(c *fiber.Ctx) (line, period string, cutoff time.Time, err error) {
	line = c.Query("line", service.LineCP)
	if line != service.LineCP && line != service.LineCR {
		return "", "", time.Time{}, fiber.NewError(fiber.StatusBadRequest, "line must be CP or CR")
	}

	period = c.Query("period", service.PeriodDay)

	cutoff = time.Now()
	if raw := c.Query("cutoff"); raw != "" {
		cutoff, err = time.Parse("2006-01-02", raw)
		if err != nil {
			return "", "", time.Time{}, fiber.NewError(fiber.StatusBadRequest, "cutoff must be YYYY-MM-DD")
		}
	}
	return line, period, cutoff, nil
}
