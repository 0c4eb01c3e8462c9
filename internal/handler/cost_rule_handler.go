package handler

import (
	"errors"

	"cantera-backend/internal/model"
	"cantera-backend/internal/repository"
	"cantera-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CostRuleHandler struct {
	repo repository.CostRuleRepository
}

func NewCostRuleHandler(repo repository.CostRuleRepository) *CostRuleHandler {
	return &CostRuleHandler{repo: repo}
}

func (h *CostRuleHandler) Create(c *fiber.Ctx) error {
	var rule model.SpecificCostRule
	if err := c.BodyParser(&rule); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if rule.MachineOriginID == 0 || rule.TargetCenterID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "machine_origin_id and target_center_id are required"})
	}

	existing, err := h.repo.SumPercentageForOrigin(rule.MachineOriginID, 0)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not check existing rules"})
	}
	if err := service.ValidateRulePercentage(existing, rule.Percentage); err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": vErr.Error()})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.repo.Create(&rule); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create cost rule"})
	}
	return c.JSON(rule)
}

func (h *CostRuleHandler) GetAll(c *fiber.Ctx) error {
	if origin := c.QueryInt("origin"); origin > 0 {
		rules, err := h.repo.GetByOrigin(uint(origin))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load cost rules"})
		}
		return c.JSON(rules)
	}

	rules, err := h.repo.GetAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load cost rules"})
	}
	return c.JSON(rules)
}

func (h *CostRuleHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id"})
	}

	rule, err := h.repo.GetByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Cost rule not found"})
	}

	var input struct {
		TargetCenterID  *uint    `json:"target_center_id"`
		TargetMachineID *uint    `json:"target_machine_id"`
		Percentage      *float64 `json:"percentage"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	if input.TargetCenterID != nil {
		rule.TargetCenterID = *input.TargetCenterID
	}
	if input.TargetMachineID != nil {
		rule.TargetMachineID = input.TargetMachineID
	}
	if input.Percentage != nil {
		// Sum of the origin's other rules, so the rule being edited does
		// not count against itself.
		existing, err := h.repo.SumPercentageForOrigin(rule.MachineOriginID, rule.ID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not check existing rules"})
		}
		if err := service.ValidateRulePercentage(existing, *input.Percentage); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		rule.Percentage = *input.Percentage
	}

	if err := h.repo.Update(rule); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update cost rule"})
	}
	return c.JSON(rule)
}

func (h *CostRuleHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id"})
	}
	if err := h.repo.Delete(uint(id)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete cost rule"})
	}
	return c.JSON(fiber.Map{"message": "Cost rule deleted"})
}
