package handler

import (
	"errors"

	"cantera-backend/internal/model"
	"cantera-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
)

type CostCenterHandler struct {
	repo repository.CostCenterRepository
}

func NewCostCenterHandler(repo repository.CostCenterRepository) *CostCenterHandler {
	return &CostCenterHandler{repo: repo}
}

func (h *CostCenterHandler) Create(c *fiber.Ctx) error {
	var center model.CostCenter
	if err := c.BodyParser(&center); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if center.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Code is required"})
	}
	center.IsActive = true

	if err := h.repo.Create(&center); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create cost center"})
	}
	return c.JSON(center)
}

func (h *CostCenterHandler) GetAll(c *fiber.Ctx) error {
	centers, err := h.repo.GetAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load cost centers"})
	}
	return c.JSON(centers)
}

func (h *CostCenterHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id"})
	}

	center, err := h.repo.GetByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Cost center not found"})
	}

	var input struct {
		Code     *string `json:"code"`
		Name     *string `json:"name"`
		IsActive *bool   `json:"is_active"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	if input.Code != nil {
		center.Code = *input.Code
	}
	if input.Name != nil {
		center.Name = *input.Name
	}
	if input.IsActive != nil {
		center.IsActive = *input.IsActive
	}

	if err := h.repo.Update(center); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update cost center"})
	}
	return c.JSON(center)
}

func (h *CostCenterHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id"})
	}

	if err := h.repo.Delete(uint(id)); err != nil {
		var dep *repository.DependentsError
		if errors.As(err, &dep) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": dep.Error(), "dependents": dep.Count})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete cost center"})
	}
	return c.JSON(fiber.Map{"message": "Cost center deleted"})
}

func (h *CostCenterHandler) CreateSubCenter(c *fiber.Ctx) error {
	var sub model.SubCenter
	if err := c.BodyParser(&sub); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if sub.CostCenterID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "cost_center_id is required"})
	}

	if err := h.repo.CreateSubCenter(&sub); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create sub-center"})
	}
	return c.JSON(sub)
}

func (h *CostCenterHandler) GetSubCenters(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id"})
	}

	subs, err := h.repo.GetSubCenters(uint(id))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load sub-centers"})
	}
	return c.JSON(subs)
}

func (h *CostCenterHandler) DeleteSubCenter(c *fiber.Ctx) error {
	id, err := c.ParamsInt("subId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id"})
	}
	if err := h.repo.DeleteSubCenter(uint(id)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete sub-center"})
	}
	return c.JSON(fiber.Map{"message": "Sub-center deleted"})
}
