package handler

import (
	"errors"
	"time"

	"cantera-backend/internal/model"
	"cantera-backend/internal/repository"
	"cantera-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type MachineHandler struct {
	repo        repository.MachineRepository
	maintenance service.MaintenanceService
}

func NewMachineHandler(repo repository.MachineRepository, maintenance service.MaintenanceService) *MachineHandler {
	return &MachineHandler{repo: repo, maintenance: maintenance}
}

func (h *MachineHandler) Create(c *fiber.Ctx) error {
	var machine model.Machine
	if err := c.BodyParser(&machine); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if machine.Name == "" || machine.CostCenterID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name and cost_center_id are required"})
	}
	if machine.AdminExpenses && machine.TransportExpenses {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "admin_expenses and transport_expenses are mutually exclusive"})
	}
	machine.IsActive = true

	if err := h.repo.Create(&machine); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create machine"})
	}
	return c.JSON(machine)
}

func (h *MachineHandler) GetAll(c *fiber.Ctx) error {
	var (
		machines []model.Machine
		err      error
	)
	if c.Query("selectable") == "true" {
		machines, err = h.repo.GetSelectableForReports()
	} else {
		machines, err = h.repo.GetAll(c.Query("active") == "true")
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load machines"})
	}
	return c.JSON(machines)
}

func (h *MachineHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id"})
	}

	machine, err := h.repo.GetByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Machine not found"})
	}
	return c.JSON(machine)
}

func (h *MachineHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id"})
	}

	machine, err := h.repo.GetByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Machine not found"})
	}

	var input struct {
		Name                 *string `json:"name"`
		CompanyCode          *string `json:"company_code"`
		CostCenterID         *uint   `json:"cost_center_id"`
		SubCenterID          *uint   `json:"sub_center_id"`
		ResponsibleWorkerID  *uint   `json:"responsible_worker_id"`
		RequiresHours        *bool   `json:"requires_hours"`
		AdminExpenses        *bool   `json:"admin_expenses"`
		TransportExpenses    *bool   `json:"transport_expenses"`
		IsActive             *bool   `json:"is_active"`
		SelectableForReports *bool   `json:"selectable_for_reports"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	if input.Name != nil {
		machine.Name = *input.Name
	}
	if input.CompanyCode != nil {
		machine.CompanyCode = *input.CompanyCode
	}
	if input.CostCenterID != nil {
		machine.CostCenterID = *input.CostCenterID
	}
	if input.SubCenterID != nil {
		machine.SubCenterID = input.SubCenterID
	}
	if input.ResponsibleWorkerID != nil {
		machine.ResponsibleWorkerID = input.ResponsibleWorkerID
	}
	if input.RequiresHours != nil {
		machine.RequiresHours = *input.RequiresHours
	}
	if input.AdminExpenses != nil {
		machine.AdminExpenses = *input.AdminExpenses
	}
	if input.TransportExpenses != nil {
		machine.TransportExpenses = *input.TransportExpenses
	}
	if input.IsActive != nil {
		machine.IsActive = *input.IsActive
	}
	if input.SelectableForReports != nil {
		machine.SelectableForReports = *input.SelectableForReports
	}

	// NOTE: CurrentHours is not editable here; it only moves through
	// operation log writes.
	if machine.AdminExpenses && machine.TransportExpenses {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "admin_expenses and transport_expenses are mutually exclusive"})
	}

	if err := h.repo.Update(machine); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update machine"})
	}
	return c.JSON(machine)
}

func (h *MachineHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id"})
	}

	if err := h.repo.Delete(uint(id)); err != nil {
		var dep *repository.DependentsError
		if errors.As(err, &dep) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": dep.Error(), "dependents": dep.Count})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete machine"})
	}
	return c.JSON(fiber.Map{"message": "Machine deleted"})
}

// GetDueStatus evaluates one machine's maintenance definitions.
func (h *MachineHandler) GetDueStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id"})
	}

	machine, err := h.repo.GetByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Machine not found"})
	}

	return c.JSON(fiber.Map{
		"machine_id":    machine.ID,
		"current_hours": machine.CurrentHours,
		"statuses":      h.maintenance.Evaluate(machine),
	})
}

// GetAllDueStatus is the fleet-wide overview screen: every active machine's
// non-OK items.
func (h *MachineHandler) GetAllDueStatus(c *fiber.Ctx) error {
	machines, err := h.repo.GetAll(true)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load machines"})
	}

	var due []service.DueStatus
	for i := range machines {
		for _, status := range h.maintenance.Evaluate(&machines[i]) {
			if status.Status != service.StatusOK {
				due = append(due, status)
			}
		}
	}
	return c.JSON(fiber.Map{"due": due, "checked_at": time.Now()})
}

func (h *MachineHandler) CreateDefinition(c *fiber.Ctx) error {
	var def model.MaintenanceDefinition
	if err := c.BodyParser(&def); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if def.MachineID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "machine_id is required"})
	}
	if msg := validateDefinition(&def); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	if err := h.repo.CreateDefinition(&def); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create maintenance definition"})
	}
	return c.JSON(def)
}

func (h *MachineHandler) UpdateDefinition(c *fiber.Ctx) error {
	id, err := c.ParamsInt("defId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id"})
	}

	def, err := h.repo.GetDefinition(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Definition not found"})
	}

	var input model.MaintenanceDefinition
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	def.Description = input.Description
	def.MaintenanceType = input.MaintenanceType
	def.IntervalHours = input.IntervalHours
	def.WarningHours = input.WarningHours
	def.LastMaintenanceHours = input.LastMaintenanceHours
	def.IntervalMonths = input.IntervalMonths
	def.NextDate = input.NextDate

	if msg := validateDefinition(def); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	if err := h.repo.UpdateDefinition(def); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update definition"})
	}
	return c.JSON(def)
}

func (h *MachineHandler) DeleteDefinition(c *fiber.Ctx) error {
	id, err := c.ParamsInt("defId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id"})
	}
	if err := h.repo.DeleteDefinition(uint(id)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete definition"})
	}
	return c.JSON(fiber.Map{"message": "Definition deleted"})
}

// validateDefinition checks that exactly the mode-relevant field group is
// filled in.
func validateDefinition(def *model.MaintenanceDefinition) string {
	switch def.MaintenanceType {
	case model.MaintenanceTypeHours:
		if def.IntervalHours <= 0 {
			return "interval_hours must be greater than 0"
		}
		if def.WarningHours < 0 {
			return "warning_hours cannot be negative"
		}
	case model.MaintenanceTypeDate:
		if def.IntervalMonths <= 0 {
			return "interval_months must be greater than 0"
		}
		if def.NextDate == nil {
			return "next_date is required for DATE definitions"
		}
	default:
		return "maintenance_type must be HOURS or DATE"
	}
	return ""
}
