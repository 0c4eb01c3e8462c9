package handler

import (
	"cantera-backend/internal/repository"
	"cantera-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type WorkerHandler struct {
	usecase *usecase.WorkerUsecase
	repo    repository.WorkerRepository
}

func NewWorkerHandler(u *usecase.WorkerUsecase, repo repository.WorkerRepository) *WorkerHandler {
	return &WorkerHandler{usecase: u, repo: repo}
}

func (h *WorkerHandler) Register(c *fiber.Ctx) error {
	var input struct {
		Name string `json:"name"`
		DNI  string `json:"dni"`
		Role string `json:"role"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}
	if input.Name == "" || input.DNI == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name and DNI are required"})
	}

	if err := h.usecase.Register(input.Name, input.DNI, input.Role); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Worker registered"})
}

func (h *WorkerHandler) Login(c *fiber.Ctx) error {
	var input struct {
		DNI      string `json:"dni"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	token, worker, err := h.usecase.Login(input.DNI, input.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"name":    worker.Name,
		"role":    worker.Role,
	})
}

func (h *WorkerHandler) ChangePassword(c *fiber.Ctx) error {
	workerID := uint(c.Locals("worker_id").(float64))

	var input struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	if err := h.usecase.ChangePassword(workerID, input.OldPassword, input.NewPassword); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Password updated"})
}

func (h *WorkerHandler) GetAll(c *fiber.Ctx) error {
	activeOnly := c.Query("active") == "true"
	workers, err := h.repo.GetAll(activeOnly)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load workers"})
	}
	return c.JSON(workers)
}

func (h *WorkerHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id"})
	}

	worker, err := h.repo.GetByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Worker not found"})
	}

	var input struct {
		Name  *string `json:"name"`
		Email *string `json:"email"`
		Phone *string `json:"phone"`
		Role  *string `json:"role"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	if input.Name != nil {
		worker.Name = *input.Name
	}
	if input.Email != nil {
		worker.Email = *input.Email
	}
	if input.Phone != nil {
		worker.Phone = *input.Phone
	}
	if input.Role != nil {
		worker.Role = *input.Role
	}

	if err := h.repo.Update(worker); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update worker"})
	}
	return c.JSON(worker)
}

func (h *WorkerHandler) Deactivate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id"})
	}
	if err := h.repo.Deactivate(uint(id)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not deactivate worker"})
	}
	return c.JSON(fiber.Map{"message": "Worker deactivated"})
}
