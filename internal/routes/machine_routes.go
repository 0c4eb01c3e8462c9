package routes

import (
	"cantera-backend/internal/handler"
	"cantera-backend/internal/middleware"
	"cantera-backend/internal/repository"
	"cantera-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupMachineRoutes(app *fiber.App, db *gorm.DB) {
	repo := repository.NewMachineRepository(db)
	maintenance := service.NewMaintenanceService()
	hdl := handler.NewMachineHandler(repo, maintenance)

	api := app.Group("/api/machines", middleware.Auth)

	api.Get("/", hdl.GetAll)
	api.Get("/due", hdl.GetAllDueStatus)
	api.Get("/:id", hdl.GetByID)
	api.Get("/:id/due", hdl.GetDueStatus)

	admin := api.Group("/", middleware.AdminOnly)
	admin.Post("/", hdl.Create)
	admin.Put("/:id", hdl.Update)
	admin.Delete("/:id", hdl.Delete)
	admin.Post("/definitions", hdl.CreateDefinition)
	admin.Put("/definitions/:defId", hdl.UpdateDefinition)
	admin.Delete("/definitions/:defId", hdl.DeleteDefinition)
}
