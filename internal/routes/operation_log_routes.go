package routes

import (
	"cantera-backend/internal/handler"
	"cantera-backend/internal/mailer"
	"cantera-backend/internal/middleware"
	"cantera-backend/internal/repository"
	"cantera-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupOperationLogRoutes(app *fiber.App, db *gorm.DB) {
	logRepo := repository.NewOperationLogRepository(db)
	machineRepo := repository.NewMachineRepository(db)
	logService := service.NewOperationLogService(logRepo, machineRepo, service.NewMaintenanceService(), mailer.New())
	hdl := handler.NewOperationLogHandler(logService, logRepo)

	api := app.Group("/api/logs", middleware.Auth)

	api.Post("/", hdl.Create)
	api.Get("/machine/:machineId", hdl.GetByMachine)

	// Corrections only; side effects are not replayed.
	api.Put("/:id", middleware.AdminOnly, hdl.Update)
}
