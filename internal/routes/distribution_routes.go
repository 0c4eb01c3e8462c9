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

func SetupDistributionRoutes(app *fiber.App, db *gorm.DB) {
	hdl := handler.NewDistributionHandler(
		service.NewDistributionService(),
		repository.NewOperationLogRepository(db),
		repository.NewMachineRepository(db),
		repository.NewCostCenterRepository(db),
		repository.NewCostRuleRepository(db),
		repository.NewPersonalReportRepository(db),
		repository.NewWorkerRepository(db),
		mailer.New(),
	)

	api := app.Group("/api/distribution", middleware.Auth, middleware.AdminOnly)

	api.Get("/fuel", hdl.FuelSummary)
	api.Post("/labour", hdl.LabourSummary)
	api.Post("/send-report", hdl.SendReport)
}
