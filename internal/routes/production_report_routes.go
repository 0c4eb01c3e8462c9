package routes

import (
	"cantera-backend/internal/handler"
	"cantera-backend/internal/middleware"
	"cantera-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupProductionReportRoutes(app *fiber.App, db *gorm.DB) {
	repo := repository.NewProductionReportRepository(db)
	hdl := handler.NewProductionReportHandler(repo)

	api := app.Group("/api/production", middleware.Auth)

	api.Post("/cp", hdl.CreateCP)
	api.Post("/cr", hdl.CreateCR)
	api.Get("/:line", hdl.GetByPeriod)

	api.Get("/plans/weekly", hdl.GetWeeklyPlans)
	api.Post("/plans/weekly", middleware.AdminOnly, hdl.UpsertWeeklyPlan)
}
