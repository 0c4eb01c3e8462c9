package routes

import (
	"cantera-backend/internal/handler"
	"cantera-backend/internal/middleware"
	"cantera-backend/internal/repository"
	"cantera-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupEfficiencyRoutes(app *fiber.App, db *gorm.DB) {
	repo := repository.NewProductionReportRepository(db)
	hdl := handler.NewEfficiencyHandler(service.NewEfficiencyService(repo, repo))

	api := app.Group("/api/efficiency", middleware.Auth)

	api.Get("/dashboard", hdl.Dashboard)
	api.Get("/compare", hdl.Compare)
}
