package routes

import (
	"cantera-backend/internal/handler"
	"cantera-backend/internal/middleware"
	"cantera-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupPersonalReportRoutes(app *fiber.App, db *gorm.DB) {
	repo := repository.NewPersonalReportRepository(db)
	hdl := handler.NewPersonalReportHandler(repo)

	api := app.Group("/api/personal-reports", middleware.Auth)

	api.Post("/", hdl.Create)
	api.Get("/mine", hdl.GetMine)

	admin := api.Group("/", middleware.AdminOnly)
	admin.Get("/", hdl.GetByMonth)
	admin.Put("/:id", hdl.Update)
	admin.Delete("/:id", hdl.Delete)
}
