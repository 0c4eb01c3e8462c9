package routes

import (
	"cantera-backend/internal/handler"
	"cantera-backend/internal/middleware"
	"cantera-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupCostRuleRoutes(app *fiber.App, db *gorm.DB) {
	repo := repository.NewCostRuleRepository(db)
	hdl := handler.NewCostRuleHandler(repo)

	api := app.Group("/api/cost-rules", middleware.Auth, middleware.AdminOnly)

	api.Post("/", hdl.Create)
	api.Get("/", hdl.GetAll)
	api.Put("/:id", hdl.Update)
	api.Delete("/:id", hdl.Delete)
}
