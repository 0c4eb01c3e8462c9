package routes

import (
	"cantera-backend/internal/handler"
	"cantera-backend/internal/middleware"
	"cantera-backend/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupCostCenterRoutes(app *fiber.App, db *gorm.DB) {
	repo := repository.NewCostCenterRepository(db)
	hdl := handler.NewCostCenterHandler(repo)

	api := app.Group("/api/cost-centers", middleware.Auth)

	api.Get("/", hdl.GetAll)
	api.Get("/:id/sub-centers", hdl.GetSubCenters)

	admin := api.Group("/", middleware.AdminOnly)
	admin.Post("/", hdl.Create)
	admin.Put("/:id", hdl.Update)
	admin.Delete("/:id", hdl.Delete)
	admin.Post("/:id/sub-centers", hdl.CreateSubCenter)
	admin.Delete("/:id/sub-centers/:subId", hdl.DeleteSubCenter)
}
