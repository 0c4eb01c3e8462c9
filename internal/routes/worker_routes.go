package routes

import (
	"cantera-backend/internal/handler"
	"cantera-backend/internal/middleware"
	"cantera-backend/internal/repository"
	"cantera-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupWorkerRoutes(app *fiber.App, db *gorm.DB) {
	workerRepo := repository.NewWorkerRepository(db)
	workerUsecase := usecase.NewWorkerUsecase(workerRepo)
	hdl := handler.NewWorkerHandler(workerUsecase, workerRepo)

	// Login is the only unauthenticated endpoint in the API.
	app.Post("/api/login", hdl.Login)

	api := app.Group("/api/workers", middleware.Auth)

	api.Post("/change-password", hdl.ChangePassword)
	api.Get("/", hdl.GetAll)

	admin := api.Group("/", middleware.AdminOnly)
	admin.Post("/", hdl.Register)
	admin.Put("/:id", hdl.Update)
	admin.Delete("/:id", hdl.Deactivate)
}
