package routes

import (
	"cantera-backend/config"
	"cantera-backend/internal/handler"
	"cantera-backend/internal/mailer"
	"cantera-backend/internal/middleware"
	"cantera-backend/internal/repository"
	"cantera-backend/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupSyncRoutes(app *fiber.App, db *gorm.DB) {
	queue := service.NewQueue(service.NewFileStorage(
		config.GetEnv("OFFLINE_QUEUE_PATH", "data/offline_queue.json"),
	))

	logRepo := repository.NewOperationLogRepository(db)
	machineRepo := repository.NewMachineRepository(db)
	logService := service.NewOperationLogService(logRepo, machineRepo, service.NewMaintenanceService(), mailer.New())

	syncService := service.NewSyncService(
		queue,
		logService,
		repository.NewProductionReportRepository(db),
		repository.NewPersonalReportRepository(db),
	)
	hdl := handler.NewSyncHandler(syncService)

	api := app.Group("/api/sync", middleware.Auth)

	api.Post("/enqueue", hdl.Enqueue)
	api.Get("/pending", hdl.Pending)
	api.Post("/run", hdl.Run)
}
