package main

import (
	"fmt"

	"cantera-backend/config"
	"cantera-backend/internal/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: no .env file found, using system environment variables.")
	}

	config.ConnectDB()

	app := fiber.New()

	app.Use(cors.New())
	app.Use(logger.New())

	routes.SetupWorkerRoutes(app, config.DB)
	routes.SetupCostCenterRoutes(app, config.DB)
	routes.SetupMachineRoutes(app, config.DB)
	routes.SetupOperationLogRoutes(app, config.DB)
	routes.SetupPersonalReportRoutes(app, config.DB)
	routes.SetupProductionReportRoutes(app, config.DB)
	routes.SetupCostRuleRoutes(app, config.DB)
	routes.SetupDistributionRoutes(app, config.DB)
	routes.SetupEfficiencyRoutes(app, config.DB)
	routes.SetupSyncRoutes(app, config.DB)

	port := config.GetEnv("PORT", "3000")
	fmt.Printf("Server listening on :%s\n", port)
	if err := app.Listen(":" + port); err != nil {
		panic(err)
	}
}
