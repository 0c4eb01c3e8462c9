package config

import (
	"fmt"
	"log"

	"cantera-backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	// Format: user:password@tcp(host:port)/dbname?charset=utf8mb4&parseTime=True&loc=Local
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		GetEnv("DB_USER", "root"),
		GetEnv("DB_PASSWORD", ""),
		GetEnv("DB_HOST", "127.0.0.1"),
		GetEnv("DB_PORT", "3306"),
		GetEnv("DB_NAME", "cantera_db"),
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("Could not connect to the database!")
	}

	log.Println("Database connection established")

	// Auto Migration: creates tables from the structs in internal/model
	db.AutoMigrate(
		&model.Worker{},
		&model.CostCenter{},
		&model.SubCenter{},
		&model.Machine{},
		&model.MaintenanceDefinition{},
		&model.OperationLog{},
		&model.PersonalReport{},
		&model.CPDailyReport{},
		&model.CRDailyReport{},
		&model.CPWeeklyPlan{},
		&model.SpecificCostRule{},
	)

	DB = db
}
