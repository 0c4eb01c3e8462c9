package database

import (
	"log"
	"time"

	"cantera-backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAll loads the demo dataset: the three cost centers, a small fleet with
// maintenance definitions, and the first admin account. Idempotent via
// FirstOrCreate, so it can run against a non-empty database.
func SeedAll(db *gorm.DB) {
	// 1. Cost centers
	centers := []model.CostCenter{
		{Code: "CP", Name: "Cantera Pura", IsActive: true},
		{Code: "CR", Name: "Canto Rodado", IsActive: true},
		{Code: "MAQ", Name: "Maquinaria", IsActive: true},
		{Code: "ADMON", Name: "Administracion", IsActive: true},
	}
	for i := range centers {
		db.FirstOrCreate(&centers[i], model.CostCenter{Code: centers[i].Code})
	}

	var maq model.CostCenter
	db.Where("code = ?", "MAQ").First(&maq)

	// 2. Sub-centers for the crusher line
	var cp model.CostCenter
	db.Where("code = ?", "CP").First(&cp)
	subCenters := []model.SubCenter{
		{CostCenterID: cp.ID, Code: "CP-MACH", Name: "Machaqueo"},
		{CostCenterID: cp.ID, Code: "CP-MOL", Name: "Molinos"},
	}
	for i := range subCenters {
		db.FirstOrCreate(&subCenters[i], model.SubCenter{Code: subCenters[i].Code})
	}

	// 3. Machines with their maintenance definitions
	excavator := model.Machine{
		CostCenterID:         maq.ID,
		Name:                 "Excavadora CAT 320",
		CompanyCode:          "EXC-01",
		CurrentHours:         4600,
		RequiresHours:        true,
		IsActive:             true,
		SelectableForReports: true,
	}
	db.FirstOrCreate(&excavator, model.Machine{CompanyCode: "EXC-01"})

	dumper := model.Machine{
		CostCenterID:         maq.ID,
		Name:                 "Dumper Volvo A30",
		CompanyCode:          "DMP-02",
		CurrentHours:         7850,
		RequiresHours:        true,
		IsActive:             true,
		SelectableForReports: true,
	}
	db.FirstOrCreate(&dumper, model.Machine{CompanyCode: "DMP-02"})

	pickup := model.Machine{
		CostCenterID:  maq.ID,
		Name:          "Pickup Toyota Hilux",
		CompanyCode:   "PKP-03",
		RequiresHours: false,
		AdminExpenses: true,
		IsActive:      true,
	}
	db.FirstOrCreate(&pickup, model.Machine{CompanyCode: "PKP-03"})

	lastOilChange := 4450.0
	oilChange := model.MaintenanceDefinition{
		MachineID:            excavator.ID,
		Description:          "Cambio de aceite motor",
		MaintenanceType:      model.MaintenanceTypeHours,
		IntervalHours:        250,
		WarningHours:         25,
		LastMaintenanceHours: &lastOilChange,
	}
	db.FirstOrCreate(&oilChange, model.MaintenanceDefinition{MachineID: excavator.ID, Description: oilChange.Description})

	itvDate := time.Now().AddDate(0, 2, 0)
	itv := model.MaintenanceDefinition{
		MachineID:       pickup.ID,
		Description:     "ITV",
		MaintenanceType: model.MaintenanceTypeDate,
		IntervalMonths:  12,
		NextDate:        &itvDate,
	}
	db.FirstOrCreate(&itv, model.MaintenanceDefinition{MachineID: pickup.ID, Description: itv.Description})

	// 4. First admin account. Password forced on every run so a reset is as
	// simple as re-seeding.
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := model.Worker{
		Name:     "Administrador",
		DNI:      "00000000A",
		Password: string(hashedPassword),
		Role:     "ADMIN",
		IsActive: true,
	}
	result := db.FirstOrCreate(&admin, model.Worker{DNI: admin.DNI})
	if result.Error == nil {
		db.Model(&admin).Update("password", string(hashedPassword))
		log.Println("Admin account seeded")
	}

	log.Println("Seeding finished")
}
