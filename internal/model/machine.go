package model

import (
	"time"

	"gorm.io/gorm"
)

type Machine struct {
	gorm.Model
	CostCenterID        uint   `json:"cost_center_id"`
	SubCenterID         *uint  `json:"sub_center_id"`
	ResponsibleWorkerID *uint  `json:"responsible_worker_id"` // reference only, not ownership
	Name                string `json:"name" gorm:"not null"`
	CompanyCode         string `json:"company_code"`

	// CurrentHours is the hour-meter reading. It only moves forward, via
	// confirmed operation log writes (validated in the handler, not here).
	CurrentHours float64 `json:"current_hours"`

	RequiresHours        bool `json:"requires_hours" gorm:"default:true"`
	AdminExpenses        bool `json:"admin_expenses"` // mutually exclusive with TransportExpenses
	TransportExpenses    bool `json:"transport_expenses"`
	IsActive             bool `json:"is_active" gorm:"default:true"`
	SelectableForReports bool `json:"selectable_for_reports" gorm:"default:true"`

	// Relations
	CostCenter             CostCenter              `json:"cost_center,omitempty" gorm:"foreignKey:CostCenterID"`
	SubCenter              *SubCenter              `json:"sub_center,omitempty" gorm:"foreignKey:SubCenterID"`
	MaintenanceDefinitions []MaintenanceDefinition `json:"maintenance_definitions,omitempty" gorm:"foreignKey:MachineID;constraint:OnDelete:CASCADE"`
}

// Maintenance scheduling modes.
const (
	MaintenanceTypeHours = "HOURS"
	MaintenanceTypeDate  = "DATE"
)

// MaintenanceDefinition is a recurring preventive-maintenance rule owned by
// one machine. Exactly one of the two field groups is meaningful, selected
// by MaintenanceType: {IntervalHours, WarningHours, LastMaintenanceHours}
// for HOURS, {IntervalMonths, NextDate} for DATE.
type MaintenanceDefinition struct {
	gorm.Model
	MachineID       uint   `json:"machine_id" gorm:"not null;index"`
	Description     string `json:"description"`
	MaintenanceType string `json:"maintenance_type" gorm:"not null"` // HOURS / DATE

	IntervalHours        float64  `json:"interval_hours"`
	WarningHours         float64  `json:"warning_hours"`
	LastMaintenanceHours *float64 `json:"last_maintenance_hours"` // nil = never performed

	IntervalMonths int        `json:"interval_months"`
	NextDate       *time.Time `json:"next_date"` // authoritative for DATE mode
}
