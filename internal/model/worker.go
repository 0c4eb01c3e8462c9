package model

import "gorm.io/gorm"

type Worker struct {
	gorm.Model
	Name     string `json:"name"`
	DNI      string `json:"dni" gorm:"column:dni;unique;not null"`
	Password string `json:"-"`
	Role     string `json:"role" gorm:"default:WORKER"` // WORKER / ADMIN
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active" gorm:"default:true"`

	// Relations
	OperationLogs   []OperationLog   `json:"operation_logs,omitempty" gorm:"foreignKey:WorkerID"`
	PersonalReports []PersonalReport `json:"personal_reports,omitempty" gorm:"foreignKey:WorkerID"`
}
