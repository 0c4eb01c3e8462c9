package model

import "gorm.io/gorm"

type CostCenter struct {
	gorm.Model
	Code     string `json:"code" gorm:"unique;not null"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active" gorm:"default:true"`

	// Relations
	SubCenters []SubCenter `json:"sub_centers,omitempty" gorm:"foreignKey:CostCenterID"`
	Machines   []Machine   `json:"machines,omitempty" gorm:"foreignKey:CostCenterID"`
}

type SubCenter struct {
	gorm.Model
	CostCenterID uint   `json:"cost_center_id"`
	Code         string `json:"code"`
	Name         string `json:"name"`

	CostCenter CostCenter `json:"-" gorm:"foreignKey:CostCenterID"`
}
