package model

import "gorm.io/gorm"

// SpecificCostRule redistributes a fixed percentage of one machine's monthly
// cost (fuel or labour) to a target cost center, optionally narrowed to a
// target machine. The sum of percentages per origin machine may not exceed
// 100; it is allowed to stay below 100, in which case the remainder is
// simply not distributed.
type SpecificCostRule struct {
	gorm.Model
	MachineOriginID uint    `json:"machine_origin_id" gorm:"not null;index"`
	TargetCenterID  uint    `json:"target_center_id" gorm:"not null"`
	TargetMachineID *uint   `json:"target_machine_id"`
	Percentage      float64 `json:"percentage" gorm:"not null"`

	MachineOrigin Machine    `json:"machine_origin,omitempty" gorm:"foreignKey:MachineOriginID"`
	TargetCenter  CostCenter `json:"target_center,omitempty" gorm:"foreignKey:TargetCenterID"`
	TargetMachine *Machine   `json:"target_machine,omitempty" gorm:"foreignKey:TargetMachineID"`
}
