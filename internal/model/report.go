package model

import (
	"time"

	"gorm.io/gorm"
)

// PersonalReport is a worker's self-reported hours against one machine and
// cost center for one day. It is the ratio basis for hour-based cost
// distribution and is independent of the operation log.
type PersonalReport struct {
	gorm.Model
	Date         time.Time `json:"date" gorm:"not null;index"`
	WorkerID     uint      `json:"worker_id" gorm:"not null;index"`
	CostCenterID uint      `json:"cost_center_id" gorm:"not null"`
	MachineID    uint      `json:"machine_id" gorm:"not null;index"`
	Hours        float64   `json:"hours"`

	Worker     Worker     `json:"worker,omitempty" gorm:"foreignKey:WorkerID"`
	CostCenter CostCenter `json:"cost_center,omitempty" gorm:"foreignKey:CostCenterID"`
	Machine    Machine    `json:"machine,omitempty" gorm:"foreignKey:MachineID"`
}

// CPDailyReport holds the daily production counters for the Cantera Pura
// lines (crusher + mills). One report per worker per day is expected but not
// enforced by a uniqueness constraint.
type CPDailyReport struct {
	gorm.Model
	Date     time.Time `json:"date" gorm:"not null;index"`
	WorkerID uint      `json:"worker_id" gorm:"not null;index"`

	CrusherStart float64 `json:"crusher_start"`
	CrusherEnd   float64 `json:"crusher_end"`
	MillsStart   float64 `json:"mills_start"`
	MillsEnd     float64 `json:"mills_end"`

	Analysis string `json:"analysis" gorm:"type:text"` // optional AI-generated text
	Comments string `json:"comments" gorm:"type:text"`

	Worker Worker `json:"worker,omitempty" gorm:"foreignKey:WorkerID"`
}

// ProductionHours returns the worked hours recorded by the report's counters.
func (r *CPDailyReport) ProductionHours() float64 {
	return (r.CrusherEnd - r.CrusherStart) + (r.MillsEnd - r.MillsStart)
}

// CRDailyReport holds the daily production counters for the Canto Rodado
// lines (washing + trituration).
type CRDailyReport struct {
	gorm.Model
	Date     time.Time `json:"date" gorm:"not null;index"`
	WorkerID uint      `json:"worker_id" gorm:"not null;index"`

	WashingStart     float64 `json:"washing_start"`
	WashingEnd       float64 `json:"washing_end"`
	TriturationStart float64 `json:"trituration_start"`
	TriturationEnd   float64 `json:"trituration_end"`

	Analysis string `json:"analysis" gorm:"type:text"`
	Comments string `json:"comments" gorm:"type:text"`

	Worker Worker `json:"worker,omitempty" gorm:"foreignKey:WorkerID"`
}

func (r *CRDailyReport) ProductionHours() float64 {
	return (r.WashingEnd - r.WashingStart) + (r.TriturationEnd - r.TriturationStart)
}

// CPWeeklyPlan is the planned-hours calendar, keyed by the Monday of an ISO
// week. Upserted by that key, so re-submitting a week overwrites it.
type CPWeeklyPlan struct {
	gorm.Model
	WeekMonday time.Time `json:"week_monday" gorm:"not null;uniqueIndex"`

	MondayHours    float64 `json:"monday_hours"`
	TuesdayHours   float64 `json:"tuesday_hours"`
	WednesdayHours float64 `json:"wednesday_hours"`
	ThursdayHours  float64 `json:"thursday_hours"`
	FridayHours    float64 `json:"friday_hours"`
}

// HoursFor returns the planned hours for a weekday. Saturday and Sunday plan
// zero hours.
func (p *CPWeeklyPlan) HoursFor(day time.Weekday) float64 {
	switch day {
	case time.Monday:
		return p.MondayHours
	case time.Tuesday:
		return p.TuesdayHours
	case time.Wednesday:
		return p.WednesdayHours
	case time.Thursday:
		return p.ThursdayHours
	case time.Friday:
		return p.FridayHours
	default:
		return 0
	}
}
