package model

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Operation log types.
const (
	LogTypeLevels      = "LEVELS"
	LogTypeBreakdown   = "BREAKDOWN"
	LogTypeMaintenance = "MAINTENANCE"
	LogTypeScheduled   = "SCHEDULED"
	LogTypeRefueling   = "REFUELING"
)

// OperationLog is an immutable, append-only record of one worker action
// against one machine. It is never cascade-deleted with the machine; edits
// happen only through the admin correction endpoint.
type OperationLog struct {
	gorm.Model
	Date      time.Time `json:"date" gorm:"not null;index"`
	WorkerID  uint      `json:"worker_id" gorm:"not null;index"`
	MachineID uint      `json:"machine_id" gorm:"not null;index"`

	// HoursAtExecution, when present, becomes the machine's new CurrentHours.
	HoursAtExecution *float64 `json:"hours_at_execution"`

	Type    string          `json:"type" gorm:"not null"`
	Payload json.RawMessage `json:"payload" gorm:"type:json"`

	Worker  Worker  `json:"worker,omitempty" gorm:"foreignKey:WorkerID"`
	Machine Machine `json:"machine,omitempty" gorm:"foreignKey:MachineID"`
}

// Per-type payloads. One variant per log type keeps the row free of a dozen
// nullable columns and makes the handler decode exactly the fields it needs.

type LevelsPayload struct {
	EngineOilLitres    float64 `json:"engine_oil_litres"`
	HydraulicOilLitres float64 `json:"hydraulic_oil_litres"`
	CoolantLitres      float64 `json:"coolant_litres"`
	GreaseKg           float64 `json:"grease_kg"`
}

type BreakdownPayload struct {
	Cause    string `json:"cause"`
	Solution string `json:"solution"`
	Repairer string `json:"repairer"`
}

type MaintenancePayload struct {
	MaintenanceKind string `json:"maintenance_kind"`
	Description     string `json:"description"`
	Materials       string `json:"materials"`
}

type ScheduledPayload struct {
	MaintenanceDefID uint   `json:"maintenance_def_id"`
	Description      string `json:"description"`
}

type RefuelingPayload struct {
	FuelLitres float64 `json:"fuel_litres"`
}

// SetPayload marshals the given payload variant into the log row.
func (l *OperationLog) SetPayload(p interface{}) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	l.Payload = raw
	return nil
}

// DecodePayload unmarshals the payload into the variant matching l.Type.
// Pass a pointer to the expected payload struct.
func (l *OperationLog) DecodePayload(out interface{}) error {
	if len(l.Payload) == 0 {
		return fmt.Errorf("operation log %d has no payload", l.ID)
	}
	return json.Unmarshal(l.Payload, out)
}

// RefuelingLitres extracts the fuel amount from a REFUELING log, 0 otherwise.
func (l *OperationLog) RefuelingLitres() float64 {
	if l.Type != LogTypeRefueling {
		return 0
	}
	var p RefuelingPayload
	if err := l.DecodePayload(&p); err != nil {
		return 0
	}
	return p.FuelLitres
}
