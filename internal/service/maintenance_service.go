package service

import (
	"time"

	"cantera-backend/internal/model"
)

// Due-status classification.
const (
	StatusOK      = "OK"
	StatusWarning = "WARNING"
	StatusOverdue = "OVERDUE"
)

// DateWarningDays is the fixed lead window for DATE-mode definitions. Unlike
// WarningHours it is not configurable per definition.
const DateWarningDays = 15

// DueStatus is the evaluation result for one maintenance definition.
type DueStatus struct {
	DefinitionID    uint       `json:"definition_id"`
	MachineID       uint       `json:"machine_id"`
	Description     string     `json:"description"`
	MaintenanceType string     `json:"maintenance_type"`
	Status          string     `json:"status"`

	// HOURS mode
	NextDueHours   float64 `json:"next_due_hours,omitempty"`
	RemainingHours float64 `json:"remaining_hours,omitempty"`

	// DATE mode
	NextDate      *time.Time `json:"next_date,omitempty"`
	DaysRemaining int        `json:"days_remaining,omitempty"`

	// ConfigError marks definitions with a meaningless interval (0 hours or
	// <=0 months). They classify as always due so they surface on screens.
	ConfigError bool `json:"config_error,omitempty"`
}

// Notifier is the hook invoked synchronously after every hour-updating
// operation log write, once per definition that is in warning or overdue.
type Notifier interface {
	MaintenanceThreshold(machine *model.Machine, status DueStatus)
}

// NopNotifier ignores threshold events.
type NopNotifier struct{}

func (NopNotifier) MaintenanceThreshold(*model.Machine, DueStatus) {}

// MaintenanceService computes due status for a machine's preventive
// maintenance definitions and advances baselines when scheduled items run.
type MaintenanceService interface {
	Evaluate(machine *model.Machine) []DueStatus
	EvaluateDefinition(machine *model.Machine, def *model.MaintenanceDefinition) DueStatus
	// AdvanceBaseline mutates the definition after a SCHEDULED execution so
	// later evaluations use the new baseline. The caller persists it in the
	// same transaction as the triggering operation log.
	AdvanceBaseline(def *model.MaintenanceDefinition, hoursAtExecution *float64)
	// NotifyThresholds runs the notification hook for every definition that
	// is not OK after an hour update.
	NotifyThresholds(notifier Notifier, machine *model.Machine)
}

type maintenanceService struct {
	now func() time.Time
}

func NewMaintenanceService() MaintenanceService {
	return &maintenanceService{now: time.Now}
}

// NewMaintenanceServiceAt builds a service pinned to an injected clock.
func NewMaintenanceServiceAt(now func() time.Time) MaintenanceService {
	return &maintenanceService{now: now}
}

// Evaluate classifies every definition of the machine. A machine with no
// definitions reports no due items.
func (s *maintenanceService) Evaluate(machine *model.Machine) []DueStatus {
	statuses := make([]DueStatus, 0, len(machine.MaintenanceDefinitions))
	for i := range machine.MaintenanceDefinitions {
		statuses = append(statuses, s.EvaluateDefinition(machine, &machine.MaintenanceDefinitions[i]))
	}
	return statuses
}

func (s *maintenanceService) EvaluateDefinition(machine *model.Machine, def *model.MaintenanceDefinition) DueStatus {
	result := DueStatus{
		DefinitionID:    def.ID,
		MachineID:       machine.ID,
		Description:     def.Description,
		MaintenanceType: def.MaintenanceType,
	}

	switch def.MaintenanceType {
	case model.MaintenanceTypeDate:
		s.evaluateByDate(def, &result)
	default:
		s.evaluateByHours(machine, def, &result)
	}
	return result
}

func (s *maintenanceService) evaluateByHours(machine *model.Machine, def *model.MaintenanceDefinition, result *DueStatus) {
	if def.IntervalHours <= 0 {
		// 0 is not a meaningful interval; classify always due and flag it.
		result.Status = StatusOverdue
		result.ConfigError = true
		return
	}

	last := 0.0 // never performed counts from zero
	if def.LastMaintenanceHours != nil {
		last = *def.LastMaintenanceHours
	}

	nextDue := last + def.IntervalHours
	remaining := nextDue - machine.CurrentHours

	result.NextDueHours = nextDue
	result.RemainingHours = remaining

	switch {
	case remaining <= 0:
		result.Status = StatusOverdue
	case remaining <= def.WarningHours:
		result.Status = StatusWarning
	default:
		result.Status = StatusOK
	}
}

func (s *maintenanceService) evaluateByDate(def *model.MaintenanceDefinition, result *DueStatus) {
	if def.IntervalMonths <= 0 || def.NextDate == nil {
		result.Status = StatusOverdue
		result.ConfigError = true
		result.NextDate = def.NextDate
		return
	}

	// Both dates normalized to midnight so a due date of "today" counts as 0
	// days remaining.
	today := startOfDay(s.now())
	next := startOfDay(*def.NextDate)
	days := int(next.Sub(today).Hours() / 24)

	result.NextDate = def.NextDate
	result.DaysRemaining = days

	switch {
	case days <= 0:
		result.Status = StatusOverdue
	case days <= DateWarningDays:
		result.Status = StatusWarning
	default:
		result.Status = StatusOK
	}
}

func (s *maintenanceService) AdvanceBaseline(def *model.MaintenanceDefinition, hoursAtExecution *float64) {
	switch def.MaintenanceType {
	case model.MaintenanceTypeDate:
		if def.NextDate != nil && def.IntervalMonths > 0 {
			// NextDate is authoritative; advance it by the interval rather
			// than recomputing from the execution date, so re-schedulings do
			// not drift across uneven month lengths.
			next := def.NextDate.AddDate(0, def.IntervalMonths, 0)
			def.NextDate = &next
		}
	default:
		if hoursAtExecution != nil {
			def.LastMaintenanceHours = hoursAtExecution
		}
	}
}

func (s *maintenanceService) NotifyThresholds(notifier Notifier, machine *model.Machine) {
	if notifier == nil {
		return
	}
	for _, status := range s.Evaluate(machine) {
		if status.Status != StatusOK {
			notifier.MaintenanceThreshold(machine, status)
		}
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
