package service

import (
	"testing"
	"time"

	"cantera-backend/internal/model"
)

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func hoursDef(interval, warning float64, last *float64) model.MaintenanceDefinition {
	return model.MaintenanceDefinition{
		MaintenanceType:      model.MaintenanceTypeHours,
		IntervalHours:        interval,
		WarningHours:         warning,
		LastMaintenanceHours: last,
	}
}

func f(v float64) *float64 { return &v }

// TestEvaluateHoursBoundaries checks the inclusive warning/overdue thresholds
// around a 250h interval with a 25h lead window.
func TestEvaluateHoursBoundaries(t *testing.T) {
	svc := NewMaintenanceService()
	def := hoursDef(250, 25, f(4500)) // next due at 4750

	tests := []struct {
		name          string
		currentHours  float64
		wantStatus    string
		wantRemaining float64
	}{
		{"just outside lead window", 4724, StatusOK, 26},
		{"lead window boundary", 4725, StatusWarning, 25},
		{"one hour before due", 4749, StatusWarning, 1},
		{"exactly due", 4750, StatusOverdue, 0},
		{"past due", 4800, StatusOverdue, -50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			machine := &model.Machine{CurrentHours: tt.currentHours}
			result := svc.EvaluateDefinition(machine, &def)
			if result.Status != tt.wantStatus {
				t.Errorf("currentHours=%v: status = %s, want %s", tt.currentHours, result.Status, tt.wantStatus)
			}
			if result.RemainingHours != tt.wantRemaining {
				t.Errorf("currentHours=%v: remaining = %v, want %v", tt.currentHours, result.RemainingHours, tt.wantRemaining)
			}
			if result.NextDueHours != 4750 {
				t.Errorf("nextDue = %v, want 4750", result.NextDueHours)
			}
		})
	}
}

// TestEvaluateHoursNeverPerformed: a nil last-maintenance baseline counts
// from zero.
func TestEvaluateHoursNeverPerformed(t *testing.T) {
	svc := NewMaintenanceService()
	def := hoursDef(100, 10, nil)
	machine := &model.Machine{CurrentHours: 95}

	result := svc.EvaluateDefinition(machine, &def)
	if result.Status != StatusWarning {
		t.Errorf("status = %s, want WARNING", result.Status)
	}
	if result.NextDueHours != 100 {
		t.Errorf("nextDue = %v, want 100", result.NextDueHours)
	}
}

// TestEvaluateScenario follows the machine through two log writes: 100h-based
// definition, reading 95 -> WARNING (remaining 5), reading 105 -> OVERDUE
// (remaining -5).
func TestEvaluateScenario(t *testing.T) {
	svc := NewMaintenanceService()
	machine := &model.Machine{
		CurrentHours: 100,
		MaintenanceDefinitions: []model.MaintenanceDefinition{
			hoursDef(50, 10, f(50)),
		},
	}

	machine.CurrentHours = 95
	statuses := svc.Evaluate(machine)
	if len(statuses) != 1 {
		t.Fatalf("got %d statuses, want 1", len(statuses))
	}
	if statuses[0].Status != StatusWarning || statuses[0].RemainingHours != 5 {
		t.Errorf("after 95h: got %s remaining %v, want WARNING remaining 5", statuses[0].Status, statuses[0].RemainingHours)
	}

	machine.CurrentHours = 105
	statuses = svc.Evaluate(machine)
	if statuses[0].Status != StatusOverdue || statuses[0].RemainingHours != -5 {
		t.Errorf("after 105h: got %s remaining %v, want OVERDUE remaining -5", statuses[0].Status, statuses[0].RemainingHours)
	}
}

func TestEvaluateDateMode(t *testing.T) {
	today := time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC) // clock mid-day on purpose
	svc := NewMaintenanceServiceAt(fixedNow(today))

	date := func(d int) *time.Time {
		v := time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
		return &v
	}

	tests := []struct {
		name       string
		nextDate   *time.Time
		wantStatus string
		wantDays   int
	}{
		{"due today", date(10), StatusOverdue, 0},
		{"due yesterday", date(9), StatusOverdue, -1},
		{"due tomorrow", date(11), StatusWarning, 1},
		{"inside 15 day window", date(25), StatusWarning, 15},
		{"outside window", date(26), StatusOK, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := model.MaintenanceDefinition{
				MaintenanceType: model.MaintenanceTypeDate,
				IntervalMonths:  6,
				NextDate:        tt.nextDate,
			}
			result := svc.EvaluateDefinition(&model.Machine{}, &def)
			if result.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s", result.Status, tt.wantStatus)
			}
			if result.DaysRemaining != tt.wantDays {
				t.Errorf("daysRemaining = %d, want %d", result.DaysRemaining, tt.wantDays)
			}
		})
	}
}

func TestEvaluateConfigErrors(t *testing.T) {
	svc := NewMaintenanceService()
	machine := &model.Machine{CurrentHours: 10}

	zeroInterval := hoursDef(0, 10, f(100))
	result := svc.EvaluateDefinition(machine, &zeroInterval)
	if result.Status != StatusOverdue || !result.ConfigError {
		t.Errorf("intervalHours=0: got %s configError=%v, want OVERDUE with configError", result.Status, result.ConfigError)
	}

	next := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	badMonths := model.MaintenanceDefinition{
		MaintenanceType: model.MaintenanceTypeDate,
		IntervalMonths:  0,
		NextDate:        &next,
	}
	result = svc.EvaluateDefinition(machine, &badMonths)
	if result.Status != StatusOverdue || !result.ConfigError {
		t.Errorf("intervalMonths=0: got %s configError=%v, want OVERDUE with configError", result.Status, result.ConfigError)
	}
}

func TestEvaluateNoDefinitions(t *testing.T) {
	svc := NewMaintenanceService()
	statuses := svc.Evaluate(&model.Machine{CurrentHours: 500})
	if len(statuses) != 0 {
		t.Errorf("machine without definitions reported %d due items", len(statuses))
	}
}

func TestAdvanceBaselineHours(t *testing.T) {
	svc := NewMaintenanceService()
	def := hoursDef(250, 25, f(4500))

	svc.AdvanceBaseline(&def, f(4760))
	if def.LastMaintenanceHours == nil || *def.LastMaintenanceHours != 4760 {
		t.Fatalf("lastMaintenanceHours = %v, want 4760", def.LastMaintenanceHours)
	}

	// Next evaluation uses the new baseline.
	result := svc.EvaluateDefinition(&model.Machine{CurrentHours: 4760}, &def)
	if result.NextDueHours != 5010 || result.Status != StatusOK {
		t.Errorf("after advance: nextDue = %v status = %s, want 5010 OK", result.NextDueHours, result.Status)
	}
}

func TestAdvanceBaselineDate(t *testing.T) {
	svc := NewMaintenanceService()
	next := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	def := model.MaintenanceDefinition{
		MaintenanceType: model.MaintenanceTypeDate,
		IntervalMonths:  3,
		NextDate:        &next,
	}

	svc.AdvanceBaseline(&def, nil)
	want := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC) // Jan 31 + 3 months normalizes past April 30
	if def.NextDate == nil || !def.NextDate.Equal(want) {
		t.Errorf("nextDate = %v, want %v", def.NextDate, want)
	}
}

type recordingNotifier struct {
	statuses []DueStatus
}

func (n *recordingNotifier) MaintenanceThreshold(_ *model.Machine, status DueStatus) {
	n.statuses = append(n.statuses, status)
}

func TestNotifyThresholdsSkipsOK(t *testing.T) {
	svc := NewMaintenanceService()
	machine := &model.Machine{
		CurrentHours: 100,
		MaintenanceDefinitions: []model.MaintenanceDefinition{
			hoursDef(50, 10, f(50)),   // due at 100 -> OVERDUE
			hoursDef(500, 10, f(0)),   // due at 500 -> OK
			hoursDef(100, 10, f(5)),   // due at 105 -> WARNING
		},
	}

	notifier := &recordingNotifier{}
	svc.NotifyThresholds(notifier, machine)

	if len(notifier.statuses) != 2 {
		t.Fatalf("notified %d times, want 2", len(notifier.statuses))
	}
	if notifier.statuses[0].Status != StatusOverdue || notifier.statuses[1].Status != StatusWarning {
		t.Errorf("notified statuses = %s, %s", notifier.statuses[0].Status, notifier.statuses[1].Status)
	}
}
