package service

import (
	"math"
	"testing"
	"time"

	"cantera-backend/internal/model"

	"gorm.io/gorm"
)

func baseInput() DistributionInput {
	return DistributionInput{
		Centers: []model.CostCenter{
			{Model: gormModel(1), Code: "CP"},
			{Model: gormModel(2), Code: "CR"},
			{Model: gormModel(3), Code: "MACH"},
		},
		Machines: []model.Machine{
			{Model: gormModel(10), CompanyCode: "EXC-01", CostCenterID: 1},
			{Model: gormModel(11), CompanyCode: "DMP-02", CostCenterID: 2},
			{Model: gormModel(12), CompanyCode: "LDR-03", CostCenterID: 3},
		},
	}
}

func findRow(rows []SummaryRow, center, machine string) (SummaryRow, bool) {
	for _, r := range rows {
		if r.CenterCode == center && r.MachineCode == machine {
			return r, true
		}
	}
	return SummaryRow{}, false
}

func sumRows(rows []SummaryRow) float64 {
	var total float64
	for _, r := range rows {
		total += r.Amount
	}
	return total
}

// TestDistributeConservation: rules summing to exactly 100% spread the full
// source amount across the targets.
func TestDistributeConservation(t *testing.T) {
	input := baseInput()
	input.Rules = []model.SpecificCostRule{
		{MachineOriginID: 10, TargetCenterID: 1, Percentage: 60},
		{MachineOriginID: 10, TargetCenterID: 2, Percentage: 30},
		{MachineOriginID: 10, TargetCenterID: 3, TargetMachineID: u(12), Percentage: 10},
	}

	rows := NewDistributionService().Distribute(map[uint]float64{10: 1234.56}, input)

	if diff := math.Abs(sumRows(rows) - 1234.56); diff > 1e-6 {
		t.Errorf("distributed total differs from source by %v", diff)
	}
	if row, ok := findRow(rows, "MACH", "LDR-03"); !ok || math.Abs(row.Amount-123.456) > 1e-9 {
		t.Errorf("machine-targeted rule row = %+v, want 123.456", row)
	}
}

// Rules below 100% leave the remainder unassigned; there is no
// renormalization and no default bucket.
func TestDistributeShortfallStaysUndistributed(t *testing.T) {
	input := baseInput()
	input.Rules = []model.SpecificCostRule{
		{MachineOriginID: 10, TargetCenterID: 1, Percentage: 40},
	}

	rows := NewDistributionService().Distribute(map[uint]float64{10: 1000}, input)

	if got := sumRows(rows); got != 400 {
		t.Errorf("distributed %v of 1000, want 400 (60%% deliberately undistributed)", got)
	}
}

// TestDistributeHourRatioFallback: with no rules the amount follows worked-
// hour ratios per cost center.
func TestDistributeHourRatioFallback(t *testing.T) {
	input := baseInput()
	input.PersonalReports = []model.PersonalReport{
		{MachineID: 10, CostCenterID: 1, Hours: 30},
		{MachineID: 10, CostCenterID: 2, Hours: 10},
	}

	rows := NewDistributionService().Distribute(map[uint]float64{10: 800}, input)

	if row, _ := findRow(rows, "CP", GeneralMachineCode); math.Abs(row.Amount-600) > 1e-9 {
		t.Errorf("CP share = %v, want 600", row.Amount)
	}
	if row, _ := findRow(rows, "CR", GeneralMachineCode); math.Abs(row.Amount-200) > 1e-9 {
		t.Errorf("CR share = %v, want 200", row.Amount)
	}
}

// TestDistributeZeroHoursDefaultCenter: no rules and no hours sends the full
// amount to the machine's own cost center.
func TestDistributeZeroHoursDefaultCenter(t *testing.T) {
	input := baseInput()

	rows := NewDistributionService().Distribute(map[uint]float64{11: 500}, input)

	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].CenterCode != "CR" || rows[0].MachineCode != GeneralMachineCode || rows[0].Amount != 500 {
		t.Errorf("row = %+v, want CR/GENERAL 500", rows[0])
	}
}

// TestDistributeAggregatesAcrossSources: two source machines mapping to the
// same target key sum into one row.
func TestDistributeAggregatesAcrossSources(t *testing.T) {
	input := baseInput()
	input.Rules = []model.SpecificCostRule{
		{MachineOriginID: 10, TargetCenterID: 1, Percentage: 100},
		{MachineOriginID: 11, TargetCenterID: 1, Percentage: 100},
	}

	rows := NewDistributionService().Distribute(map[uint]float64{10: 100, 11: 250}, input)

	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1 aggregated row", len(rows))
	}
	if rows[0].Amount != 350 {
		t.Errorf("aggregated amount = %v, want 350", rows[0].Amount)
	}
}

func TestDistributeWorkerCosts(t *testing.T) {
	input := baseInput()
	input.PersonalReports = []model.PersonalReport{
		{WorkerID: 1, MachineID: 10, CostCenterID: 1, Hours: 80, Date: day(2026, 2, 3)},
		{WorkerID: 1, MachineID: 11, CostCenterID: 2, Hours: 80, Date: day(2026, 2, 4)},
	}
	workers := []model.Worker{
		{Model: gormModel(1), Name: "José María Pérez"},
	}
	entries := []ExternalCostEntry{
		{Name: "JOSE MARIA. PEREZ ", Amount: 2000}, // formatting noise on purpose
		{Name: "OFICINA GESTORIA", Amount: 300},    // nobody on the roster
	}

	rows := NewDistributionService().DistributeWorkerCosts(entries, workers, input)

	// 2000 splits 50/50 over the two machines; each machine has hours only
	// in its own center, so it stays there.
	if row, _ := findRow(rows, "CP", GeneralMachineCode); math.Abs(row.Amount-1000) > 1e-9 {
		t.Errorf("CP = %v, want 1000", row.Amount)
	}
	if row, _ := findRow(rows, "CR", GeneralMachineCode); math.Abs(row.Amount-1000) > 1e-9 {
		t.Errorf("CR = %v, want 1000", row.Amount)
	}
	if row, ok := findRow(rows, AdmonCenterCode, GeneralMachineCode); !ok || row.Amount != 300 {
		t.Errorf("ADMON = %+v, want 300 (unmatched entry kept, not dropped)", row)
	}
}

func TestValidateRulePercentage(t *testing.T) {
	tests := []struct {
		name        string
		existingSum float64
		percentage  float64
		wantErr     bool
	}{
		{"first rule", 0, 50, false},
		{"summing to exactly 100", 60, 40, false},
		{"pushing past 100", 60, 40.01, true},
		{"zero percentage", 0, 0, true},
		{"negative percentage", 0, -5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRulePercentage(tt.existingSum, tt.percentage)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRulePercentage(%v, %v) error = %v, wantErr %v", tt.existingSum, tt.percentage, err, tt.wantErr)
			}
		})
	}
}

func u(v uint) *uint { return &v }

func gormModel(id uint) gorm.Model { return gorm.Model{ID: id} }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
