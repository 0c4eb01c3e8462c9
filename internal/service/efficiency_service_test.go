package service

import (
	"math"
	"testing"
	"time"

	"cantera-backend/internal/model"

	"gorm.io/gorm"
)

type fakePlanSource struct {
	plans map[time.Time]*model.CPWeeklyPlan
}

func (f *fakePlanSource) GetWeeklyPlan(monday time.Time) (*model.CPWeeklyPlan, error) {
	if p, ok := f.plans[monday]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeProductionSource struct {
	cp []model.CPDailyReport
	cr []model.CRDailyReport
}

func (f *fakeProductionSource) GetCPByPeriod(start, end time.Time) ([]model.CPDailyReport, error) {
	var out []model.CPDailyReport
	for _, r := range f.cp {
		if !r.Date.Before(start) && r.Date.Before(end) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeProductionSource) GetCRByPeriod(start, end time.Time) ([]model.CRDailyReport, error) {
	var out []model.CRDailyReport
	for _, r := range f.cr {
		if !r.Date.Before(start) && r.Date.Before(end) {
			out = append(out, r)
		}
	}
	return out, nil
}

func weekPlan(monday time.Time, hours float64) *model.CPWeeklyPlan {
	return &model.CPWeeklyPlan{
		WeekMonday:     monday,
		MondayHours:    hours,
		TuesdayHours:   hours,
		WednesdayHours: hours,
		ThursdayHours:  hours,
		FridayHours:    hours,
	}
}

func cpReport(date time.Time, hours float64) model.CPDailyReport {
	return model.CPDailyReport{Date: date, CrusherStart: 0, CrusherEnd: hours}
}

// TestWeeklyEfficiency: 8h planned Mon-Fri, 32h actual Mon-Thu, nothing
// Friday -> 32/40 = 80%.
func TestWeeklyEfficiency(t *testing.T) {
	monday := day(2026, 2, 2)
	plans := &fakePlanSource{plans: map[time.Time]*model.CPWeeklyPlan{monday: weekPlan(monday, 8)}}
	reports := &fakeProductionSource{}
	for i := 0; i < 4; i++ { // Mon..Thu
		reports.cp = append(reports.cp, cpReport(monday.AddDate(0, 0, i), 8))
	}

	svc := NewEfficiencyService(plans, reports)
	result, err := svc.Compute(LineCP, PeriodWeek, day(2026, 2, 6)) // Friday cutoff
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	if result.ActualHours != 32 || result.PlannedHours != 40 {
		t.Errorf("actual/planned = %v/%v, want 32/40", result.ActualHours, result.PlannedHours)
	}
	if result.Efficiency != 80 {
		t.Errorf("efficiency = %v, want 80", result.Efficiency)
	}
}

// TestMissingPlanFallsBackToDefault: weekdays of an unplanned week assume 8h.
func TestMissingPlanFallsBackToDefault(t *testing.T) {
	monday := day(2026, 2, 2)
	svc := NewEfficiencyService(&fakePlanSource{plans: map[time.Time]*model.CPWeeklyPlan{}}, &fakeProductionSource{
		cp: []model.CPDailyReport{cpReport(monday, 40)},
	})

	result, err := svc.Compute(LineCP, PeriodWeek, day(2026, 2, 6))
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if result.PlannedHours != 5*DefaultPlannedHoursPerDay {
		t.Errorf("planned = %v, want %v", result.PlannedHours, 5*DefaultPlannedHoursPerDay)
	}
	if result.Efficiency != 100 {
		t.Errorf("efficiency = %v, want 100", result.Efficiency)
	}
}

func TestZeroPlannedHoursEfficiency(t *testing.T) {
	// A weekend day has zero planned hours; efficiency reads 0, not NaN.
	svc := NewEfficiencyService(&fakePlanSource{plans: map[time.Time]*model.CPWeeklyPlan{}}, &fakeProductionSource{})
	result, err := svc.Compute(LineCP, PeriodDay, day(2026, 2, 7)) // Saturday
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if result.PlannedHours != 0 || result.Efficiency != 0 {
		t.Errorf("planned/efficiency = %v/%v, want 0/0", result.PlannedHours, result.Efficiency)
	}
}

// TestMonthComparisonCapsCutoff: day 31 of March compares against day 28 of
// February, the previous month's last real day.
func TestMonthComparisonCapsCutoff(t *testing.T) {
	svc := NewEfficiencyService(&fakePlanSource{plans: map[time.Time]*model.CPWeeklyPlan{}}, &fakeProductionSource{})

	cmp, err := svc.Compare(LineCP, PeriodMonth, day(2026, 3, 31))
	if err != nil {
		t.Fatalf("compare: %v", err)
	}

	wantPrev := day(2026, 2, 28)
	if !cmp.Previous.Cutoff.Equal(wantPrev) {
		t.Errorf("previous cutoff = %v, want %v", cmp.Previous.Cutoff, wantPrev)
	}
	if !cmp.Previous.Start.Equal(day(2026, 2, 1)) {
		t.Errorf("previous start = %v, want 2026-02-01", cmp.Previous.Start)
	}
}

func TestTrendDelta(t *testing.T) {
	monday := day(2026, 2, 2)
	plans := &fakePlanSource{plans: map[time.Time]*model.CPWeeklyPlan{monday: weekPlan(monday, 8)}}
	reports := &fakeProductionSource{cp: []model.CPDailyReport{
		cpReport(monday.AddDate(0, 0, 1), 4), // Tuesday: 4 of 8 -> 50%
		cpReport(monday.AddDate(0, 0, 2), 6), // Wednesday: 6 of 8 -> 75%
	}}

	svc := NewEfficiencyService(plans, reports)
	cmp, err := svc.Compare(LineCP, PeriodDay, monday.AddDate(0, 0, 2))
	if err != nil {
		t.Fatalf("compare: %v", err)
	}

	if cmp.Trend != TrendUp {
		t.Errorf("trend = %s, want up", cmp.Trend)
	}
	// Absolute percentage-point delta, not a ratio.
	if math.Abs(cmp.Diff-25) > 1e-9 {
		t.Errorf("diff = %v, want 25", cmp.Diff)
	}
}

func TestDashboardCoversAllPeriods(t *testing.T) {
	svc := NewEfficiencyService(&fakePlanSource{plans: map[time.Time]*model.CPWeeklyPlan{}}, &fakeProductionSource{})
	out, err := svc.Dashboard(LineCR, day(2026, 2, 6))
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	for _, period := range []string{PeriodDay, PeriodWeek, PeriodMonth, PeriodYear} {
		if _, ok := out[period]; !ok {
			t.Errorf("dashboard missing period %s", period)
		}
	}
}
