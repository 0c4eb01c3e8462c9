package service

import (
	"fmt"
	"math"
	"time"

	"cantera-backend/internal/model"

	"gorm.io/gorm"
)

// DefaultPlannedHoursPerDay is the planned figure assumed for a weekday whose
// week has no plan entered. Biases efficiency toward "on target" rather than
// making the report incomputable.
const DefaultPlannedHoursPerDay = 8.0

// Production lines.
const (
	LineCP = "CP" // Cantera Pura (crusher + mills)
	LineCR = "CR" // Canto Rodado (washing + trituration)
)

// Reporting periods.
const (
	PeriodDay   = "day"
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

// Trend directions.
const (
	TrendUp    = "up"
	TrendDown  = "down"
	TrendEqual = "equal"
)

// PlanSource yields the weekly plan keyed by its Monday.
// ProductionReportRepository satisfies it.
type PlanSource interface {
	GetWeeklyPlan(monday time.Time) (*model.CPWeeklyPlan, error)
}

// ProductionSource yields daily reports for a half-open period.
type ProductionSource interface {
	GetCPByPeriod(start, end time.Time) ([]model.CPDailyReport, error)
	GetCRByPeriod(start, end time.Time) ([]model.CRDailyReport, error)
}

// EfficiencyResult is actual vs planned hours for one period up to a cutoff.
type EfficiencyResult struct {
	Period       string    `json:"period"`
	Start        time.Time `json:"start"`
	Cutoff       time.Time `json:"cutoff"`
	ActualHours  float64   `json:"actual_hours"`
	PlannedHours float64   `json:"planned_hours"`
	Efficiency   float64   `json:"efficiency"` // percent
}

// EfficiencyComparison pairs a period with its previous equivalent. Diff is
// an absolute percentage-point delta, not a ratio.
type EfficiencyComparison struct {
	Current  EfficiencyResult `json:"current"`
	Previous EfficiencyResult `json:"previous"`
	Trend    string           `json:"trend"`
	Diff     float64          `json:"diff"`
}

type EfficiencyService interface {
	Compute(line, period string, cutoff time.Time) (EfficiencyResult, error)
	Compare(line, period string, cutoff time.Time) (EfficiencyComparison, error)
	// Dashboard returns the comparison for all four period kinds at once.
	Dashboard(line string, cutoff time.Time) (map[string]EfficiencyComparison, error)
}

type efficiencyService struct {
	plans   PlanSource
	reports ProductionSource
}

func NewEfficiencyService(plans PlanSource, reports ProductionSource) EfficiencyService {
	return &efficiencyService{plans: plans, reports: reports}
}

func (s *efficiencyService) Compute(line, period string, cutoff time.Time) (EfficiencyResult, error) {
	cutoff = startOfDay(cutoff)
	start, err := periodStart(period, cutoff)
	if err != nil {
		return EfficiencyResult{}, err
	}

	actual, err := s.actualHours(line, start, cutoff)
	if err != nil {
		return EfficiencyResult{}, err
	}
	planned, err := s.plannedHours(start, cutoff)
	if err != nil {
		return EfficiencyResult{}, err
	}

	efficiency := 0.0
	if planned > 0 {
		efficiency = actual / planned * 100
	}

	return EfficiencyResult{
		Period:       period,
		Start:        start,
		Cutoff:       cutoff,
		ActualHours:  actual,
		PlannedHours: planned,
		Efficiency:   efficiency,
	}, nil
}

func (s *efficiencyService) Compare(line, period string, cutoff time.Time) (EfficiencyComparison, error) {
	current, err := s.Compute(line, period, cutoff)
	if err != nil {
		return EfficiencyComparison{}, err
	}
	previous, err := s.Compute(line, period, previousCutoff(period, startOfDay(cutoff)))
	if err != nil {
		return EfficiencyComparison{}, err
	}

	diff := current.Efficiency - previous.Efficiency
	trend := TrendEqual
	switch {
	case diff > 0:
		trend = TrendUp
	case diff < 0:
		trend = TrendDown
	}

	return EfficiencyComparison{Current: current, Previous: previous, Trend: trend, Diff: diff}, nil
}

func (s *efficiencyService) Dashboard(line string, cutoff time.Time) (map[string]EfficiencyComparison, error) {
	out := make(map[string]EfficiencyComparison, 4)
	for _, period := range []string{PeriodDay, PeriodWeek, PeriodMonth, PeriodYear} {
		cmp, err := s.Compare(line, period, cutoff)
		if err != nil {
			return nil, err
		}
		out[period] = cmp
	}
	return out, nil
}

func (s *efficiencyService) actualHours(line string, start, cutoff time.Time) (float64, error) {
	end := cutoff.AddDate(0, 0, 1) // repository periods are half-open
	var total float64
	switch line {
	case LineCR:
		reports, err := s.reports.GetCRByPeriod(start, end)
		if err != nil {
			return 0, err
		}
		for i := range reports {
			total += reports[i].ProductionHours()
		}
	default:
		reports, err := s.reports.GetCPByPeriod(start, end)
		if err != nil {
			return 0, err
		}
		for i := range reports {
			total += reports[i].ProductionHours()
		}
	}
	return total, nil
}

// plannedHours walks every calendar day of the period up to the cutoff,
// looks up the plan whose Monday matches that day's week, and adds the day's
// planned figure. Weekends plan zero; weekdays of a missing week fall back
// to DefaultPlannedHoursPerDay.
func (s *efficiencyService) plannedHours(start, cutoff time.Time) (float64, error) {
	var total float64
	plans := make(map[time.Time]*model.CPWeeklyPlan)

	for day := start; !day.After(cutoff); day = day.AddDate(0, 0, 1) {
		wd := day.Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			continue
		}

		monday := mondayOf(day)
		plan, cached := plans[monday]
		if !cached {
			loaded, err := s.plans.GetWeeklyPlan(monday)
			if err != nil && err != gorm.ErrRecordNotFound {
				return 0, err
			}
			plan = loaded // nil when no plan exists for the week
			plans[monday] = plan
		}

		if plan == nil {
			total += DefaultPlannedHoursPerDay
		} else {
			total += plan.HoursFor(wd)
		}
	}
	return total, nil
}

func periodStart(period string, cutoff time.Time) (time.Time, error) {
	switch period {
	case PeriodDay:
		return cutoff, nil
	case PeriodWeek:
		return mondayOf(cutoff), nil
	case PeriodMonth:
		return time.Date(cutoff.Year(), cutoff.Month(), 1, 0, 0, 0, 0, cutoff.Location()), nil
	case PeriodYear:
		return time.Date(cutoff.Year(), time.January, 1, 0, 0, 0, 0, cutoff.Location()), nil
	default:
		return time.Time{}, fmt.Errorf("unknown period %q", period)
	}
}

// previousCutoff positions the equivalent cutoff inside the previous period,
// capping at that period's last real day so e.g. day 31 of March compares
// against day 28 of February, not a nonsense date.
func previousCutoff(period string, cutoff time.Time) time.Time {
	switch period {
	case PeriodDay:
		return cutoff.AddDate(0, 0, -1)
	case PeriodWeek:
		return cutoff.AddDate(0, 0, -7)
	case PeriodMonth:
		firstOfPrev := time.Date(cutoff.Year(), cutoff.Month(), 1, 0, 0, 0, 0, cutoff.Location()).AddDate(0, -1, 0)
		day := int(math.Min(float64(cutoff.Day()), float64(daysInMonth(firstOfPrev))))
		return time.Date(firstOfPrev.Year(), firstOfPrev.Month(), day, 0, 0, 0, 0, cutoff.Location())
	default: // year
		prev := time.Date(cutoff.Year()-1, cutoff.Month(), 1, 0, 0, 0, 0, cutoff.Location())
		day := int(math.Min(float64(cutoff.Day()), float64(daysInMonth(prev))))
		return time.Date(prev.Year(), prev.Month(), day, 0, 0, 0, 0, cutoff.Location())
	}
}

// MondayOf normalizes a date to the Monday keying its weekly plan.
func MondayOf(t time.Time) time.Time {
	t = startOfDay(t)
	offset := (int(t.Weekday()) + 6) % 7 // Monday = 0
	return t.AddDate(0, 0, -offset)
}

func mondayOf(t time.Time) time.Time { return MondayOf(t) }

func daysInMonth(firstOfMonth time.Time) int {
	return firstOfMonth.AddDate(0, 1, -1).Day()
}
