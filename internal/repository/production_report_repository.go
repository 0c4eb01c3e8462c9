package repository

import (
	"time"

	"cantera-backend/internal/model"

	"gorm.io/gorm"
)

type ProductionReportRepository interface {
	CreateCP(report *model.CPDailyReport) error
	GetCPByPeriod(start, end time.Time) ([]model.CPDailyReport, error)
	GetCPByWorkerAndDate(workerID uint, date time.Time) (*model.CPDailyReport, error)

	CreateCR(report *model.CRDailyReport) error
	GetCRByPeriod(start, end time.Time) ([]model.CRDailyReport, error)
	GetCRByWorkerAndDate(workerID uint, date time.Time) (*model.CRDailyReport, error)

	// UpsertWeeklyPlan writes the plan keyed by its Monday date, replacing an
	// existing row for the same week (idempotent write).
	UpsertWeeklyPlan(plan *model.CPWeeklyPlan) error
	GetWeeklyPlan(monday time.Time) (*model.CPWeeklyPlan, error)
	GetWeeklyPlans(start, end time.Time) ([]model.CPWeeklyPlan, error)
}

type productionReportRepository struct {
	db *gorm.DB
}

func NewProductionReportRepository(db *gorm.DB) ProductionReportRepository {
	return &productionReportRepository{db}
}

func (r *productionReportRepository) CreateCP(report *model.CPDailyReport) error {
	return r.db.Create(report).Error
}

func (r *productionReportRepository) GetCPByPeriod(start, end time.Time) ([]model.CPDailyReport, error) {
	var reports []model.CPDailyReport
	err := r.db.Where("date >= ? AND date < ?", start, end).Order("date asc").Find(&reports).Error
	return reports, err
}

func (r *productionReportRepository) GetCPByWorkerAndDate(workerID uint, date time.Time) (*model.CPDailyReport, error) {
	var report model.CPDailyReport
	err := r.db.Where("worker_id = ? AND DATE(date) = ?", workerID, date.Format("2006-01-02")).First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *productionReportRepository) CreateCR(report *model.CRDailyReport) error {
	return r.db.Create(report).Error
}

func (r *productionReportRepository) GetCRByPeriod(start, end time.Time) ([]model.CRDailyReport, error) {
	var reports []model.CRDailyReport
	err := r.db.Where("date >= ? AND date < ?", start, end).Order("date asc").Find(&reports).Error
	return reports, err
}

func (r *productionReportRepository) GetCRByWorkerAndDate(workerID uint, date time.Time) (*model.CRDailyReport, error) {
	var report model.CRDailyReport
	err := r.db.Where("worker_id = ? AND DATE(date) = ?", workerID, date.Format("2006-01-02")).First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *productionReportRepository) UpsertWeeklyPlan(plan *model.CPWeeklyPlan) error {
	var existing model.CPWeeklyPlan
	err := r.db.Where("week_monday = ?", plan.WeekMonday).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.db.Create(plan).Error
	}
	if err != nil {
		return err
	}
	plan.ID = existing.ID
	plan.CreatedAt = existing.CreatedAt
	return r.db.Save(plan).Error
}

func (r *productionReportRepository) GetWeeklyPlan(monday time.Time) (*model.CPWeeklyPlan, error) {
	var plan model.CPWeeklyPlan
	err := r.db.Where("week_monday = ?", monday).First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *productionReportRepository) GetWeeklyPlans(start, end time.Time) ([]model.CPWeeklyPlan, error) {
	var plans []model.CPWeeklyPlan
	err := r.db.Where("week_monday >= ? AND week_monday < ?", start, end).
		Order("week_monday asc").Find(&plans).Error
	return plans, err
}
