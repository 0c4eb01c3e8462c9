package repository

import (
	"time"

	"cantera-backend/internal/model"

	"gorm.io/gorm"
)

type PersonalReportRepository interface {
	Create(report *model.PersonalReport) error
	GetByID(id uint) (*model.PersonalReport, error)
	GetByWorkerAndMonth(workerID uint, year int, month time.Month) ([]model.PersonalReport, error)
	GetByMonth(year int, month time.Month) ([]model.PersonalReport, error)
	Update(report *model.PersonalReport) error
	Delete(id uint) error
}

type personalReportRepository struct {
	db *gorm.DB
}

func NewPersonalReportRepository(db *gorm.DB) PersonalReportRepository {
	return &personalReportRepository{db}
}

func (r *personalReportRepository) Create(report *model.PersonalReport) error {
	return r.db.Create(report).Error
}

func (r *personalReportRepository) GetByID(id uint) (*model.PersonalReport, error) {
	var report model.PersonalReport
	err := r.db.First(&report, id).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *personalReportRepository) GetByWorkerAndMonth(workerID uint, year int, month time.Month) ([]model.PersonalReport, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0)

	var reports []model.PersonalReport
	err := r.db.Where("worker_id = ? AND date >= ? AND date < ?", workerID, start, end).
		Order("date asc").Find(&reports).Error
	return reports, err
}

func (r *personalReportRepository) GetByMonth(year int, month time.Month) ([]model.PersonalReport, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0)

	var reports []model.PersonalReport
	err := r.db.Preload("Worker").Where("date >= ? AND date < ?", start, end).
		Order("date asc").Find(&reports).Error
	return reports, err
}

func (r *personalReportRepository) Update(report *model.PersonalReport) error {
	return r.db.Save(report).Error
}

func (r *personalReportRepository) Delete(id uint) error {
	return r.db.Delete(&model.PersonalReport{}, id).Error
}
