package repository

import (
	"time"

	"cantera-backend/internal/model"

	"gorm.io/gorm"
)

type OperationLogRepository interface {
	Create(log *model.OperationLog) error
	// CreateWithSideEffects persists the log and, in the same transaction,
	// the machine's new hour reading and/or the maintenance definition's new
	// baseline. If any step fails the whole write rolls back, so the schedule
	// can never silently desync from the log that advanced it.
	CreateWithSideEffects(log *model.OperationLog, machine *model.Machine, def *model.MaintenanceDefinition) error
	GetByID(id uint) (*model.OperationLog, error)
	GetByMachine(machineID uint, limit int) ([]model.OperationLog, error)
	GetByMonthAndType(year int, month time.Month, logType string) ([]model.OperationLog, error)
	Update(log *model.OperationLog) error
}

type operationLogRepository struct {
	db *gorm.DB
}

func NewOperationLogRepository(db *gorm.DB) OperationLogRepository {
	return &operationLogRepository{db}
}

func (r *operationLogRepository) Create(log *model.OperationLog) error {
	return r.db.Create(log).Error
}

func (r *operationLogRepository) CreateWithSideEffects(log *model.OperationLog, machine *model.Machine, def *model.MaintenanceDefinition) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(log).Error; err != nil {
			return err
		}
		if machine != nil {
			if err := tx.Model(&model.Machine{}).Where("id = ?", machine.ID).
				Update("current_hours", machine.CurrentHours).Error; err != nil {
				return err
			}
		}
		if def != nil {
			if err := tx.Save(def).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *operationLogRepository) GetByID(id uint) (*model.OperationLog, error) {
	var log model.OperationLog
	err := r.db.Preload("Worker").Preload("Machine").First(&log, id).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *operationLogRepository) GetByMachine(machineID uint, limit int) ([]model.OperationLog, error) {
	var logs []model.OperationLog
	query := r.db.Where("machine_id = ?", machineID).Order("date desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&logs).Error
	return logs, err
}

func (r *operationLogRepository) GetByMonthAndType(year int, month time.Month, logType string) ([]model.OperationLog, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0)

	var logs []model.OperationLog
	err := r.db.Where("type = ? AND date >= ? AND date < ?", logType, start, end).
		Order("date asc").Find(&logs).Error
	return logs, err
}

// Update is the admin correction path; worker-facing code never mutates a
// persisted log.
func (r *operationLogRepository) Update(log *model.OperationLog) error {
	return r.db.Save(log).Error
}
