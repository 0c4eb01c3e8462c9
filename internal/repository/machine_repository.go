package repository

import (
	"cantera-backend/internal/model"

	"gorm.io/gorm"
)

type MachineRepository interface {
	Create(machine *model.Machine) error
	GetByID(id uint) (*model.Machine, error)
	GetAll(activeOnly bool) ([]model.Machine, error)
	GetSelectableForReports() ([]model.Machine, error)
	Update(machine *model.Machine) error
	Delete(id uint) error

	CreateDefinition(def *model.MaintenanceDefinition) error
	GetDefinition(id uint) (*model.MaintenanceDefinition, error)
	GetDefinitions(machineID uint) ([]model.MaintenanceDefinition, error)
	UpdateDefinition(def *model.MaintenanceDefinition) error
	DeleteDefinition(id uint) error
}

type machineRepository struct {
	db *gorm.DB
}

func NewMachineRepository(db *gorm.DB) MachineRepository {
	return &machineRepository{db}
}

func (r *machineRepository) Create(machine *model.Machine) error {
	return r.db.Create(machine).Error
}

func (r *machineRepository) GetByID(id uint) (*model.Machine, error) {
	var machine model.Machine
	err := r.db.Preload("MaintenanceDefinitions").Preload("CostCenter").First(&machine, id).Error
	if err != nil {
		return nil, err
	}
	return &machine, nil
}

func (r *machineRepository) GetAll(activeOnly bool) ([]model.Machine, error) {
	var machines []model.Machine
	q := r.db.Preload("MaintenanceDefinitions").Order("name asc")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Find(&machines).Error
	return machines, err
}

func (r *machineRepository) GetSelectableForReports() ([]model.Machine, error) {
	var machines []model.Machine
	err := r.db.Where("selectable_for_reports = ?", true).Order("name asc").Find(&machines).Error
	return machines, err
}

func (r *machineRepository) Update(machine *model.Machine) error {
	return r.db.Save(machine).Error
}

// Delete cascades the machine's maintenance definitions but is blocked while
// operation logs or personal reports reference the machine.
func (r *machineRepository) Delete(id uint) error {
	var logs int64
	r.db.Model(&model.OperationLog{}).Where("machine_id = ?", id).Count(&logs)
	if logs > 0 {
		return &DependentsError{Entity: "machine", Dependent: "operation log", Count: logs}
	}

	var reports int64
	r.db.Model(&model.PersonalReport{}).Where("machine_id = ?", id).Count(&reports)
	if reports > 0 {
		return &DependentsError{Entity: "machine", Dependent: "personal report", Count: reports}
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("machine_id = ?", id).Delete(&model.MaintenanceDefinition{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Machine{}, id).Error
	})
}

func (r *machineRepository) CreateDefinition(def *model.MaintenanceDefinition) error {
	return r.db.Create(def).Error
}

func (r *machineRepository) GetDefinition(id uint) (*model.MaintenanceDefinition, error) {
	var def model.MaintenanceDefinition
	err := r.db.First(&def, id).Error
	if err != nil {
		return nil, err
	}
	return &def, nil
}

func (r *machineRepository) GetDefinitions(machineID uint) ([]model.MaintenanceDefinition, error) {
	var defs []model.MaintenanceDefinition
	err := r.db.Where("machine_id = ?", machineID).Find(&defs).Error
	return defs, err
}

func (r *machineRepository) UpdateDefinition(def *model.MaintenanceDefinition) error {
	return r.db.Save(def).Error
}

func (r *machineRepository) DeleteDefinition(id uint) error {
	return r.db.Delete(&model.MaintenanceDefinition{}, id).Error
}
