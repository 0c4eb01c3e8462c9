package repository

import (
	"cantera-backend/internal/model"

	"gorm.io/gorm"
)

type CostCenterRepository interface {
	Create(center *model.CostCenter) error
	GetByID(id uint) (*model.CostCenter, error)
	GetAll() ([]model.CostCenter, error)
	Update(center *model.CostCenter) error
	Delete(id uint) error

	CreateSubCenter(sub *model.SubCenter) error
	GetSubCenters(centerID uint) ([]model.SubCenter, error)
	UpdateSubCenter(sub *model.SubCenter) error
	DeleteSubCenter(id uint) error
}

type costCenterRepository struct {
	db *gorm.DB
}

func NewCostCenterRepository(db *gorm.DB) CostCenterRepository {
	return &costCenterRepository{db}
}

func (r *costCenterRepository) Create(center *model.CostCenter) error {
	return r.db.Create(center).Error
}

func (r *costCenterRepository) GetByID(id uint) (*model.CostCenter, error) {
	var center model.CostCenter
	err := r.db.Preload("SubCenters").First(&center, id).Error
	if err != nil {
		return nil, err
	}
	return &center, nil
}

func (r *costCenterRepository) GetAll() ([]model.CostCenter, error) {
	var centers []model.CostCenter
	err := r.db.Preload("SubCenters").Order("code asc").Find(&centers).Error
	return centers, err
}

func (r *costCenterRepository) Update(center *model.CostCenter) error {
	return r.db.Save(center).Error
}

// Delete refuses to remove a cost center that machines or personal reports
// still point at. Audit history wins over cleanup.
func (r *costCenterRepository) Delete(id uint) error {
	var machines int64
	r.db.Model(&model.Machine{}).Where("cost_center_id = ?", id).Count(&machines)
	if machines > 0 {
		return &DependentsError{Entity: "cost center", Dependent: "machine", Count: machines}
	}

	var reports int64
	r.db.Model(&model.PersonalReport{}).Where("cost_center_id = ?", id).Count(&reports)
	if reports > 0 {
		return &DependentsError{Entity: "cost center", Dependent: "personal report", Count: reports}
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cost_center_id = ?", id).Delete(&model.SubCenter{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.CostCenter{}, id).Error
	})
}

func (r *costCenterRepository) CreateSubCenter(sub *model.SubCenter) error {
	return r.db.Create(sub).Error
}

func (r *costCenterRepository) GetSubCenters(centerID uint) ([]model.SubCenter, error) {
	var subs []model.SubCenter
	err := r.db.Where("cost_center_id = ?", centerID).Order("code asc").Find(&subs).Error
	return subs, err
}

func (r *costCenterRepository) UpdateSubCenter(sub *model.SubCenter) error {
	return r.db.Save(sub).Error
}

func (r *costCenterRepository) DeleteSubCenter(id uint) error {
	return r.db.Delete(&model.SubCenter{}, id).Error
}
