package repository

import (
	"cantera-backend/internal/model"

	"gorm.io/gorm"
)

type CostRuleRepository interface {
	Create(rule *model.SpecificCostRule) error
	GetByID(id uint) (*model.SpecificCostRule, error)
	GetByOrigin(machineID uint) ([]model.SpecificCostRule, error)
	GetAll() ([]model.SpecificCostRule, error)
	// SumPercentageForOrigin returns the current percentage total for one
	// origin machine, optionally excluding a rule (for updates).
	SumPercentageForOrigin(machineID uint, excludeRuleID uint) (float64, error)
	Update(rule *model.SpecificCostRule) error
	Delete(id uint) error
}

type costRuleRepository struct {
	db *gorm.DB
}

func NewCostRuleRepository(db *gorm.DB) CostRuleRepository {
	return &costRuleRepository{db}
}

func (r *costRuleRepository) Create(rule *model.SpecificCostRule) error {
	return r.db.Create(rule).Error
}

func (r *costRuleRepository) GetByID(id uint) (*model.SpecificCostRule, error) {
	var rule model.SpecificCostRule
	err := r.db.First(&rule, id).Error
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *costRuleRepository) GetByOrigin(machineID uint) ([]model.SpecificCostRule, error) {
	var rules []model.SpecificCostRule
	err := r.db.Where("machine_origin_id = ?", machineID).Find(&rules).Error
	return rules, err
}

func (r *costRuleRepository) GetAll() ([]model.SpecificCostRule, error) {
	var rules []model.SpecificCostRule
	err := r.db.Preload("TargetCenter").Preload("TargetMachine").Find(&rules).Error
	return rules, err
}

func (r *costRuleRepository) SumPercentageForOrigin(machineID uint, excludeRuleID uint) (float64, error) {
	var total *float64
	q := r.db.Model(&model.SpecificCostRule{}).
		Where("machine_origin_id = ?", machineID)
	if excludeRuleID != 0 {
		q = q.Where("id <> ?", excludeRuleID)
	}
	err := q.Select("SUM(percentage)").Scan(&total).Error
	if err != nil || total == nil {
		return 0, err
	}
	return *total, nil
}

func (r *costRuleRepository) Update(rule *model.SpecificCostRule) error {
	return r.db.Save(rule).Error
}

func (r *costRuleRepository) Delete(id uint) error {
	return r.db.Delete(&model.SpecificCostRule{}, id).Error
}
