package repository

import (
	"cantera-backend/internal/model"

	"gorm.io/gorm"
)

type WorkerRepository interface {
	Create(worker *model.Worker) error
	GetByDNI(dni string) (*model.Worker, error)
	GetByID(id uint) (*model.Worker, error)
	GetAll(activeOnly bool) ([]model.Worker, error)
	Update(worker *model.Worker) error
	Deactivate(id uint) error
}

type workerRepository struct {
	db *gorm.DB
}

func NewWorkerRepository(db *gorm.DB) WorkerRepository {
	return &workerRepository{db}
}

func (r *workerRepository) Create(worker *model.Worker) error {
	return r.db.Create(worker).Error
}

func (r *workerRepository) GetByDNI(dni string) (*model.Worker, error) {
	var worker model.Worker
	err := r.db.Where("dni = ?", dni).First(&worker).Error
	if err != nil {
		return nil, err
	}
	return &worker, nil
}

func (r *workerRepository) GetByID(id uint) (*model.Worker, error) {
	var worker model.Worker
	err := r.db.First(&worker, id).Error
	if err != nil {
		return nil, err
	}
	return &worker, nil
}

func (r *workerRepository) GetAll(activeOnly bool) ([]model.Worker, error) {
	var workers []model.Worker
	q := r.db.Order("name asc")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Find(&workers).Error
	return workers, err
}

func (r *workerRepository) Update(worker *model.Worker) error {
	return r.db.Save(worker).Error
}

// Deactivate soft-disables a worker instead of deleting, so their operation
// logs and personal reports keep a valid reference.
func (r *workerRepository) Deactivate(id uint) error {
	return r.db.Model(&model.Worker{}).Where("id = ?", id).Update("is_active", false).Error
}
