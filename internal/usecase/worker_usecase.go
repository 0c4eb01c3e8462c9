package usecase

import (
	"errors"
	"time"

	"cantera-backend/config"
	"cantera-backend/internal/model"
	"cantera-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var jwtSecret []byte

// JWTSecret exposes the signing key to the auth middleware so both sides
// always use the same value. Resolved lazily so godotenv has loaded by the
// time the env var is read.
func JWTSecret() []byte {
	if jwtSecret == nil {
		jwtSecret = []byte(config.GetEnv("JWT_SECRET", "cantera-dev-secret"))
	}
	return jwtSecret
}

type WorkerUsecase struct {
	repo repository.WorkerRepository
}

func NewWorkerUsecase(repo repository.WorkerRepository) *WorkerUsecase {
	return &WorkerUsecase{repo: repo}
}

// Register creates a worker whose initial password is the first 4 characters
// of their DNI (business rule; workers change it afterwards).
func (u *WorkerUsecase) Register(name, dni, role string) error {
	if len(dni) < 4 {
		return errors.New("DNI must have at least 4 characters")
	}
	if role == "" {
		role = "WORKER"
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(dni[:4]), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	worker := model.Worker{
		Name:     name,
		DNI:      dni,
		Password: string(hashed),
		Role:     role,
		IsActive: true,
	}
	return u.repo.Create(&worker)
}

func (u *WorkerUsecase) Login(dni, password string) (string, *model.Worker, error) {
	worker, err := u.repo.GetByDNI(dni)
	if err != nil {
		return "", nil, errors.New("worker not found")
	}
	if !worker.IsActive {
		return "", nil, errors.New("worker account is disabled")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(worker.Password), []byte(password)); err != nil {
		return "", nil, errors.New("wrong password")
	}

	claims := jwt.MapClaims{
		"worker_id": worker.ID,
		"dni":       worker.DNI,
		"role":      worker.Role,
		"exp":       time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(JWTSecret())
	if err != nil {
		return "", nil, err
	}
	return signed, worker, nil
}

func (u *WorkerUsecase) ChangePassword(workerID uint, oldPassword, newPassword string) error {
	worker, err := u.repo.GetByID(workerID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(worker.Password), []byte(oldPassword)); err != nil {
		return errors.New("wrong current password")
	}
	if len(newPassword) < 4 {
		return errors.New("new password is too short")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	worker.Password = string(hashed)
	return u.repo.Update(worker)
}
