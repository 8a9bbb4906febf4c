package repository

import (
	"errors"
	"log"

	"github.com/confluencehack/registration_service/internal/domain"
	"gorm.io/gorm"
)

var ErrRegistrationNotFound = errors.New("registration not found")

type RegistrationRepository interface {
	// CreateWithCode inserts the row, derives the public code from the
	// generated ID and persists it on the same row, all in one transaction.
	CreateWithCode(reg *domain.HackathonRegistration, code func(id uint) string) error
	FindByUserID(userID uint) (*domain.HackathonRegistration, error)
	ExistsForUser(userID uint) (bool, error)
	ListAll() ([]domain.HackathonRegistration, error)
}

type registrationRepository struct {
	db *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

func (r *registrationRepository) CreateWithCode(reg *domain.HackathonRegistration, code func(id uint) string) error {
	if reg == nil {
		return errors.New("nil registration")
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(reg).Error; err != nil {
			return err
		}
		reg.RegistrationID = code(reg.ID)
		return tx.Model(reg).Update("registration_id", reg.RegistrationID).Error
	})
	if err != nil {
		log.Printf("create registration error: %v", err)
	}
	return err
}

func (r *registrationRepository) FindByUserID(userID uint) (*domain.HackathonRegistration, error) {
	reg := &domain.HackathonRegistration{}

	if err := r.db.First(reg, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistrationNotFound
		}
		log.Printf("find registration by user error: %v", err)
		return nil, err
	}

	return reg, nil
}

func (r *registrationRepository) ExistsForUser(userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&domain.HackathonRegistration{}).Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		log.Printf("count registrations by user error: %v", err)
		return false, err
	}
	return count > 0, nil
}

func (r *registrationRepository) ListAll() ([]domain.HackathonRegistration, error) {
	var regs []domain.HackathonRegistration
	if err := r.db.Order("id").Find(&regs).Error; err != nil {
		log.Printf("list registrations error: %v", err)
		return nil, err
	}
	return regs, nil
}
