package repositories

import (
	"errors"
	"fmt"
	"strings"

	"mangoadmi/internal/models"
	"mangoadmi/pkg/database"

	"gorm.io/gorm"
)

// GORMContactRepository is a GORM implementation of ContactRepository.
type GORMContactRepository struct {
	db *gorm.DB
}

// NewGORMContactRepository creates a new instance of GORMContactRepository.
func NewGORMContactRepository(gw *database.Gateway) *GORMContactRepository {
	return &GORMContactRepository{
		db: gw.DB(),
	}
}

// Create inserts a submission, defaulting serviceType to "Other" and storing
// an empty subject as NULL.
func (r *GORMContactRepository) Create(form *models.ContactForm) error {
	if strings.TrimSpace(form.ServiceType) == "" {
		form.ServiceType = models.DefaultServiceType
	}
	if form.Subject != nil && *form.Subject == "" {
		form.Subject = nil
	}
	if err := r.db.Create(form).Error; err != nil {
		return fmt.Errorf("failed to create contact form: %w", err)
	}
	return nil
}

// FindByID retrieves a submission by id.
func (r *GORMContactRepository) FindByID(id uint) (*models.ContactForm, error) {
	var form models.ContactForm
	if err := r.db.First(&form, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("contact form with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get contact form by ID %d: %w", id, err)
	}
	return &form, nil
}

// FindAll returns every submission, newest first.
func (r *GORMContactRepository) FindAll() ([]models.ContactForm, error) {
	forms := []models.ContactForm{}
	if err := r.db.Clauses(newestFirst).Find(&forms).Error; err != nil {
		return nil, fmt.Errorf("failed to get all contact forms: %w", err)
	}
	return forms, nil
}

// Delete removes a submission by id and reports whether a row was removed.
func (r *GORMContactRepository) Delete(id uint) (bool, error) {
	res := r.db.Delete(&models.ContactForm{}, "id = ?", id)
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete contact form %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}
