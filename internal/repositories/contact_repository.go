package repositories

import (
	"mangoadmi/internal/models"
)

// ContactRepository defines the interface for contact-form data access.
type ContactRepository interface {
	Create(form *models.ContactForm) error
	FindByID(id uint) (*models.ContactForm, error)
	FindAll() ([]models.ContactForm, error)
	Delete(id uint) (bool, error)
}
