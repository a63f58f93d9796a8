package repositories

import (
	"errors"

	"mangoadmi/internal/models"
)

// ErrNotFound is returned when a lookup, update or delete matches no row.
var ErrNotFound = errors.New("record not found")

// PasswordHasher turns a plaintext secret into a one-way digest.
type PasswordHasher interface {
	Hash(secret string) (string, error)
}

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	FindByEmail(email string) (*models.User, error)
	FindByID(id uint) (*models.User, error)
	FindAll() ([]models.User, error)
	Update(id uint, update models.UserUpdate) (*models.User, error)
	Delete(id uint) (bool, error)
}
