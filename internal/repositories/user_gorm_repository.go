package repositories

import (
	"errors"
	"fmt"
	"time"

	"mangoadmi/internal/models"
	"mangoadmi/pkg/database"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// newestFirst orders rows by creation time, most recent first, with id as tie-breaker.
var newestFirst = clause.OrderBy{Columns: []clause.OrderByColumn{
	{Column: clause.Column{Name: "createdAt"}, Desc: true},
	{Column: clause.Column{Name: "id"}, Desc: true},
}}

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db     *gorm.DB
	hasher PasswordHasher
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(gw *database.Gateway, hasher PasswordHasher) *GORMUserRepository {
	return &GORMUserRepository{
		db:     gw.DB(),
		hasher: hasher,
	}
}

// Create hashes the user's password and inserts the row. On success user
// carries the generated id and timestamps and Password holds the digest.
func (r *GORMUserRepository) Create(user *models.User) error {
	digest, err := r.hasher.Hash(user.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = digest
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByEmail retrieves a user by exact email.
func (r *GORMUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where(clause.Eq{Column: clause.Column{Name: "email"}, Value: email}).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with email %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return &user, nil
}

// FindByID retrieves a user by id.
func (r *GORMUserRepository) FindByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by ID %d: %w", id, err)
	}
	return &user, nil
}

// FindAll returns every user, newest first.
func (r *GORMUserRepository) FindAll() ([]models.User, error) {
	users := []models.User{}
	if err := r.db.Clauses(newestFirst).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}
	return users, nil
}

// Update applies the non-empty fields of update and refreshes updatedAt.
// ErrNotFound is returned when nothing was supplied or no row matched.
func (r *GORMUserRepository) Update(id uint, update models.UserUpdate) (*models.User, error) {
	changes := map[string]interface{}{}
	if v := update.FirstName; v != nil && *v != "" {
		changes["firstName"] = *v
	}
	if v := update.LastName; v != nil && *v != "" {
		changes["lastName"] = *v
	}
	if v := update.Phone; v != nil && *v != "" {
		changes["phone"] = *v
	}
	if len(changes) == 0 {
		return nil, fmt.Errorf("no fields to update for user %d: %w", id, ErrNotFound)
	}
	changes["updatedAt"] = time.Now()

	res := r.db.Model(&models.User{}).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update user %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("user with ID %d: %w", id, ErrNotFound)
	}
	return r.FindByID(id)
}

// Delete removes a user by id and reports whether a row was removed.
func (r *GORMUserRepository) Delete(id uint) (bool, error) {
	res := r.db.Delete(&models.User{}, "id = ?", id)
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete user %d: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}
