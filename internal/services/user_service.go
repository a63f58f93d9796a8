package services

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"mangoadmi/internal/models"
	"mangoadmi/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// SignUpRequest is the body accepted by the signup endpoint.
type SignUpRequest struct {
	FirstName       string `json:"firstName" validate:"required"`
	LastName        string `json:"lastName" validate:"required"`
	Email           string `json:"email" validate:"required"`
	Phone           string `json:"phone" validate:"required"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword"`
	AgreeToTerms    bool   `json:"agreeToTerms"`
}

// PasswordVerifier checks a plaintext secret against a stored digest.
type PasswordVerifier interface {
	Verify(secret, digest string) bool
}

// UserService handles business logic for user accounts.
type UserService struct {
	repo     repositories.UserRepository
	verifier PasswordVerifier
	notifier Notifier
	validate *validator.Validate
	logger   *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(repo repositories.UserRepository, verifier PasswordVerifier, notifier Notifier, logger *slog.Logger) *UserService {
	return &UserService{
		repo:     repo,
		verifier: verifier,
		notifier: notifier,
		validate: newValidator(),
		logger:   logger,
	}
}

// SignUp validates req, creates the account and fires the best-effort
// registration notifications.
func (s *UserService) SignUp(req SignUpRequest) (*models.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, ValidationError("All fields are required", fieldErrors(err))
	}
	if req.Password != req.ConfirmPassword {
		return nil, ValidationError("Passwords do not match", nil)
	}
	if !req.AgreeToTerms {
		return nil, ValidationError("You must agree to the terms and conditions", nil)
	}

	if _, err := s.repo.FindByEmail(req.Email); err == nil {
		return nil, ConflictError("Email already registered")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	user := &models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		Password:     req.Password,
		AgreeToTerms: req.AgreeToTerms,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info("new user registered", slog.Uint64("user_id", uint64(user.ID)), slog.String("email", user.Email))
	if s.notifier != nil {
		s.notifier.NotifyUserRegistered(user)
	}
	return user, nil
}

// GetUser retrieves a single user by id.
func (s *UserService) GetUser(id uint) (*models.User, error) {
	user, err := s.repo.FindByID(id)
	if err != nil {
		return nil, notFoundOr(err, "User not found")
	}
	return user, nil
}

// GetAllUsers retrieves every user, newest first.
func (s *UserService) GetAllUsers() ([]models.User, error) {
	return s.repo.FindAll()
}

// UpdateUser applies a partial update of firstName, lastName and phone.
func (s *UserService) UpdateUser(id uint, update models.UserUpdate) (*models.User, error) {
	user, err := s.repo.Update(id, update)
	if err != nil {
		return nil, notFoundOr(err, "User not found")
	}
	return user, nil
}

// DeleteUser removes a user by id.
func (s *UserService) DeleteUser(id uint) error {
	removed, err := s.repo.Delete(id)
	if err != nil {
		return err
	}
	if !removed {
		return NotFoundError("User not found")
	}
	return nil
}

// VerifyPassword reports whether password matches the user's stored digest.
// Not yet exposed over HTTP; kept for a future login endpoint.
func (s *UserService) VerifyPassword(user *models.User, password string) bool {
	return s.verifier.Verify(password, user.Password)
}

// newValidator reports field names as they appear in the JSON body.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func notFoundOr(err error, message string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return NotFoundError(message)
	}
	return err
}

func fieldErrors(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}
	errorMessages := make(map[string]string, len(validationErrors))
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return errorMessages
}
