package services

import (
	"fmt"
	"log/slog"
	"strings"

	"mangoadmi/internal/models"
	"mangoadmi/internal/repositories"

	"github.com/go-playground/validator/v10"
)

// ContactRequest is the body accepted by the contact submission endpoint.
type ContactRequest struct {
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	Email       string `json:"email" validate:"required"`
	Phone       string `json:"phone" validate:"required"`
	Message     string `json:"message" validate:"required"`
	Subject     string `json:"subject"`
	ServiceType string `json:"serviceType"`
}

// ContactService handles business logic for contact-form submissions.
type ContactService struct {
	repo     repositories.ContactRepository
	notifier Notifier
	validate *validator.Validate
	logger   *slog.Logger
}

// NewContactService creates a new ContactService.
func NewContactService(repo repositories.ContactRepository, notifier Notifier, logger *slog.Logger) *ContactService {
	return &ContactService{
		repo:     repo,
		notifier: notifier,
		validate: newValidator(),
		logger:   logger,
	}
}

// SubmitContactForm validates and stores a submission, then fires the
// best-effort admin and client emails.
func (s *ContactService) SubmitContactForm(req ContactRequest) (*models.ContactForm, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, ValidationError("All required fields must be provided", fieldErrors(err))
	}

	form := &models.ContactForm{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		Message:     req.Message,
		ServiceType: req.ServiceType,
	}
	if strings.TrimSpace(req.Subject) != "" {
		form.Subject = &req.Subject
	}
	if err := s.repo.Create(form); err != nil {
		return nil, fmt.Errorf("failed to submit contact form: %w", err)
	}

	s.logger.Info("contact form submitted", slog.Uint64("contact_id", uint64(form.ID)), slog.String("email", form.Email))
	if s.notifier != nil {
		s.notifier.NotifyContactSubmitted(form)
	}
	return form, nil
}

// GetContactForms retrieves every submission, newest first.
func (s *ContactService) GetContactForms() ([]models.ContactForm, error) {
	return s.repo.FindAll()
}

// GetContactForm retrieves a single submission by id.
func (s *ContactService) GetContactForm(id uint) (*models.ContactForm, error) {
	form, err := s.repo.FindByID(id)
	if err != nil {
		return nil, notFoundOr(err, "Contact form not found")
	}
	return form, nil
}

// DeleteContactForm removes a submission by id.
func (s *ContactService) DeleteContactForm(id uint) error {
	removed, err := s.repo.Delete(id)
	if err != nil {
		return err
	}
	if !removed {
		return NotFoundError("Contact form not found")
	}
	return nil
}
