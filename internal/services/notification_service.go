package services

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"sync"
	"time"

	"mangoadmi/internal/config"
	"mangoadmi/internal/models"
	"mangoadmi/pkg/mailer"
	"mangoadmi/pkg/rabbitmq"

	"github.com/nyaruka/phonenumbers"
	"github.com/samber/lo"
)

// Notifier fires the best-effort side effects of a successful create.
type Notifier interface {
	NotifyUserRegistered(user *models.User)
	NotifyContactSubmitted(form *models.ContactForm)
}

// EventPublisher publishes domain events to a broker.
type EventPublisher interface {
	Publish(routingKey string, payload map[string]interface{}) error
}

// ContactDetails is the data summarised in the admin notification.
type ContactDetails struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	Subject     string
	Message     string
	ServiceType string
}

// NotificationService formats the admin and client emails and dispatches them
// in the background. Every dispatch is attempted once; failures are logged
// and never reach the caller.
type NotificationService struct {
	mailer    mailer.Mailer
	publisher EventPublisher
	cfg       config.MailConfig
	logger    *slog.Logger
	timeout   time.Duration
	now       func() time.Time
	wg        sync.WaitGroup
}

// NewNotificationService creates a NotificationService. publisher may be nil.
func NewNotificationService(m mailer.Mailer, publisher EventPublisher, cfg config.MailConfig, logger *slog.Logger) *NotificationService {
	timeout := time.Duration(cfg.SMTPTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if cfg.AppName == "" {
		cfg.AppName = "Mango Admi"
	}
	return &NotificationService{
		mailer:    m,
		publisher: publisher,
		cfg:       cfg,
		logger:    logger,
		timeout:   timeout,
		now:       time.Now,
	}
}

// NotifyUserRegistered tells the admin about a new account and welcomes the user.
func (s *NotificationService) NotifyUserRegistered(user *models.User) {
	s.dispatch("admin notification", s.AdminNotification(ContactDetails{
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Email:       user.Email,
		Phone:       user.Phone,
		Subject:     "New User Registration",
		Message:     fmt.Sprintf("A new user has signed up: %s %s (%s)", user.FirstName, user.LastName, user.Email),
		ServiceType: models.DefaultServiceType,
	}))
	s.dispatch("client acknowledgement", s.ClientAcknowledgement(user.Email, user.FirstName))
	s.publish(rabbitmq.UserRegistered, map[string]interface{}{
		"id":        user.ID,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
		"email":     user.Email,
	})
}

// NotifyContactSubmitted forwards a submission to the admin and acknowledges it to the sender.
func (s *NotificationService) NotifyContactSubmitted(form *models.ContactForm) {
	details := ContactDetails{
		FirstName:   form.FirstName,
		LastName:    form.LastName,
		Email:       form.Email,
		Phone:       form.Phone,
		Message:     form.Message,
		ServiceType: form.ServiceType,
		Subject:     lo.FromPtr(form.Subject),
	}
	s.dispatch("admin notification", s.AdminNotification(details))
	s.dispatch("client acknowledgement", s.ClientAcknowledgement(form.Email, form.FirstName))
	s.publish(rabbitmq.ContactSubmitted, map[string]interface{}{
		"id":          form.ID,
		"email":       form.Email,
		"serviceType": form.ServiceType,
	})
}

// Wait blocks until every in-flight dispatch has finished.
func (s *NotificationService) Wait() {
	s.wg.Wait()
}

// AdminNotification builds the summary sent to the admin address.
func (s *NotificationService) AdminNotification(d ContactDetails) mailer.Message {
	serviceType := d.ServiceType
	if serviceType == "" {
		serviceType = "Not specified"
	}
	subjectText := d.Subject
	if subjectText == "" {
		subjectText = "No subject"
	}
	phone := formatPhone(d.Phone, s.cfg.DefaultPhoneRegion)
	submitted := s.now().Format("02 Jan 2006 15:04:05 MST")

	var subjectHTML string
	if d.Subject != "" {
		subjectHTML = fmt.Sprintf("\n    <p><strong>Subject:</strong> %s</p>", html.EscapeString(d.Subject))
	}

	htmlBody := fmt.Sprintf(`<h2>New Contact Form Submission</h2>
    <p><strong>Name:</strong> %s %s</p>
    <p><strong>Email:</strong> %s</p>
    <p><strong>Phone:</strong> %s</p>
    <p><strong>Service Type:</strong> %s</p>%s
    <p><strong>Message:</strong></p>
    <p>%s</p>
    <hr>
    <p><em>Submitted on: %s</em></p>`,
		html.EscapeString(d.FirstName), html.EscapeString(d.LastName),
		html.EscapeString(d.Email),
		html.EscapeString(phone),
		html.EscapeString(serviceType),
		subjectHTML,
		strings.ReplaceAll(html.EscapeString(d.Message), "\n", "<br>"),
		submitted,
	)

	textBody := fmt.Sprintf(`New Contact Form Submission

Name: %s %s
Email: %s
Phone: %s
Service Type: %s
Subject: %s

Message:
%s

Submitted on: %s`,
		d.FirstName, d.LastName, d.Email, phone, serviceType, subjectText, d.Message, submitted)

	lead := d.Subject
	if lead == "" {
		lead = d.FirstName
	}

	return mailer.Message{
		To:       []string{s.cfg.AdminAddress},
		Subject:  fmt.Sprintf("New Contact Form: %s %s", lead, d.LastName),
		TextBody: textBody,
		HTMLBody: htmlBody,
	}
}

// ClientAcknowledgement builds the fixed thank-you email. name falls back to the address.
func (s *NotificationService) ClientAcknowledgement(email, name string) mailer.Message {
	if strings.TrimSpace(name) == "" {
		name = email
	}
	app := s.cfg.AppName

	htmlBody := fmt.Sprintf(`<h2>Thank You for Contacting %s!</h2>
    <p>Hi %s,</p>
    <p>Thank you for reaching out to us. We have received your message and appreciate your interest in our services.</p>
    <p>Our team will review your request and get back to you as soon as possible. We typically respond within 24-48 hours.</p>
    <p>If you have any urgent inquiries, please feel free to call us directly.</p>
    <br>
    <p>Best regards,<br>
    <strong>%s Team</strong><br>
    Achieve Your Goals</p>`,
		html.EscapeString(app), html.EscapeString(name), html.EscapeString(app))

	textBody := fmt.Sprintf(`Hi %s,

Thank you for reaching out to us. We have received your message and appreciate your interest in our services.

Our team will review your request and get back to you as soon as possible. We typically respond within 24-48 hours.

If you have any urgent inquiries, please feel free to call us directly.

Best regards,
%s Team
Achieve Your Goals`, name, app)

	return mailer.Message{
		To:       []string{email},
		Subject:  fmt.Sprintf("We Received Your Message - %s", app),
		TextBody: textBody,
		HTMLBody: htmlBody,
	}
}

func (s *NotificationService) dispatch(kind string, msg mailer.Message) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("email dispatch panicked", slog.String("kind", kind), slog.Any("panic", r))
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		receipt, err := s.mailer.Send(ctx, msg)
		if err != nil {
			s.logger.Error("failed to send email",
				slog.String("kind", kind),
				slog.Any("to", msg.To),
				slog.String("error", err.Error()),
			)
			return
		}
		s.logger.Info("email sent",
			slog.String("kind", kind),
			slog.String("message_id", receipt.MessageID),
			slog.Any("to", receipt.Recipients),
		)
	}()
}

func (s *NotificationService) publish(routingKey string, payload map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.publisher.Publish(routingKey, payload); err != nil {
			s.logger.Warn("failed to publish event",
				slog.String("event", routingKey),
				slog.String("error", err.Error()),
			)
		}
	}()
}

// formatPhone renders raw in international format when it parses as a valid
// number for region, and returns it unchanged otherwise.
func formatPhone(raw, region string) string {
	if region == "" {
		return raw
	}
	num, err := phonenumbers.Parse(raw, region)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return raw
	}
	return phonenumbers.Format(num, phonenumbers.INTERNATIONAL)
}
