package services_test

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"mangoadmi/internal/config"
	"mangoadmi/internal/models"
	"mangoadmi/internal/services"
	"mangoadmi/pkg/logs"
	"mangoadmi/pkg/mailer"
	"mangoadmi/pkg/rabbitmq"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func mailConfig() config.MailConfig {
	return config.MailConfig{
		AppName:            "Mango Admi",
		AdminAddress:       "admin@mangoadmi.in",
		FromAddress:        "noreply@mangoadmi.in",
		DefaultPhoneRegion: "IN",
		SMTPTimeoutSeconds: 5,
	}
}

func sentTo(addr string) interface{} {
	return mock.MatchedBy(func(m mailer.Message) bool {
		return len(m.To) == 1 && m.To[0] == addr
	})
}

func TestNotificationService_AdminNotification(t *testing.T) {
	svc := services.NewNotificationService(new(MockMailer), nil, mailConfig(), logs.Discard())

	msg := svc.AdminNotification(services.ContactDetails{
		FirstName: "A",
		LastName:  "B",
		Email:     "a@b.com",
		Phone:     "9876543210",
		Message:   "line one\n<b>line two</b>",
	})

	assert.Equal(t, []string{"admin@mangoadmi.in"}, msg.To)
	assert.Equal(t, "New Contact Form: A B", msg.Subject)
	assert.Contains(t, msg.HTMLBody, "<strong>Service Type:</strong> Not specified")
	assert.Contains(t, msg.HTMLBody, "line one<br>&lt;b&gt;line two&lt;/b&gt;")
	assert.Contains(t, msg.HTMLBody, "+91 98765 43210")
	assert.NotContains(t, msg.HTMLBody, "<strong>Subject:</strong>")
	assert.Contains(t, msg.TextBody, "Subject: No subject")
}

func TestNotificationService_AdminNotificationWithSubject(t *testing.T) {
	svc := services.NewNotificationService(new(MockMailer), nil, mailConfig(), logs.Discard())

	msg := svc.AdminNotification(services.ContactDetails{
		FirstName:   "A",
		LastName:    "B",
		Phone:       "not-a-number",
		Subject:     "Pricing",
		ServiceType: "Consulting",
		Message:     "hi",
	})

	assert.Equal(t, "New Contact Form: Pricing B", msg.Subject)
	assert.Contains(t, msg.HTMLBody, "<strong>Subject:</strong> Pricing")
	assert.Contains(t, msg.HTMLBody, "<strong>Phone:</strong> not-a-number")
	assert.Contains(t, msg.HTMLBody, "<strong>Service Type:</strong> Consulting")
}

func TestNotificationService_ClientAcknowledgement(t *testing.T) {
	svc := services.NewNotificationService(new(MockMailer), nil, mailConfig(), logs.Discard())

	msg := svc.ClientAcknowledgement("a@b.com", "Asha")
	assert.Equal(t, []string{"a@b.com"}, msg.To)
	assert.Equal(t, "We Received Your Message - Mango Admi", msg.Subject)
	assert.Contains(t, msg.HTMLBody, "Hi Asha,")
	assert.True(t, strings.HasPrefix(msg.TextBody, "Hi Asha,"))

	msg = svc.ClientAcknowledgement("a@b.com", "")
	assert.Contains(t, msg.HTMLBody, "Hi a@b.com,")
}

func TestNotificationService_ContactSubmittedDispatchesBoth(t *testing.T) {
	mockMailer := new(MockMailer)
	mockPublisher := new(MockPublisher)
	svc := services.NewNotificationService(mockMailer, mockPublisher, mailConfig(), logs.Discard())

	mockMailer.On("Send", mock.Anything, sentTo("admin@mangoadmi.in")).Return(mailer.Receipt{MessageID: "1"}, nil).Once()
	mockMailer.On("Send", mock.Anything, sentTo("a@b.com")).Return(mailer.Receipt{MessageID: "2"}, nil).Once()
	mockPublisher.On("Publish", rabbitmq.ContactSubmitted, mock.Anything).Return(nil).Once()

	svc.NotifyContactSubmitted(&models.ContactForm{
		ID: 1, FirstName: "A", LastName: "B", Email: "a@b.com", Phone: "123",
		Message: "hi", Subject: lo.ToPtr("Hello"), ServiceType: "Other",
	})
	svc.Wait()

	mockMailer.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestNotificationService_FailuresAreIndependent(t *testing.T) {
	mockMailer := new(MockMailer)
	mockPublisher := new(MockPublisher)
	svc := services.NewNotificationService(mockMailer, mockPublisher, mailConfig(), logs.Discard())

	mockMailer.On("Send", mock.Anything, sentTo("admin@mangoadmi.in")).
		Return(mailer.Receipt{}, mailer.ErrSend{Provider: "test", Err: errors.New("relay down")}).Once()
	mockMailer.On("Send", mock.Anything, sentTo("asha@example.com")).Return(mailer.Receipt{MessageID: "2"}, nil).Once()
	mockPublisher.On("Publish", rabbitmq.UserRegistered, mock.Anything).Return(errors.New("broker gone")).Once()

	assert.NotPanics(t, func() {
		svc.NotifyUserRegistered(&models.User{ID: 3, FirstName: "Asha", LastName: "Rao", Email: "asha@example.com", Phone: "1"})
		svc.Wait()
	})

	// The acknowledgement still went out after the admin send failed.
	mockMailer.AssertExpectations(t)
	mockPublisher.AssertExpectations(t)
}

func TestNotificationService_RegistrationAdminMessage(t *testing.T) {
	var (
		mu   sync.Mutex
		sent []mailer.Message
	)
	mockMailer := new(MockMailer)
	mockMailer.On("Send", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		mu.Lock()
		defer mu.Unlock()
		sent = append(sent, args.Get(1).(mailer.Message))
	}).Return(mailer.Receipt{}, nil)

	svc := services.NewNotificationService(mockMailer, nil, mailConfig(), logs.Discard())
	svc.NotifyUserRegistered(&models.User{FirstName: "Asha", LastName: "Rao", Email: "asha@example.com", Phone: "1"})
	svc.Wait()

	require.Len(t, sent, 2)
	admin, found := lo.Find(sent, func(m mailer.Message) bool { return m.To[0] == "admin@mangoadmi.in" })
	require.True(t, found)
	assert.Equal(t, "New Contact Form: New User Registration Rao", admin.Subject)
	assert.Contains(t, admin.TextBody, "A new user has signed up: Asha Rao (asha@example.com)")
}

func TestNotificationService_PanickingMailerIsContained(t *testing.T) {
	mockMailer := new(MockMailer)
	mockMailer.On("Send", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		panic("transport exploded")
	}).Return(mailer.Receipt{}, nil)

	svc := services.NewNotificationService(mockMailer, nil, mailConfig(), logs.Discard())
	assert.NotPanics(t, func() {
		svc.NotifyContactSubmitted(&models.ContactForm{FirstName: "A", LastName: "B", Email: "a@b.com", Message: "hi"})
		svc.Wait()
	})
}
