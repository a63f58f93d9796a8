package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"mangoadmi/internal/config"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

// Message is a single outbound email.
type Message struct {
	To       []string
	Subject  string
	TextBody string
	HTMLBody string
}

// Receipt describes an accepted delivery.
type Receipt struct {
	MessageID  string
	Recipients []string
	SentAt     time.Time
}

// Mailer delivers messages. Implementations must be safe for concurrent use.
type Mailer interface {
	Send(ctx context.Context, m Message) (Receipt, error)
}

type ErrInvalidMessage struct{ Reason string }

func (e ErrInvalidMessage) Error() string { return "invalid email message: " + e.Reason }

type ErrSend struct {
	Provider string
	Err      error
}

func (e ErrSend) Error() string { return fmt.Sprintf("email send failed (%s): %v", e.Provider, e.Err) }
func (e ErrSend) Unwrap() error { return e.Err }

// New returns an SMTP mailer when a host is configured, otherwise a mailer
// that only logs what it would have sent.
func New(cfg config.MailConfig, logger *slog.Logger) Mailer {
	if strings.TrimSpace(cfg.SMTPHost) == "" {
		return NewLogMailer(cfg.FromAddress, logger)
	}
	return NewSMTPMailer(cfg)
}

// SMTPMailer sends mail through an SMTP relay.
type SMTPMailer struct {
	cfg config.MailConfig
}

func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (s *SMTPMailer) Send(ctx context.Context, m Message) (Receipt, error) {
	msg, receipt, err := buildMessage(s.cfg.FromAddress, m)
	if err != nil {
		return Receipt{}, err
	}

	d := gomail.NewDialer(s.cfg.SMTPHost, s.cfg.SMTPPort, s.cfg.SMTPUsername, s.cfg.SMTPPassword)
	d.SSL = s.cfg.SMTPUseTLS
	if s.cfg.SMTPUseTLS {
		d.TLSConfig = &tls.Config{ServerName: s.cfg.SMTPHost}
	}

	done := make(chan error, 1)
	go func() {
		done <- d.DialAndSend(msg)
	}()

	// Respect ctx deadline if it's sooner than the configured timeout.
	wait := s.timeout()
	if dl, ok := ctx.Deadline(); ok {
		if d := time.Until(dl); d > 0 && d < wait {
			wait = d
		}
	}

	select {
	case err := <-done:
		if err != nil {
			return Receipt{}, ErrSend{Provider: "gomail/smtp", Err: err}
		}
		return receipt, nil
	case <-ctx.Done():
		return Receipt{}, ErrSend{Provider: "gomail/smtp", Err: ctx.Err()}
	case <-time.After(wait):
		return Receipt{}, ErrSend{Provider: "gomail/smtp", Err: context.DeadlineExceeded}
	}
}

func (s *SMTPMailer) timeout() time.Duration {
	if s.cfg.SMTPTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.cfg.SMTPTimeoutSeconds) * time.Second
}

// LogMailer records messages in the log instead of sending them.
type LogMailer struct {
	from   string
	logger *slog.Logger
}

func NewLogMailer(from string, logger *slog.Logger) *LogMailer {
	return &LogMailer{from: from, logger: logger}
}

func (l *LogMailer) Send(_ context.Context, m Message) (Receipt, error) {
	_, receipt, err := buildMessage(l.from, m)
	if err != nil {
		return Receipt{}, err
	}
	l.logger.Info("email not sent, no SMTP host configured",
		slog.String("message_id", receipt.MessageID),
		slog.String("from", l.from),
		slog.Any("to", receipt.Recipients),
		slog.String("subject", m.Subject),
		slog.String("preview", preview(m.TextBody, 100)),
	)
	return receipt, nil
}

func buildMessage(from string, m Message) (*gomail.Message, Receipt, error) {
	from = strings.TrimSpace(from)
	if from == "" {
		return nil, Receipt{}, ErrInvalidMessage{Reason: "from is required"}
	}

	to := cleanAddrs(m.To)
	if len(to) == 0 {
		return nil, Receipt{}, ErrInvalidMessage{Reason: "at least one recipient is required"}
	}

	subj := strings.TrimSpace(m.Subject)
	if subj == "" {
		return nil, Receipt{}, ErrInvalidMessage{Reason: "subject is required"}
	}

	messageID := uuid.NewString()
	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subj)
	msg.SetHeader("Message-ID", fmt.Sprintf("<%s@%s>", messageID, domainOf(from)))

	hasText := strings.TrimSpace(m.TextBody) != ""
	hasHTML := strings.TrimSpace(m.HTMLBody) != ""
	switch {
	case hasText && hasHTML:
		msg.SetBody("text/plain", m.TextBody)
		msg.AddAlternative("text/html", m.HTMLBody)
	case hasHTML:
		msg.SetBody("text/html", m.HTMLBody)
	case hasText:
		msg.SetBody("text/plain", m.TextBody)
	default:
		return nil, Receipt{}, ErrInvalidMessage{Reason: "either TextBody or HTMLBody is required"}
	}

	return msg, Receipt{MessageID: messageID, Recipients: to, SentAt: time.Now()}, nil
}

func cleanAddrs(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

func domainOf(addr string) string {
	if i := strings.LastIndex(addr, "@"); i >= 0 && i < len(addr)-1 {
		return strings.Trim(addr[i+1:], "> ")
	}
	return "localhost"
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
