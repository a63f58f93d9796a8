package mailer

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"mangoadmi/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessage_Validation(t *testing.T) {
	cases := []struct {
		name   string
		from   string
		msg    Message
		reason string
	}{
		{"no sender", "", Message{To: []string{"a@b.com"}, Subject: "s", TextBody: "t"}, "from is required"},
		{"no recipient", "noreply@x.in", Message{To: []string{" "}, Subject: "s", TextBody: "t"}, "at least one recipient is required"},
		{"no subject", "noreply@x.in", Message{To: []string{"a@b.com"}, TextBody: "t"}, "subject is required"},
		{"no body", "noreply@x.in", Message{To: []string{"a@b.com"}, Subject: "s"}, "either TextBody or HTMLBody is required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := buildMessage(tc.from, tc.msg)
			var invalid ErrInvalidMessage
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tc.reason, invalid.Reason)
		})
	}
}

func TestBuildMessage_Headers(t *testing.T) {
	msg, receipt, err := buildMessage("noreply@mangoadmi.in", Message{
		To:       []string{" client@example.com ", ""},
		Subject:  "Hello",
		TextBody: "text",
		HTMLBody: "<p>html</p>",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"client@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Hello"}, msg.GetHeader("Subject"))
	assert.Equal(t, []string{"<" + receipt.MessageID + "@mangoadmi.in>"}, msg.GetHeader("Message-ID"))
	assert.Equal(t, []string{"client@example.com"}, receipt.Recipients)
	assert.WithinDuration(t, time.Now(), receipt.SentAt, time.Second)
}

func TestLogMailer_Send(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	m := New(config.MailConfig{FromAddress: "noreply@mangoadmi.in"}, logger)

	_, isLog := m.(*LogMailer)
	require.True(t, isLog)

	receipt, err := m.Send(context.Background(), Message{
		To:       []string{"client@example.com"},
		Subject:  "We Received Your Message",
		TextBody: "Thanks",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, receipt.MessageID)
	assert.Contains(t, buf.String(), "We Received Your Message")
}

func TestNew_SMTPWhenHostConfigured(t *testing.T) {
	m := New(config.MailConfig{SMTPHost: "smtp.example.com", FromAddress: "noreply@x.in"}, slog.Default())
	_, isSMTP := m.(*SMTPMailer)
	assert.True(t, isSMTP)
}

func TestSMTPMailer_InvalidMessageFailsBeforeDial(t *testing.T) {
	m := NewSMTPMailer(config.MailConfig{SMTPHost: "127.0.0.1", SMTPPort: 1, FromAddress: "noreply@x.in"})
	_, err := m.Send(context.Background(), Message{To: []string{"a@b.com"}})
	var invalid ErrInvalidMessage
	assert.ErrorAs(t, err, &invalid)
}

func TestSMTPMailer_UnreachableHost(t *testing.T) {
	m := NewSMTPMailer(config.MailConfig{SMTPHost: "127.0.0.1", SMTPPort: 1, FromAddress: "noreply@x.in", SMTPTimeoutSeconds: 2})
	_, err := m.Send(context.Background(), Message{To: []string{"a@b.com"}, Subject: "s", TextBody: "t"})
	var sendErr ErrSend
	require.ErrorAs(t, err, &sendErr)
	assert.Equal(t, "gomail/smtp", sendErr.Provider)
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "short", preview("short", 10))
	assert.Equal(t, "abc...", preview("abcdef", 3))
}
