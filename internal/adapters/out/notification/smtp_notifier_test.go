package notification_test

import (
	"context"
	"errors"
	"net/smtp"
	"testing"
	"time"

	"storefront/internal/adapters/out/notification"
	"storefront/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type sentMail struct {
	addr string
	auth smtp.Auth
	from string
	to   []string
	body string
}

func newNotifier(cfg notification.SMTPConfig, sent *[]sentMail, failWith error) *notification.SMTPNotifier {
	n := notification.NewSMTPNotifier(cfg, zap.NewNop())
	n.SetClock(func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) })
	n.SetSendMail(func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		if failWith != nil {
			return failWith
		}
		*sent = append(*sent, sentMail{addr: addr, auth: a, from: from, to: to, body: string(msg)})
		return nil
	})
	return n
}

func TestSMTPNotifier_Send(t *testing.T) {
	cfg := notification.SMTPConfig{
		Host:     "smtp.example.com",
		Port:     587,
		Username: "mailer",
		Password: "secret",
		From:     "orders@storefront.example.com",
	}
	msg := ports.Message{
		To:      []string{"rahim@example.com"},
		Subject: "Order received",
		Text:    "plain body",
		HTML:    "<p>html body</p>",
	}

	t.Run("composes multipart mail", func(t *testing.T) {
		var sent []sentMail
		ok := newNotifier(cfg, &sent, nil).Send(context.Background(), msg)

		require.True(t, ok)
		require.Len(t, sent, 1)
		assert.Equal(t, "smtp.example.com:587", sent[0].addr)
		assert.NotNil(t, sent[0].auth)
		assert.Equal(t, "orders@storefront.example.com", sent[0].from)
		assert.Equal(t, []string{"rahim@example.com"}, sent[0].to)
		assert.Contains(t, sent[0].body, "Subject: Order received\r\n")
		assert.Contains(t, sent[0].body, "Content-Type: multipart/alternative")
		assert.Contains(t, sent[0].body, "plain body")
		assert.Contains(t, sent[0].body, "<p>html body</p>")
		assert.Contains(t, sent[0].body, "Date: Sun, 01 Mar 2026 10:00:00 +0000")
	})

	t.Run("no auth without username", func(t *testing.T) {
		var sent []sentMail
		anonymous := cfg
		anonymous.Username = ""
		require.True(t, newNotifier(anonymous, &sent, nil).Send(context.Background(), msg))
		assert.Nil(t, sent[0].auth)
	})

	t.Run("transport failure is reported, not raised", func(t *testing.T) {
		var sent []sentMail
		ok := newNotifier(cfg, &sent, errors.New("connection refused")).Send(context.Background(), msg)
		assert.False(t, ok)
	})

	t.Run("no recipients", func(t *testing.T) {
		var sent []sentMail
		ok := newNotifier(cfg, &sent, nil).Send(context.Background(), ports.Message{Subject: "x"})
		assert.False(t, ok)
		assert.Empty(t, sent)
	})

	t.Run("cancelled context", func(t *testing.T) {
		var sent []sentMail
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.False(t, newNotifier(cfg, &sent, nil).Send(ctx, msg))
		assert.Empty(t, sent)
	})
}

func TestLogNotifier_Send(t *testing.T) {
	assert.True(t, notification.NewLogNotifier(zap.NewNop()).Send(context.Background(), ports.Message{
		To: []string{"rahim@example.com"},
	}))
}
