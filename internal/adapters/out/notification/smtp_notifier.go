package notification

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net"
	"net/smtp"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"storefront/internal/core/ports"

	"go.uber.org/zap"
)

var (
	_ ports.Notifier = (*SMTPNotifier)(nil)
	_ ports.Notifier = (*LogNotifier)(nil)
)

// SMTPConfig describes the outgoing mail server.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// sendMailFunc matches smtp.SendMail.
type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPNotifier sends multipart text/HTML mail. Failures are logged and reported as false.
type SMTPNotifier struct {
	cfg      SMTPConfig
	sendMail sendMailFunc
	now      func() time.Time
	logger   *zap.Logger
}

// NewSMTPNotifier creates a notifier for cfg.
func NewSMTPNotifier(cfg SMTPConfig, logger *zap.Logger) *SMTPNotifier {
	return &SMTPNotifier{
		cfg:      cfg,
		sendMail: smtp.SendMail,
		now:      time.Now,
		logger:   logger.With(zap.String("component", "smtp_notifier")),
	}
}

// Send delivers msg. It returns false without sending when ctx is already done.
func (n *SMTPNotifier) Send(ctx context.Context, msg ports.Message) bool {
	log := n.logger.With(zap.Strings("to", msg.To), zap.String("subject", msg.Subject))

	if len(msg.To) == 0 {
		log.Warn("message has no recipients")
		return false
	}
	if err := ctx.Err(); err != nil {
		log.Warn("message not sent", zap.Error(err))
		return false
	}

	body, err := n.compose(msg)
	if err != nil {
		log.Error("failed to compose message", zap.Error(err))
		return false
	}

	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	}

	addr := net.JoinHostPort(n.cfg.Host, strconv.Itoa(n.cfg.Port))
	if err = n.sendMail(addr, auth, n.cfg.From, msg.To, body); err != nil {
		log.Error("failed to send message", zap.Error(err))
		return false
	}

	log.Debug("message sent")
	return true
}

func (n *SMTPNotifier) compose(msg ports.Message) ([]byte, error) {
	var body bytes.Buffer
	parts := multipart.NewWriter(&body)

	for _, part := range []struct {
		contentType string
		content     string
	}{
		{"text/plain; charset=utf-8", msg.Text},
		{"text/html; charset=utf-8", msg.HTML},
	} {
		if part.content == "" {
			continue
		}
		w, err := parts.CreatePart(textproto.MIMEHeader{"Content-Type": {part.contentType}})
		if err != nil {
			return nil, err
		}
		if _, err = w.Write([]byte(part.content)); err != nil {
			return nil, err
		}
	}
	if err := parts.Close(); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	fmt.Fprintf(&out, "From: %s\r\n", n.cfg.From)
	fmt.Fprintf(&out, "To: %s\r\n", strings.Join(msg.To, ", "))
	fmt.Fprintf(&out, "Subject: %s\r\n", msg.Subject)
	fmt.Fprintf(&out, "Date: %s\r\n", n.now().UTC().Format(time.RFC1123Z))
	out.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&out, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", parts.Boundary())
	out.Write(body.Bytes())

	return out.Bytes(), nil
}

// LogNotifier writes messages to the log instead of sending them. Used when no SMTP
// host is configured.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With(zap.String("component", "log_notifier"))}
}

func (n *LogNotifier) Send(_ context.Context, msg ports.Message) bool {
	n.logger.Info("notification",
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("text", msg.Text),
	)
	return true
}
