package notification

import (
	"net/smtp"
	"time"
)

// SetSendMail replaces the SMTP transport.
func (n *SMTPNotifier) SetSendMail(f func(addr string, a smtp.Auth, from string, to []string, msg []byte) error) {
	n.sendMail = f
}

// SetClock fixes the Date header.
func (n *SMTPNotifier) SetClock(now func() time.Time) {
	n.now = now
}
