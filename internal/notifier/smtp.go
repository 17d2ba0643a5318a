package notifier

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// SMTPNotifier sends plain-text email via an SMTP relay.
type SMTPNotifier struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
	Logger   zerolog.Logger

	// sendMail is swappable for tests; defaults to smtp.SendMail.
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPNotifier creates a notifier. Username may be empty for relays that
// accept unauthenticated mail.
func NewSMTPNotifier(host string, port int, username, password, from, to string, log zerolog.Logger) *SMTPNotifier {
	return &SMTPNotifier{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		From:     from,
		To:       to,
		Logger:   log,
		sendMail: smtp.SendMail,
	}
}

// Send sends a single message to the configured recipient.
func (n *SMTPNotifier) Send(subject, body string) error {
	addr := fmt.Sprintf("%s:%d", n.Host, n.Port)

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s\r\n", n.From))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", n.To))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	var auth smtp.Auth
	if n.Username != "" {
		auth = smtp.PlainAuth("", n.Username, n.Password, n.Host)
	}

	if err := n.sendMail(addr, auth, n.From, []string{n.To}, []byte(msg.String())); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// SendWithRetry sends a message with exponential backoff retry.
func (n *SMTPNotifier) SendWithRetry(ctx context.Context, subject, body string, maxRetries int) error {
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		if err := n.Send(subject, body); err != nil {
			lastErr = err
			backoff := time.Duration(1<<uint(i)) * time.Second
			n.Logger.Warn().Err(err).
				Int("attempt", i+1).
				Int("max_attempts", maxRetries+1).
				Dur("backoff", backoff).
				Msg("mail send failed, retrying")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				continue
			}
		}
		return nil
	}
	return fmt.Errorf("all %d retries exhausted: %w", maxRetries+1, lastErr)
}
