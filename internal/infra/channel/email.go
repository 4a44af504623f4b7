package channel

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"sitehub/internal/domain/notification"
	"sitehub/internal/pkg/clock"
	"sitehub/internal/pkg/config"
	"sitehub/internal/pkg/errs"

	"github.com/google/uuid"
)

// SendMailFunc matches smtp.SendMail.
type SendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type EmailSender struct {
	cfg      config.SMTPConfig
	auth     smtp.Auth
	sendMail SendMailFunc
	clock    clock.Clock
}

func NewEmailSender(cfg config.SMTPConfig, clk clock.Clock) *EmailSender {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &EmailSender{cfg: cfg, auth: auth, sendMail: smtp.SendMail, clock: clk}
}

// WithSendMail swaps the transport, for tests.
func (s *EmailSender) WithSendMail(fn SendMailFunc) *EmailSender {
	s.sendMail = fn
	return s
}

// Send delivers one message per attempt and returns its Message-ID.
func (s *EmailSender) Send(ctx context.Context, n *notification.Notification, ch notification.ChannelDescriptor) (string, error) {
	messageID := fmt.Sprintf("<%s@%s>", uuid.NewString(), s.cfg.Host)
	body := s.compose(n, ch.Address, messageID)

	// net/smtp has no context support; the buffered channel lets it finish after we give up.
	done := make(chan error, 1)
	go func() {
		done <- s.sendMail(s.cfg.Addr(), s.auth, s.cfg.From, []string{ch.Address}, body)
	}()

	select {
	case <-ctx.Done():
		return "", errs.Wrap(ctx.Err(), "smtp send")
	case err := <-done:
		if err != nil {
			return "", errs.Wrap(err, "smtp send")
		}
		return messageID, nil
	}
}

func (s *EmailSender) compose(n *notification.Notification, to, messageID string) []byte {
	var b strings.Builder
	header := func(k, v string) { b.WriteString(k + ": " + v + "\r\n") }
	header("From", s.cfg.From)
	header("To", to)
	header("Subject", subjectPrefix(n.Priority)+sanitizeHeader(n.Title))
	header("Date", s.clock.Now().Format(time.RFC1123Z))
	header("Message-ID", messageID)
	header("MIME-Version", "1.0")
	header("Content-Type", "text/plain; charset=UTF-8")
	b.WriteString("\r\n")
	b.WriteString(n.Message)
	if n.ActionURL != "" {
		b.WriteString("\r\n\r\n" + n.ActionURL)
	}
	b.WriteString("\r\n")
	return []byte(b.String())
}

func subjectPrefix(p notification.Priority) string {
	switch p {
	case notification.PriorityUrgent:
		return "[URGENT] "
	case notification.PriorityHigh:
		return "[High] "
	default:
		return ""
	}
}

// sanitizeHeader stops a title from injecting extra headers.
func sanitizeHeader(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
