// Package mail provides outbound email delivery for the todo-app backend.
//
// The only consumer is the forgot-password flow, which sends a single
// password-reset link per request. Delivery is synchronous: the caller
// waits for the SMTP exchange and surfaces a failure to the client.
package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/murvyn/todo-app/internal/config"
	"github.com/murvyn/todo-app/internal/logger"
)

// Mailer is the abstract mail-sending capability consumed by the service
// layer. Implementations must be safe for concurrent use.
type Mailer interface {
	// Send delivers a single HTML email to the given recipient.
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// smtpMailer delivers mail over SMTP with PLAIN authentication. STARTTLS is
// negotiated automatically when the server advertises it (port 587
// submission endpoints do).
type smtpMailer struct {
	host     string
	port     int
	username string
	password string
	from     string

	logger *logger.Logger
}

// NewSMTPMailer constructs a [Mailer] from the mail configuration.
//
// The returned mailer holds no connection; each Send dials the SMTP server,
// authenticates, delivers, and disconnects.
func NewSMTPMailer(cfg config.Mail, logger *logger.Logger) Mailer {
	logger.Debug().Str("host", cfg.Host).Int("port", cfg.Port).Msg("creating smtp mailer")
	return &smtpMailer{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
		logger:   logger,
	}
}

// Send delivers one HTML message. The SMTP dialogue itself cannot be
// cancelled mid-flight by the standard library, so ctx is honoured at the
// boundary: an already-cancelled context aborts before dialing.
func (m *smtpMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	log := logger.FromContext(ctx)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("mail send aborted: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	msg := buildMessage(m.from, to, subject, htmlBody)

	if err := smtp.SendMail(addr, auth, m.from, []string{to}, msg); err != nil {
		log.Err(err).Str("func", "*smtpMailer.Send").Str("to", to).Msg("error sending mail")
		return fmt.Errorf("error sending mail: %w", err)
	}

	log.Debug().Str("to", to).Str("subject", subject).Msg("mail sent")
	return nil
}

// buildMessage assembles an RFC 5322 message with an HTML body.
func buildMessage(from, to, subject, htmlBody string) []byte {
	builder := new(strings.Builder)

	fmt.Fprintf(builder, "From: %s\r\n", from)
	fmt.Fprintf(builder, "To: %s\r\n", to)
	fmt.Fprintf(builder, "Subject: %s\r\n", subject)
	builder.WriteString("MIME-Version: 1.0\r\n")
	builder.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	builder.WriteString("\r\n")
	builder.WriteString(htmlBody)
	builder.WriteString("\r\n")

	return []byte(builder.String())
}
