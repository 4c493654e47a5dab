// Package mail sends transactional email over SMTP with STARTTLS.
package mail

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"

	"github.com/neocodenexus/vendorx-backend/pkg/config"
	"github.com/neocodenexus/vendorx-backend/pkg/logger"
)

// Message is a single outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
	HTML    bool
}

// Sender abstracts email delivery so services can run against a stub in tests.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

var errSMTPHostRequired = errors.New("smtp host is required")

// SMTPSender delivers mail through a configured SMTP relay.
type SMTPSender struct {
	cfg    config.SMTPConfig
	logger *logger.Logger
}

// NewSMTPSender validates the relay configuration and returns a sender.
func NewSMTPSender(cfg config.SMTPConfig, logg *logger.Logger) (*SMTPSender, error) {
	if strings.TrimSpace(cfg.Host) == "" {
		return nil, errSMTPHostRequired
	}
	if strings.TrimSpace(cfg.From) == "" {
		return nil, errors.New("smtp from address is required")
	}
	return &SMTPSender{cfg: cfg, logger: logg}, nil
}

// Send delivers a single message. The connection is upgraded with STARTTLS
// before authentication when the server offers it.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if strings.TrimSpace(msg.To) == "" {
		return errors.New("recipient is required")
	}

	addr := net.JoinHostPort(s.cfg.Host, fmt.Sprint(s.cfg.Port))

	if s.logger != nil {
		s.logger.Info(ctx, fmt.Sprintf("sending email to %s", msg.To))
	}

	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("dialing smtp relay: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: s.cfg.Host}); err != nil {
			return fmt.Errorf("starting tls: %w", err)
		}
	}

	if s.cfg.Username != "" {
		auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := client.Mail(s.cfg.From); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(msg.To); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := writer.Write(buildPayload(s.cfg.From, msg)); err != nil {
		writer.Close()
		return fmt.Errorf("writing message: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("closing message: %w", err)
	}

	return client.Quit()
}

func buildPayload(from string, msg Message) []byte {
	contentType := "text/plain; charset=UTF-8"
	if msg.HTML {
		contentType = "text/html; charset=UTF-8"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: %s\r\n", contentType)
	b.WriteString("\r\n")
	b.WriteString(msg.Body)
	b.WriteString("\r\n")
	return []byte(b.String())
}
