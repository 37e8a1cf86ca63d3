// Package mailer sends plain-text email over SMTP.
package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/wneessen/go-mail"

	"cookbook/internal/config"
)

var ErrRecipientRequired = errors.New("recipient is required")

// Message is a plain-text email.
type Message struct {
	From    string
	To      []string
	Subject string
	Text    string
}

// sender delivers built messages; *mail.Client satisfies it.
type sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// Mailer builds messages and hands them to an SMTP client.
type Mailer struct {
	from   string
	client sender
}

// New creates a Mailer authenticating with SMTP PLAIN over STARTTLS.
func New(cfg config.SMTPConfig) (*Mailer, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
	}
	if cfg.User != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.User),
			mail.WithPassword(cfg.Password),
		)
	}
	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}
	from := cfg.From
	if from == "" {
		from = cfg.User
	}
	return &Mailer{from: from, client: client}, nil
}

// Build converts m into a mail.Msg, filling From with the configured sender.
func (s *Mailer) Build(m Message) (*mail.Msg, error) {
	if len(m.To) == 0 {
		return nil, ErrRecipientRequired
	}
	from := m.From
	if from == "" {
		from = s.from
	}
	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("from address: %w", err)
	}
	if err := msg.To(m.To...); err != nil {
		return nil, fmt.Errorf("to address: %w", err)
	}
	msg.Subject(m.Subject)
	msg.SetBodyString(mail.TypeTextPlain, m.Text)
	return msg, nil
}

// Send builds and delivers m.
func (s *Mailer) Send(ctx context.Context, m Message) error {
	msg, err := s.Build(m)
	if err != nil {
		return err
	}
	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
