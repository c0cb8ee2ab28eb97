// Package publish delivers the rendered newsletter: direct SMTP email,
// the subscriber campaign, Substack import, Patreon posts, and SFTP
// upload to the website.
package publish

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/princessupload/audience-newsletter/internal/common"
)

// SMTPConfig holds the mail account the newsletter sends from.
type SMTPConfig struct {
	Host     string
	Username string
	Password string
	From     string
	FromName string
	Port     int
}

// DefaultSMTPConfig returns the Gmail submission settings the
// newsletter has always used. Credentials come from configuration.
func DefaultSMTPConfig() SMTPConfig {
	return SMTPConfig{
		Host:     "smtp.gmail.com",
		Port:     587,
		FromName: "Princess Upload",
	}
}

// Message is one outgoing HTML email.
type Message struct {
	Headers map[string]string
	Subject string
	HTML    string
	To      []string
}

// EmailSender delivers HTML email.
type EmailSender interface {
	Send(ctx context.Context, msg Message) error
}

// Sender delivers HTML email over SMTP with STARTTLS and login auth.
type Sender struct {
	client   *mail.Client
	from     string
	fromName string
}

// NewSender creates an SMTP sender. Host, username, and password are
// required; the from address defaults to the username.
func NewSender(config SMTPConfig) (*Sender, error) {
	if config.Host == "" {
		return nil, fmt.Errorf("%w: smtp host", common.ErrMissingConfig)
	}
	if config.Username == "" || config.Password == "" {
		return nil, fmt.Errorf("%w: smtp credentials", common.ErrMissingConfig)
	}
	if config.From == "" {
		config.From = config.Username
	}
	if config.Port == 0 {
		config.Port = DefaultSMTPConfig().Port
	}

	client, err := mail.NewClient(config.Host,
		mail.WithPort(config.Port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(config.Username),
		mail.WithPassword(config.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}

	return &Sender{
		client:   client,
		from:     config.From,
		fromName: config.FromName,
	}, nil
}

// Send delivers one message. Each send dials a fresh connection.
func (s *Sender) Send(ctx context.Context, msg Message) error {
	m, err := s.build(msg)
	if err != nil {
		return err
	}
	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("failed to send to %v: %w", msg.To, err)
	}
	return nil
}

func (s *Sender) build(msg Message) (*mail.Msg, error) {
	if len(msg.To) == 0 {
		return nil, fmt.Errorf("message has no recipients")
	}

	m := mail.NewMsg()
	if err := m.FromFormat(s.fromName, s.from); err != nil {
		return nil, fmt.Errorf("failed to set sender %s: %w", s.from, err)
	}
	if err := m.To(msg.To...); err != nil {
		return nil, fmt.Errorf("failed to set recipients: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextHTML, msg.HTML)
	for key, value := range msg.Headers {
		m.SetGenHeader(mail.Header(key), value)
	}
	return m, nil
}
