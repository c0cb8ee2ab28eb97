package publish

import (
	"errors"
	"testing"

	"github.com/princessupload/audience-newsletter/internal/common"
)

func TestNewSenderValidation(t *testing.T) {
	tests := []struct {
		name   string
		config SMTPConfig
	}{
		{name: "empty config", config: SMTPConfig{}},
		{name: "missing credentials", config: SMTPConfig{Host: "smtp.gmail.com"}},
		{
			name:   "missing password",
			config: SMTPConfig{Host: "smtp.gmail.com", Username: "letters@example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSender(tt.config)
			if !errors.Is(err, common.ErrMissingConfig) {
				t.Errorf("NewSender() error = %v, want ErrMissingConfig", err)
			}
		})
	}
}

func TestNewSenderDefaultsFromAddress(t *testing.T) {
	sender, err := NewSender(SMTPConfig{
		Host:     "smtp.gmail.com",
		Username: "letters@example.com",
		Password: "app-password",
	})
	if err != nil {
		t.Fatalf("NewSender() error = %v", err)
	}
	if sender.from != "letters@example.com" {
		t.Errorf("from = %q, want the username", sender.from)
	}
}

func TestSenderBuild(t *testing.T) {
	sender, err := NewSender(SMTPConfig{
		Host:     "smtp.gmail.com",
		Username: "letters@example.com",
		Password: "app-password",
		FromName: "Princess Upload",
	})
	if err != nil {
		t.Fatalf("NewSender() error = %v", err)
	}

	if _, err := sender.build(Message{Subject: "hi", HTML: "<p>hi</p>"}); err == nil {
		t.Error("build() accepted a message without recipients")
	}

	m, err := sender.build(Message{
		To:      []string{"a@example.com", "b@example.com"},
		Subject: "Lottery Newsletter",
		HTML:    "<p>picks</p>",
		Headers: map[string]string{"List-Unsubscribe-Post": "List-Unsubscribe=One-Click"},
	})
	if err != nil {
		t.Fatalf("build() error = %v", err)
	}

	recipients, err := m.GetRecipients()
	if err != nil {
		t.Fatalf("GetRecipients() error = %v", err)
	}
	if len(recipients) != 2 {
		t.Errorf("got %d recipients, want 2", len(recipients))
	}
}
