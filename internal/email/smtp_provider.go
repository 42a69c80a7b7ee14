package email

import (
	"fmt"

	"eventomir_backend/internal/config"

	gomail "gopkg.in/gomail.v2"
)

// SMTPProvider delivers email over SMTP via gomail.
type SMTPProvider struct {
	dialer    *gomail.Dialer
	fromEmail string
	fromName  string
	baseURL   string
}

// NewSMTPProvider builds a provider from the application config.
func NewSMTPProvider(cfg *config.Config) (*SMTPProvider, error) {
	if cfg.Email.SMTPHost == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if cfg.Email.SMTPPort <= 0 || cfg.Email.SMTPPort > 65535 {
		return nil, fmt.Errorf("invalid SMTP port: %d", cfg.Email.SMTPPort)
	}

	dialer := gomail.NewDialer(cfg.Email.SMTPHost, cfg.Email.SMTPPort, cfg.Email.SMTPUsername, cfg.Email.SMTPPassword)

	return &SMTPProvider{
		dialer:    dialer,
		fromEmail: cfg.Email.FromEmail,
		fromName:  cfg.Email.FromName,
		baseURL:   cfg.Email.BaseURL,
	}, nil
}

// Send delivers a single message.
func (p *SMTPProvider) Send(email *Email) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.fromEmail, p.fromName)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)

	if email.HTML {
		m.SetBody("text/html", email.Body)
	} else {
		m.SetBody("text/plain", email.Body)
	}

	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendVerification sends the account verification message.
func (p *SMTPProvider) SendVerification(to string, token string) error {
	link := fmt.Sprintf("%s/api/v1/auth/verify?token=%s", p.baseURL, token)
	return p.Send(&Email{
		To:      []string{to},
		Subject: "Confirm your Eventomir account",
		Body:    fmt.Sprintf("Welcome to Eventomir!\n\nPlease confirm your email address:\n%s\n", link),
	})
}

// Close is a no-op: gomail dials per message.
func (p *SMTPProvider) Close() error {
	return nil
}
