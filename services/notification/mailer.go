package notification

import (
	"fmt"
	"net/smtp"

	"fitbook/config"
)

// Mailer sends one plain-text email. Kept minimal so tests can swap in a
// recorder.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer delivers through the deployment's SMTP relay.
type SMTPMailer struct {
	Host string
	Port string
	From string
}

func NewSMTPMailer() *SMTPMailer {
	return &SMTPMailer{
		Host: config.AppConfig.SMTPHost,
		Port: config.AppConfig.SMTPPort,
		From: config.AppConfig.SMTPFrom,
	}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := []byte("From: " + m.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/plain; charset=\"UTF-8\"\r\n" +
		"\r\n" + body + "\r\n")

	addr := m.Host + ":" + m.Port
	if err := smtp.SendMail(addr, nil, m.From, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
