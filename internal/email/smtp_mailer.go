package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

// SMTPMailer delivers mail over SMTP with gomail, rendering bodies from the
// built-in templates.
type SMTPMailer struct {
	config   SMTPConfig
	dialer   *gomail.Dialer
	renderer *Renderer
}

func NewSMTPMailer(config SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		config:   config,
		dialer:   gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
		renderer: NewRenderer(),
	}
}

func (m *SMTPMailer) SendWelcome(to, name string) error {
	return m.send(to, "Welcome to the Natours family!", "welcome", TemplateData{
		"Name": name,
	})
}

func (m *SMTPMailer) SendPasswordReset(to, name, resetURL string) error {
	subject := fmt.Sprintf("Your password reset token (valid for %d minutes)", resetValidMinutes)
	return m.send(to, subject, "password_reset", TemplateData{
		"Name":         name,
		"ResetURL":     resetURL,
		"ValidMinutes": resetValidMinutes,
	})
}

func (m *SMTPMailer) send(to, subject, templateName string, data TemplateData) error {
	body, err := m.renderer.Render(templateName, data)
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.config.FromEmail, m.config.FromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("email: send %q to %s: %w", templateName, to, err)
	}
	return nil
}
