package email

import "tourbook/internal/logger"

// LogMailer stands in for SMTP in development: it logs what would have been
// sent instead of delivering anything.
type LogMailer struct{}

func NewLogMailer() *LogMailer { return &LogMailer{} }

func (m *LogMailer) SendWelcome(to, name string) error {
	logger.Info("email suppressed",
		"template", "welcome",
		"to", to,
		"name", name,
	)
	return nil
}

func (m *LogMailer) SendPasswordReset(to, name, resetURL string) error {
	logger.Info("email suppressed",
		"template", "password_reset",
		"to", to,
		"reset_url", resetURL,
	)
	return nil
}
