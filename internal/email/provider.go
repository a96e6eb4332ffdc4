package email

import (
	"time"

	"tourbook/internal/auth"
)

// Mailer sends the transactional mail the app produces. Delivery failures
// surface as errors so callers can roll back side effects (reset tokens).
type Mailer interface {
	SendWelcome(to, name string) error
	SendPasswordReset(to, name, resetURL string) error
}

// resetValidMinutes shown in the password-reset mail body.
var resetValidMinutes = int(auth.ResetTokenTTL / time.Minute)
