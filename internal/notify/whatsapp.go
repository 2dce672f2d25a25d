// Package notify builds the outbound messaging side-channel used after a
// successful public registration. The core only reports the deep link; the
// frontend is the one that opens it. Nothing here is awaited or retried.
package notify

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/academia-crecer/academia-api/internal/catalog"
	"github.com/academia-crecer/academia-api/internal/models"
)

// Notifier produces the prefilled deep link reported alongside a registration.
type Notifier interface {
	RegistrationLink(student models.Student, schedule catalog.ClassSchedule) string
}

// WhatsAppNotifier builds wa.me deep links towards the academy's fixed
// contact number.
type WhatsAppNotifier struct {
	number string
	logger zerolog.Logger
}

// NewWhatsAppNotifier constructs a notifier for the given phone number.
func NewWhatsAppNotifier(number string, logger zerolog.Logger) *WhatsAppNotifier {
	return &WhatsAppNotifier{
		number: sanitizeNumber(number),
		logger: logger.With().Str("component", "whatsapp_notifier").Logger(),
	}
}

// RegistrationLink returns the prefilled message link for a fresh registration.
func (n *WhatsAppNotifier) RegistrationLink(student models.Student, schedule catalog.ClassSchedule) string {
	if n.number == "" {
		return ""
	}

	message := fmt.Sprintf(
		"Hola! Acabo de inscribir a %s en %s (%s). Código de alumno: %s. Abono inicial: %d, saldo pendiente: %d.",
		student.FullName(),
		schedule.Category,
		schedule.TimeRange,
		student.Code,
		student.AmountPaid,
		student.Balance,
	)

	link := fmt.Sprintf("https://wa.me/%s?text=%s", n.number, url.QueryEscape(message))

	n.logger.Info().Str("student_code", student.Code).Msg("registration notification link issued")

	return link
}

func sanitizeNumber(number string) string {
	var digits strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	return digits.String()
}
