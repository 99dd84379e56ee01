package booking

import (
	"strings"

	"github.com/homeservices/site/internal/models"
)

const messageHeader = "*New Home Service Request*"

// FormatMessage renders the draft as the chat message sent to the business.
// The scheduled time is embedded exactly as the form produced it.
func FormatMessage(d models.BookingDraft) string {
	instructions := d.Instructions
	if instructions == "" {
		instructions = models.InstructionsPlaceholder
	}

	lines := []string{
		messageHeader,
		"*Name:* " + d.Name,
		"*Phone:* " + d.Phone,
		"*Service:* " + string(d.ServiceType),
		"*Address:* " + d.Address,
		"*Date & Time:* " + d.ScheduledAt,
		"*Instructions:* " + instructions,
	}

	return strings.Join(lines, "\n")
}
