package booking

import (
	"github.com/homeservices/site/internal/models"
)

// UpdateField writes one field of the draft. Editing the scheduled time
// clears an error recorded against it; no other state is touched.
func UpdateField(s *models.ViewState, field, value string) error {
	d := &s.Draft

	switch field {
	case models.FieldName:
		d.Name = value
	case models.FieldPhone:
		d.Phone = value
	case models.FieldServiceType:
		if !models.IsValidServiceType(value) {
			return ErrUnknownService
		}
		d.ServiceType = models.ServiceType(value)
	case models.FieldAddress:
		d.Address = value
	case models.FieldScheduledAt:
		d.ScheduledAt = value
		if _, ok := s.Errors[models.FieldScheduledAt]; ok {
			delete(s.Errors, models.FieldScheduledAt)
		}
	case models.FieldInstructions:
		d.Instructions = value
	default:
		return ErrUnknownField
	}

	return nil
}

// ToggleMenu flips the mobile navigation menu
func ToggleMenu(s *models.ViewState) {
	s.MenuOpen = !s.MenuOpen
}

// SetActiveSection records the section currently in view.
// Choosing a section from the mobile menu also closes it.
func SetActiveSection(s *models.ViewState, section models.Section) error {
	for _, known := range models.Sections {
		if known == section {
			s.ActiveSection = section
			s.MenuOpen = false
			return nil
		}
	}
	return ErrUnknownSection
}
