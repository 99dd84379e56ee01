package models

// ServiceType is one of the fixed services offered on the booking form
type ServiceType string

const (
	ServiceHouseCleaning     ServiceType = "House Cleaning"
	ServiceHomeRearrangement ServiceType = "Home Re-Arrangement"
	ServiceACCleaning        ServiceType = "AC Cleaning"
	ServiceShiftingServices  ServiceType = "Shifting Services"

	DefaultServiceType = ServiceHouseCleaning
)

const (
	// InstructionsPlaceholder stands in for empty instructions in the message
	InstructionsPlaceholder = "None"

	ScheduledAtInvalidMessage = "Please select a future date and time."
)

// IsValidServiceType reports whether s is one of the offered services
func IsValidServiceType(s string) bool {
	for _, t := range ServiceTypes {
		if string(t) == s {
			return true
		}
	}
	return false
}

// ServiceTypes lists the options in the order the form shows them
var ServiceTypes = []ServiceType{
	ServiceHouseCleaning,
	ServiceHomeRearrangement,
	ServiceACCleaning,
	ServiceShiftingServices,
}

// Draft field names, shared by the form, the JSON API and the error map.
const (
	FieldName         = "name"
	FieldPhone        = "phone"
	FieldServiceType  = "serviceType"
	FieldAddress      = "address"
	FieldScheduledAt  = "scheduledAt"
	FieldInstructions = "instructions"
)

// BookingDraft is the in-progress booking request held by one visitor.
// ScheduledAt keeps the raw value produced by the date-time control.
type BookingDraft struct {
	Name         string      `json:"name"`
	Phone        string      `json:"phone"`
	ServiceType  ServiceType `json:"serviceType"`
	Address      string      `json:"address"`
	ScheduledAt  string      `json:"scheduledAt"`
	Instructions string      `json:"instructions"`
}

// FieldErrors maps a draft field name to the message shown next to it
type FieldErrors map[string]string

// BookingForm is a full submission. The binding tags are the form constraints
// a browser enforces natively; requests that fail them never reach validation.
type BookingForm struct {
	Name         string `form:"name" json:"name" binding:"required,max=120"`
	Phone        string `form:"phone" json:"phone" binding:"required,max=40"`
	ServiceType  string `form:"serviceType" json:"serviceType" binding:"required,servicetype"`
	Address      string `form:"address" json:"address" binding:"required,max=500"`
	ScheduledAt  string `form:"scheduledAt" json:"scheduledAt" binding:"required,datetimelocal"`
	Instructions string `form:"instructions" json:"instructions" binding:"max=2000"`
}

// Fields returns the submission as ordered field/value pairs
func (f *BookingForm) Fields() [][2]string {
	return [][2]string{
		{FieldName, f.Name},
		{FieldPhone, f.Phone},
		{FieldServiceType, f.ServiceType},
		{FieldAddress, f.Address},
		{FieldScheduledAt, f.ScheduledAt},
		{FieldInstructions, f.Instructions},
	}
}

// FieldUpdateRequest carries a single edit of the draft
type FieldUpdateRequest struct {
	Field string `json:"field" binding:"required,oneof=name phone serviceType address scheduledAt instructions"`
	Value string `json:"value" binding:"max=2000"`
}

// SubmitBookingResponse is returned after a submission attempt
type SubmitBookingResponse struct {
	Success  bool        `json:"success"`
	Message  string      `json:"message,omitempty"`
	DeepLink string      `json:"deepLink,omitempty"`
	Errors   FieldErrors `json:"errors,omitempty"`
	State    *ViewState  `json:"state"`
}
