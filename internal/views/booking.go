package views

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html" //nolint:revive,staticcheck

	"github.com/homeservices/site/internal/models"
)

func bookingSection(view *models.PageView) g.Node {
	st := view.State
	d := st.Draft
	scheduledErr, hasScheduledErr := st.Errors[models.FieldScheduledAt]

	return Section(
		ID(string(models.SectionBooking)),
		Class("booking"),
		H2(g.Text("Book an Appointment")),
		P(g.Text("Tell us what you need. Your request is sent to us on WhatsApp.")),
		g.El("form",
			ID("booking-form"),
			g.Attr("method", "post"),
			g.Attr("action", "/booking"),
			g.Attr("autocomplete", "on"),

			textField(models.FieldName, "Full Name", "text", d.Name, "Your name"),
			textField(models.FieldPhone, "Phone Number", "tel", d.Phone, "03XX-XXXXXXX"),

			Div(
				Class("field"),
				g.El("label", g.Attr("for", models.FieldServiceType), g.Text("Service")),
				Select(
					ID(models.FieldServiceType),
					Name(models.FieldServiceType),
					Required(),
					g.Map(view.ServiceTypes, func(s models.ServiceType) g.Node {
						return Option(
							Value(string(s)),
							g.If(s == d.ServiceType, Selected()),
							g.Text(string(s)),
						)
					}),
				),
			),

			textField(models.FieldAddress, "Address", "text", d.Address, "House, street, area"),

			Div(
				Class("field"),
				g.El("label", g.Attr("for", models.FieldScheduledAt), g.Text("Date & Time")),
				Input(
					ID(models.FieldScheduledAt),
					Name(models.FieldScheduledAt),
					Type("datetime-local"),
					Value(d.ScheduledAt),
					Required(),
					g.If(hasScheduledErr, g.Attr("aria-invalid", "true")),
					g.Attr("aria-describedby", models.FieldScheduledAt+"-error"),
				),
				P(
					ID(models.FieldScheduledAt+"-error"),
					Class("field-error"),
					g.Attr("role", "alert"),
					g.If(hasScheduledErr, g.Text(scheduledErr)),
				),
			),

			Div(
				Class("field"),
				g.El("label", g.Attr("for", models.FieldInstructions), g.Text("Special Instructions")),
				Textarea(
					ID(models.FieldInstructions),
					Name(models.FieldInstructions),
					g.Attr("rows", "4"),
					Placeholder("Gate code, parking, pets..."),
					g.Text(d.Instructions),
				),
			),

			Button(Type("submit"), Class("submit"), g.Text("Book via WhatsApp")),
		),
	)
}

func textField(name, label, inputType, value, placeholder string) g.Node {
	return Div(
		Class("field"),
		g.El("label", g.Attr("for", name), g.Text(label)),
		Input(
			ID(name),
			Name(name),
			Type(inputType),
			Value(value),
			Placeholder(placeholder),
			Required(),
		),
	)
}
