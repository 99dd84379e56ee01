package views

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html" //nolint:revive,staticcheck

	"github.com/homeservices/site/internal/models"
)

// marqueeItems are repeated so the banner scrolls without a gap
var marqueeItems = []string{
	string(models.ServiceHouseCleaning),
	string(models.ServiceHomeRearrangement),
	string(models.ServiceACCleaning),
	string(models.ServiceShiftingServices),
	"Verified Staff",
	"Instant Booking",
}

func hero() g.Node {
	return Header(
		Class("hero"),
		H1(
			Class("hero-title"),
			g.Text("Home"), Br(),
			g.Text("Services"), Br(),
			Span(Class("outline"), g.Text("Redefined")),
		),
		Div(
			Class("hero-lede"),
			P(g.Text("Professional cleaning, maintenance, and shifting. We bring order to chaos with speed and precision.")),
			A(
				Class("cta"),
				Href("#"+string(models.SectionBooking)),
				g.Attr("data-section", string(models.SectionBooking)),
				g.Text("Book Appointment →"),
			),
		),
	)
}

func marquee() g.Node {
	items := append(append([]string{}, marqueeItems...), marqueeItems...)

	return Div(
		Class("marquee"),
		g.Attr("aria-hidden", "true"),
		Div(
			Class("marquee-track"),
			g.Map(items, func(item string) g.Node {
				return Span(Class("marquee-item"), g.Text(item+" •"))
			}),
		),
	)
}

var serviceBlurbs = map[models.ServiceType]string{
	models.ServiceHouseCleaning:     "Deep cleaning for every room, kitchens and bathrooms included.",
	models.ServiceHomeRearrangement: "Furniture moved, spaces reorganized, clutter sorted.",
	models.ServiceACCleaning:        "Filter, coil and drain servicing for split and window units.",
	models.ServiceShiftingServices:  "Packing, loading and moving to your new home.",
}

func servicesSection() g.Node {
	return Section(
		ID(string(models.SectionServices)),
		Class("services"),
		H2(g.Text("Services")),
		Div(
			Class("service-grid"),
			g.Map(models.ServiceTypes, func(s models.ServiceType) g.Node {
				return Div(
					Class("service-card"),
					H3(g.Text(string(s))),
					P(g.Text(serviceBlurbs[s])),
				)
			}),
		),
	)
}

func processSection() g.Node {
	steps := []string{
		"Fill in the booking form with your address and a time that suits you.",
		"Your request opens in WhatsApp, ready to send.",
		"We confirm the slot and our verified staff arrive on time.",
	}

	return Section(
		ID(string(models.SectionProcess)),
		Class("process"),
		H2(g.Text("How it works")),
		Ol(
			g.Map(steps, func(step string) g.Node {
				return Li(g.Text(step))
			}),
		),
	)
}
