package views

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html" //nolint:revive,staticcheck // element helpers read best unqualified

	"github.com/homeservices/site/internal/models"
)

const siteName = "Home Services"

// Page renders the whole landing page for one visitor. nonce is the
// Content-Security-Policy nonce of the request.
func Page(view *models.PageView, nonce string) g.Node {
	st := view.State

	return Doctype(
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				Meta(Name("description"), Content("Professional cleaning, maintenance, and shifting. Book on WhatsApp in seconds.")),
				g.El("title", g.Text(siteName+" | Redefined")),
				g.El("style", g.Attr("nonce", nonce), g.Raw(stylesheet)),
			),
			Body(
				ID("top"),
				g.Attr("data-active-section", string(st.ActiveSection)),
				g.If(view.LaunchHandoff, g.Attr("data-launch-handoff", view.DeepLink)),

				navigation(st),
				g.If(st.FallbackVisible(), fallbackModal(view)),

				Main(
					hero(),
					marquee(),
					servicesSection(),
					processSection(),
					bookingSection(view),
				),

				contactFooter(view),

				g.El("noscript",
					g.If(view.LaunchHandoff,
						Div(Class("noscript-handoff"),
							P(g.Text("Your request is ready. Open WhatsApp to send it:")),
							A(Href(view.DeepLink), Target("_blank"), Rel("noopener noreferrer"), g.Text("Open WhatsApp")),
						),
					),
				),

				Script(g.Attr("nonce", nonce), g.Raw(clientScript)),
			),
		),
	)
}

type navLink struct {
	section models.Section
	label   string
}

func navigation(st *models.ViewState) g.Node {
	links := []navLink{
		{models.SectionServices, "Services"},
		{models.SectionProcess, "Process"},
		{models.SectionBooking, "Book Now"},
		{models.SectionContact, "Contact"},
	}

	menuClass := "nav-links"
	if st.MenuOpen {
		menuClass += " open"
	}

	return Nav(
		Class("site-nav"),
		A(Class("brand"), Href("#top"), g.Attr("data-section", string(models.SectionTop)), g.Text(siteName)),
		g.El("form",
			g.Attr("method", "post"),
			g.Attr("action", "/menu"),
			Class("menu-toggle-form"),
			Button(
				Type("submit"),
				Class("menu-toggle"),
				ID("menu-toggle"),
				g.Attr("aria-expanded", boolAttr(st.MenuOpen)),
				g.Attr("aria-controls", "nav-links"),
				g.If(st.MenuOpen, g.Text("Close")),
				g.If(!st.MenuOpen, g.Text("Menu")),
			),
		),
		Ul(
			ID("nav-links"),
			Class(menuClass),
			g.Map(links, func(l navLink) g.Node {
				cls := "nav-link"
				if st.ActiveSection == l.section {
					cls += " active"
				}
				return Li(A(
					Class(cls),
					Href("#"+string(l.section)),
					g.Attr("data-section", string(l.section)),
					g.Text(l.label),
				))
			}),
		),
	)
}

func contactFooter(view *models.PageView) g.Node {
	return Footer(
		ID(string(models.SectionContact)),
		Class("site-footer"),
		H2(g.Text("Contact")),
		P(g.Text("Questions before booking? Message us directly.")),
		A(
			Class("contact-link"),
			Href(view.ContactLink),
			Target("_blank"),
			Rel("noopener noreferrer"),
			g.Text("WhatsApp "+view.DisplayNumber),
		),
		P(Class("fine-print"), g.Textf("© %s. Verified staff, instant booking.", siteName)),
	)
}

func boolAttr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
