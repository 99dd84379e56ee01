package views

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html" //nolint:revive,staticcheck

	"github.com/homeservices/site/internal/models"
)

// fallbackModal is shown when the chat app could not be opened automatically
func fallbackModal(view *models.PageView) g.Node {
	copyLabel, copyClass := "Copy", "copy"
	if view.Copied {
		copyLabel, copyClass = "Copied", "copy copied"
	}

	return Div(
		ID("fallback"),
		Class("fallback-backdrop"),
		g.Attr("role", "dialog"),
		g.Attr("aria-modal", "true"),
		g.Attr("aria-labelledby", "fallback-title"),
		Div(
			Class("fallback"),
			Div(
				Class("fallback-head"),
				H3(ID("fallback-title"), g.Text("Connection Issue")),
				g.El("form",
					g.Attr("method", "post"),
					g.Attr("action", "/booking/dismiss"),
					Button(Type("submit"), ID("fallback-close"), Class("close"), g.Attr("aria-label", "Close"), g.Text("×")),
				),
			),
			P(g.Text("We couldn't open WhatsApp automatically (browser popup blocked). Please send your request manually:")),
			Div(
				Class("fallback-destination"),
				Span(Class("caption"), g.Text("Send to")),
				P(Class("mono"), g.Text(view.DisplayNumber)),
			),
			Div(
				Class("fallback-message"),
				Span(Class("caption"), g.Text("Message")),
				Textarea(ID("fallback-text"), g.Attr("readonly"), g.Attr("rows", "7"), g.Text(view.State.GeneratedMessage)),
				Button(
					Type("button"),
					ID("fallback-copy"),
					Class(copyClass),
					g.Text(copyLabel),
				),
			),
			A(
				ID("fallback-retry"),
				Class("retry"),
				Href(view.DeepLink),
				Target("_blank"),
				Rel("noopener noreferrer"),
				g.Text("Try Opening WhatsApp Again ↗"),
			),
		),
	)
}
