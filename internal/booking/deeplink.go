package booking

import (
	"net/url"
	"strings"
)

// EncodeComponent percent-encodes s the way a browser's encodeURIComponent
// does, so spaces become %20 rather than '+'.
func EncodeComponent(s string) string {
	escaped := url.QueryEscape(s)
	escaped = strings.ReplaceAll(escaped, "+", "%20")

	// QueryEscape escapes characters encodeURIComponent leaves alone
	for enc, raw := range map[string]string{
		"%21": "!", "%27": "'", "%28": "(", "%29": ")", "%2A": "*",
	} {
		escaped = strings.ReplaceAll(escaped, enc, raw)
	}
	return escaped
}

// DeepLink builds the chat deep link for message, e.g.
// https://wa.me/923043537785?text=...
func DeepLink(baseURL, destination, message string) string {
	return strings.TrimRight(baseURL, "/") + "/" + destination + "?text=" + EncodeComponent(message)
}
