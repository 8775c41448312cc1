package xss

import (
	"html"
	"strings"
)

// isReflectedUnescaped reports whether a payload reflects usefully:
// the literal payload appears verbatim in the body AND its HTML-entity
// escaped rendering does not also appear. When the escaped form shows
// up alongside the raw one, the raw hit is most likely our own input
// echoed through an encoder elsewhere on the page.
func isReflectedUnescaped(payload, body string) bool {
	if !strings.Contains(body, payload) {
		return false
	}

	escaped := html.EscapeString(payload)
	if escaped != payload && strings.Contains(body, escaped) {
		return false
	}

	return true
}
