package xss

import "testing"

func TestClassifyContext(t *testing.T) {
	tests := []struct {
		paramType string
		want      Context
	}{
		{"query", ContextHTML},
		{"text", ContextHTML},
		{"textarea", ContextHTML},
		{"search", ContextHTML},
		{"email", ContextHTML},
		{"password", ContextHTML},
		{"hidden", ContextAttr},
		{"select", ContextAttr},
		{"number", ContextJS},
		{"range", ContextJS},
		{"date", ContextJS},
		{"datetime-local", ContextJS},
		{"time", ContextJS},
		{"button:submit", ContextAttr},
		{"button:reset", ContextAttr},
		{"", ContextHTML},       // unknown falls back to html
		{"custom", ContextHTML}, // unknown falls back to html
		{" TEXT ", ContextHTML}, // normalization
		{"HIDDEN", ContextAttr},
	}

	for _, tt := range tests {
		if got := ClassifyContext(tt.paramType); got != tt.want {
			t.Errorf("ClassifyContext(%q) = %s, want %s", tt.paramType, got, tt.want)
		}
	}
}

func TestPayloadCatalog(t *testing.T) {
	if len(getProbePayloads()) == 0 {
		t.Error("probe payload list must not be empty")
	}

	for _, context := range []Context{ContextHTML, ContextAttr, ContextJS} {
		if len(getContextPayloads(context)) == 0 {
			t.Errorf("no payloads for context %s", context)
		}
	}

	// unknown contexts fall back to the html list
	fallback := getContextPayloads(Context("bogus"))
	html := getContextPayloads(ContextHTML)
	if len(fallback) != len(html) || fallback[0] != html[0] {
		t.Error("unknown context should fall back to html payloads")
	}
}

func TestIsReflectedUnescaped(t *testing.T) {
	payload := `xss'"<>123`

	tests := []struct {
		name string
		body string
		want bool
	}{
		{"verbatim reflection", `<p>result: xss'"<>123</p>`, true},
		{"absent", `<p>nothing here</p>`, false},
		{"escaped only", `<p>xss&#39;&#34;&lt;&gt;123</p>`, false},
		{"both raw and escaped", `xss'"<>123 and xss&#39;&#34;&lt;&gt;123`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isReflectedUnescaped(payload, tt.body); got != tt.want {
				t.Errorf("isReflectedUnescaped(%q) = %v, want %v", tt.body, got, tt.want)
			}
		})
	}
}

func TestIsReflectedUnescapedPlainPayload(t *testing.T) {
	// a payload without escapable characters is its own escaped form;
	// a verbatim hit must still count
	if !isReflectedUnescaped("xssprobe123", "<p>xssprobe123</p>") {
		t.Error("plain marker payload should register as reflected")
	}
	if isReflectedUnescaped("xssprobe123", "<p>other</p>") {
		t.Error("missing payload must not register")
	}
}
