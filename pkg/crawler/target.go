package crawler

import (
	"strings"
)

// TargetKind distinguishes how an injection point was discovered
type TargetKind string

const (
	KindForm  TargetKind = "form"
	KindQuery TargetKind = "query"
)

// Param is one ordered (name, value) pair. Order and duplicates are
// significant for baseline request content.
type Param struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Target represents one reachable injection point: a form submission or
// a URL's query parameters. Targets are created once during extraction
// and immutable afterwards.
type Target struct {
	// Endpoint URL; the query string is stripped for query-kind targets
	URL string `json:"url"`

	// "GET" or "POST"
	Method string `json:"method"`

	// Parameter names eligible for payload substitution, sorted and unique
	InjectableParams []string `json:"injectable_params"`

	// Baseline (name, value) pairs in encounter order, duplicates preserved
	FixedParams []Param `json:"fixed_params"`

	// Page where the target was discovered
	SourceURL string `json:"source_url"`

	// form | query
	Kind TargetKind `json:"kind"`

	// Form encoding; only meaningful for POST
	Enctype string `json:"enctype,omitempty"`

	// Names heuristically identified as anti-CSRF tokens, sorted.
	// Informational only; they stay in the injectable set.
	CSRFParamNames []string `json:"csrf_param_names,omitempty"`

	// First-seen declared control type per name, used only for
	// detection-context classification
	ParamTypes map[string]string `json:"param_types,omitempty"`

	// Candidate pairs from submit-like controls, in encounter order.
	// Materialized into FixedParams only when include-submit is on.
	SubmitOptions []Param `json:"submit_options,omitempty"`
}

// TargetKey is the canonical comparable dedup key. Equality is exact:
// no normalization is applied to any component.
type TargetKey struct {
	Method     string
	URL        string
	Injectable string
	Fixed      string
	Submit     string
	CSRF       string
	Enctype    string
	Kind       TargetKind
}

// keySep cannot occur in URL-decoded names often enough to matter; a
// control byte keeps joined fields from colliding.
const keySep = "\x1f"

func joinParams(params []Param) string {
	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteString(keySep)
		}
		b.WriteString(p.Name)
		b.WriteString("\x1e")
		b.WriteString(p.Value)
	}
	return b.String()
}

// Key derives the dedup fingerprint for this target. Two targets with
// equal keys collapse to one accumulator entry.
func (t *Target) Key() TargetKey {
	return TargetKey{
		Method:     t.Method,
		URL:        t.URL,
		Injectable: strings.Join(t.InjectableParams, keySep),
		Fixed:      joinParams(t.FixedParams),
		Submit:     joinParams(t.SubmitOptions),
		CSRF:       strings.Join(t.CSRFParamNames, keySep),
		Enctype:    t.Enctype,
		Kind:       t.Kind,
	}
}
