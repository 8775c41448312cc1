package crawler

import (
	"net/url"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const defaultEnctype = "application/x-www-form-urlencoded"

// csrfKeywords flags parameter names that look like anti-CSRF tokens
var csrfKeywords = []string{
	"csrf",
	"xsrf",
	"_token",
	"authenticity_token",
	"csrfmiddlewaretoken",
	"__requestverificationtoken",
}

func looksLikeCSRF(name string) bool {
	nameLower := strings.ToLower(name)
	for _, keyword := range csrfKeywords {
		if strings.Contains(nameLower, keyword) {
			return true
		}
	}
	return false
}

// isAncestor reports whether anc is a strict ancestor of n
func isAncestor(anc, n *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p == anc {
			return true
		}
	}
	return false
}

// isDisabled reports whether a control is excluded from its form: it
// carries a disabled attribute itself, or an ancestor fieldset does and
// the control is outside that fieldset's first direct legend child (the
// legend region is exempt from fieldset-level disabling).
func isDisabled(control *goquery.Selection) bool {
	if _, ok := control.Attr("disabled"); ok {
		return true
	}

	disabled := false
	control.ParentsFiltered("fieldset").EachWithBreak(func(_ int, fieldset *goquery.Selection) bool {
		if _, ok := fieldset.Attr("disabled"); !ok {
			return true
		}

		legend := fieldset.ChildrenFiltered("legend").First()
		if legend.Length() > 0 && isAncestor(legend.Nodes[0], control.Nodes[0]) {
			return true
		}

		disabled = true
		return false
	})

	return disabled
}

// optionValue resolves an option's submission value: the declared value
// attribute, or the trimmed text content if absent
func optionValue(option *goquery.Selection) string {
	if value, ok := option.Attr("value"); ok {
		return value
	}
	return strings.TrimSpace(option.Text())
}

// formControls tracks the state accumulated while walking one form's
// controls in document order
type formControls struct {
	injectable map[string]bool
	fixed      []Param
	csrf       map[string]bool
	paramTypes map[string]string
	submit     []Param
}

func (fc *formControls) setType(name, paramType string) {
	if _, seen := fc.paramTypes[name]; !seen {
		fc.paramTypes[name] = paramType
	}
}

func (fc *formControls) walkInput(name string, control *goquery.Selection) {
	inputType := strings.ToLower(control.AttrOr("type", ""))
	if inputType == "" {
		inputType = "text"
	}
	value, hasValue := control.Attr("value")
	fc.setType(name, inputType)

	switch inputType {
	case "hidden":
		fc.fixed = append(fc.fixed, Param{Name: name, Value: value})
	case "submit", "button":
		fc.submit = append(fc.submit, Param{Name: name, Value: value})
	case "image":
		fc.submit = append(fc.submit, Param{Name: name + ".x", Value: "0"})
		fc.submit = append(fc.submit, Param{Name: name + ".y", Value: "0"})
	case "radio":
		fc.injectable[name] = true
		if _, checked := control.Attr("checked"); checked {
			checkedValue := "on"
			if hasValue {
				checkedValue = value
			}
			fc.fixed = append(fc.fixed, Param{Name: name, Value: checkedValue})
		}
	case "checkbox":
		fc.injectable[name] = true
		if _, checked := control.Attr("checked"); checked {
			checkedValue := value
			if checkedValue == "" {
				checkedValue = "on"
			}
			fc.fixed = append(fc.fixed, Param{Name: name, Value: checkedValue})
		}
	case "reset", "file":
		// never submitted by the scanner
	default:
		// text, password, email, number, date, ...
		fc.injectable[name] = true
	}
}

func (fc *formControls) walkSelect(name string, control *goquery.Selection) {
	fc.setType(name, "select")
	fc.injectable[name] = true

	options := control.Find("option")
	if options.Length() == 0 {
		return
	}

	var selected []*goquery.Selection
	options.Each(func(_ int, option *goquery.Selection) {
		if _, ok := option.Attr("selected"); ok {
			selected = append(selected, option)
		}
	})

	if _, multiple := control.Attr("multiple"); multiple {
		for _, option := range selected {
			fc.fixed = append(fc.fixed, Param{Name: name, Value: optionValue(option)})
		}
		return
	}

	chosen := options.First()
	if len(selected) > 0 {
		chosen = selected[0]
	}
	fc.fixed = append(fc.fixed, Param{Name: name, Value: optionValue(chosen)})
}

func (fc *formControls) walkButton(name string, control *goquery.Selection) {
	buttonType := strings.ToLower(control.AttrOr("type", ""))
	if buttonType == "" {
		buttonType = "submit"
	}
	fc.setType(name, "button:"+buttonType)

	if buttonType == "submit" || buttonType == "button" {
		fc.submit = append(fc.submit, Param{Name: name, Value: control.AttrOr("value", "")})
	}
}

func sortedNames(set map[string]bool) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// extractFormTargets walks every form in the document and builds one
// target per form, in document order
func extractFormTargets(pageURL string, doc *goquery.Document, includeSubmit bool) []*Target {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}

	var targets []*Target

	doc.Find("form").Each(func(_ int, form *goquery.Selection) {
		method := strings.ToUpper(strings.TrimSpace(form.AttrOr("method", "")))
		if method != "GET" && method != "POST" {
			method = "GET"
		}

		actionURL := pageURL
		if action := form.AttrOr("action", ""); action != "" {
			if resolved, err := base.Parse(action); err == nil {
				actionURL = resolved.String()
			}
		}

		enctype := strings.ToLower(strings.TrimSpace(form.AttrOr("enctype", "")))
		if enctype == "" {
			enctype = defaultEnctype
		}

		fc := &formControls{
			injectable: make(map[string]bool),
			csrf:       make(map[string]bool),
			paramTypes: make(map[string]string),
		}

		form.Find("input, textarea, select, button").Each(func(_ int, control *goquery.Selection) {
			if isDisabled(control) {
				return
			}

			name := strings.TrimSpace(control.AttrOr("name", ""))
			if name == "" {
				return
			}

			if looksLikeCSRF(name) {
				fc.csrf[name] = true
			}

			switch goquery.NodeName(control) {
			case "input":
				fc.walkInput(name, control)
			case "textarea":
				fc.setType(name, "textarea")
				fc.injectable[name] = true
				fc.fixed = append(fc.fixed, Param{Name: name, Value: control.Text()})
			case "select":
				fc.walkSelect(name, control)
			case "button":
				fc.walkButton(name, control)
			}
		})

		if includeSubmit && len(fc.submit) > 0 {
			fc.fixed = append(fc.fixed, fc.submit[0])
		}

		targets = append(targets, &Target{
			URL:              actionURL,
			Method:           method,
			InjectableParams: sortedNames(fc.injectable),
			FixedParams:      fc.fixed,
			SourceURL:        pageURL,
			Kind:             KindForm,
			Enctype:          enctype,
			CSRFParamNames:   sortedNames(fc.csrf),
			ParamTypes:       fc.paramTypes,
			SubmitOptions:    fc.submit,
		})
	})

	return targets
}

// parseQueryPairs splits a raw query string into ordered pairs,
// preserving duplicates and blank values. net/url's ParseQuery returns
// an unordered map, which would lose the baseline ordering.
func parseQueryPairs(query string) []Param {
	var pairs []Param
	for _, segment := range strings.Split(query, "&") {
		if segment == "" {
			continue
		}
		rawName, rawValue, _ := strings.Cut(segment, "=")
		name, err := url.QueryUnescape(rawName)
		if err != nil {
			name = rawName
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			value = rawValue
		}
		pairs = append(pairs, Param{Name: name, Value: value})
	}
	return pairs
}

// ExtractQueryTarget builds the query-string target for one URL, or nil
// when the URL carries no usable query parameters
func ExtractQueryTarget(pageURL, sourceURL string) *Target {
	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.RawQuery == "" {
		return nil
	}

	var fixed []Param
	injectable := make(map[string]bool)
	for _, pair := range parseQueryPairs(parsed.RawQuery) {
		name := strings.TrimSpace(pair.Name)
		if name == "" {
			continue
		}
		fixed = append(fixed, Param{Name: name, Value: pair.Value})
		injectable[name] = true
	}
	if len(fixed) == 0 {
		return nil
	}

	endpoint := *parsed
	endpoint.RawQuery = ""

	names := sortedNames(injectable)
	paramTypes := make(map[string]string, len(names))
	for _, name := range names {
		paramTypes[name] = "query"
	}

	return &Target{
		URL:              endpoint.String(),
		Method:           "GET",
		InjectableParams: names,
		FixedParams:      fixed,
		SourceURL:        sourceURL,
		Kind:             KindQuery,
		ParamTypes:       paramTypes,
	}
}

// ExtractPageTargets parses one page and returns its targets: forms in
// document order, then at most one query target for the page URL
// itself. Malformed HTML is tolerated; parsing is best effort.
func ExtractPageTargets(pageURL, htmlText string, includeSubmit bool) []*Target {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		return nil
	}
	return extractDocTargets(pageURL, doc, includeSubmit)
}

func extractDocTargets(pageURL string, doc *goquery.Document, includeSubmit bool) []*Target {
	targets := extractFormTargets(pageURL, doc, includeSubmit)
	if queryTarget := ExtractQueryTarget(pageURL, pageURL); queryTarget != nil {
		targets = append(targets, queryTarget)
	}
	return targets
}
