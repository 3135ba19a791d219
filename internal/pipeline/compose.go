package pipeline

import (
	"errors"
	"fmt"
	"html"
	"regexp"
	"sort"
	"strings"
)

// ErrMarkerNotFound indicates a template lacks a required marker.
var ErrMarkerNotFound = errors.New("template marker not found")

// Template markers. Each is replaced at most once, first match only.
const (
	ContentMarker = "<!-- content -->"
	StyleMarker   = "/*style*/"
)

// Composition is the output of Compose.
type Composition struct {
	HTML    string
	Missing []string // markers absent from the template
}

// MarkerError lists the markers a template lacks.
// It matches ErrMarkerNotFound with errors.Is.
type MarkerError struct {
	Missing []string
}

func (e *MarkerError) Error() string {
	return fmt.Sprintf("%v: %s", ErrMarkerNotFound, strings.Join(e.Missing, ", "))
}

func (e *MarkerError) Unwrap() error { return ErrMarkerNotFound }

// splice is one marker replacement at a template offset.
type splice struct {
	at     int
	marker string
	value  string
}

// Compose substitutes body and CSS into the template markers.
// Markers are located in tmpl alone, so marker text inside body or css is
// never replaced. A missing marker leaves the template unchanged at that
// point and is reported in Missing; with strict set it is a *MarkerError.
// CSS is sanitized so it cannot close the surrounding <style> element.
func Compose(tmpl, body, css string, strict bool) (*Composition, error) {
	out := &Composition{}

	var splices []splice
	for _, s := range []splice{
		{marker: ContentMarker, value: body},
		{marker: StyleMarker, value: sanitizeCSS(css)},
	} {
		s.at = strings.Index(tmpl, s.marker)
		if s.at == -1 {
			out.Missing = append(out.Missing, s.marker)
			continue
		}
		splices = append(splices, s)
	}

	if strict && len(out.Missing) > 0 {
		return nil, &MarkerError{Missing: out.Missing}
	}

	// Later offsets first so earlier ones stay valid.
	sort.Slice(splices, func(i, j int) bool { return splices[i].at > splices[j].at })
	doc := tmpl
	for _, s := range splices {
		doc = doc[:s.at] + s.value + doc[s.at+len(s.marker):]
	}

	out.HTML = compact(doc)
	return out, nil
}

// titlePattern matches the first <title> element of a template.
var titlePattern = regexp.MustCompile(`(?is)<title>.*?</title>`)

// SetTitle replaces the text of the first <title> element.
// Documents without one are returned unchanged.
func SetTitle(doc, title string) string {
	loc := titlePattern.FindStringIndex(doc)
	if loc == nil {
		return doc
	}
	return doc[:loc[0]] + "<title>" + html.EscapeString(title) + "</title>" + doc[loc[1]:]
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
