// Package dashboard renders the status charts embedded in a dashboard page.
//
// A page carries one container per chart: an element with the marker class
// whose data attribute holds the JSON counts. Containers are rendered one at
// a time in document order; a broken container is skipped and reported
// without affecting its siblings.
package dashboard

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"status-dashboard/charting"
)

const (
	DefaultMarkerClass   = "chart"
	DefaultDataAttribute = "data-chart"
)

// Options controls how a page is rendered
type Options struct {
	Direction charting.Direction
	// AutoDirection reads the direction from <html dir="..."> and falls
	// back to Direction when the page doesn't say.
	AutoDirection bool
	MarkerClass   string
	DataAttribute string
}

// DefaultOptions renders LTR charts into ".chart[data-chart]" containers
func DefaultOptions() Options {
	return Options{
		Direction:     charting.LTR,
		MarkerClass:   DefaultMarkerClass,
		DataAttribute: DefaultDataAttribute,
	}
}

func (o Options) withDefaults() Options {
	if o.MarkerClass == "" {
		o.MarkerClass = DefaultMarkerClass
	}
	if o.DataAttribute == "" {
		o.DataAttribute = DefaultDataAttribute
	}
	return o
}

// Failure describes one container that could not be rendered
type Failure struct {
	Index int    `json:"index"`
	Error string `json:"error"`
	Err   error  `json:"-"`
}

// Report summarizes a page render
type Report struct {
	Direction  charting.Direction `json:"direction"`
	Containers int                `json:"containers"`
	Rendered   int                `json:"rendered"`
	Failures   []Failure          `json:"failures,omitempty"`
}

// RenderPage parses an HTML page, renders every chart container and writes
// the resulting page to w.
func RenderPage(r io.Reader, w io.Writer, opts Options) (Report, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return Report{}, fmt.Errorf("failed to parse page: %w", err)
	}

	report := RenderDocument(doc, opts)

	if err := html.Render(w, doc); err != nil {
		return report, fmt.Errorf("failed to write page: %w", err)
	}
	return report, nil
}

// RenderDocument renders every chart container of a parsed document in place.
func RenderDocument(doc *html.Node, opts Options) Report {
	opts = opts.withDefaults()

	dir := opts.Direction
	if opts.AutoDirection {
		if pageDir, ok := PageDirection(doc); ok {
			dir = pageDir
		}
	}

	containers := FindContainers(doc, opts.MarkerClass)
	report := Report{Direction: dir, Containers: len(containers)}

	for i, el := range containers {
		if err := renderIsolated(el, opts.DataAttribute, dir); err != nil {
			log.Printf("Chart %d: render failed: %v", i, err)
			report.Failures = append(report.Failures, Failure{Index: i, Error: err.Error(), Err: err})
			continue
		}
		report.Rendered++
	}
	return report
}

// renderIsolated keeps a panic in one container from aborting the page
func renderIsolated(el *html.Node, attr string, dir charting.Direction) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return RenderContainer(el, attr, dir)
}

// RenderContainer renders the payload held in el's data attribute and
// appends the SVG as el's last child. On error el is left untouched.
func RenderContainer(el *html.Node, attr string, dir charting.Direction) error {
	payload, ok := attrValue(el, attr)
	if !ok {
		return fmt.Errorf("%w: no %s attribute", charting.ErrInvalidPayload, attr)
	}

	var buf bytes.Buffer
	if err := charting.Render(&buf, []byte(payload), dir); err != nil {
		return err
	}

	nodes, err := html.ParseFragment(&buf, fragmentContext())
	if err != nil {
		return fmt.Errorf("failed to parse rendered svg: %w", err)
	}
	for _, n := range nodes {
		el.AppendChild(n)
	}
	return nil
}

// fragmentContext is the parent the SVG markup is parsed under
func fragmentContext() *html.Node {
	return &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
}

// FindContainers returns every element carrying class, in document order.
func FindContainers(doc *html.Node, class string) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, class) {
			found = append(found, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return found
}

// PageDirection reads the dir attribute of the <html> element
func PageDirection(doc *html.Node) (charting.Direction, bool) {
	var root *html.Node
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Html {
			root = c
			break
		}
	}
	if root == nil {
		return charting.LTR, false
	}
	v, ok := attrValue(root, "dir")
	if !ok {
		return charting.LTR, false
	}
	dir, err := charting.ParseDirection(strings.ToLower(strings.TrimSpace(v)))
	if err != nil {
		return charting.LTR, false
	}
	return dir, true
}

func hasClass(n *html.Node, class string) bool {
	v, ok := attrValue(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

func attrValue(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
