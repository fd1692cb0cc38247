package testsupport

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a parsed HTML fragment that can be queried the way a user
// perceives the page: by placeholder, role, visible text, or test id.
type Document struct {
	root *html.Node
}

// Element wraps a single element node.
type Element struct {
	node *html.Node
}

// ParseHTML parses rendered output into a Document.
func ParseHTML(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("testsupport: parse html: %w", err)
	}
	return &Document{root: root}, nil
}

// MustParseHTML parses output or fails the test.
func MustParseHTML(t *testing.T, output []byte) *Document {
	t.Helper()
	doc, err := ParseHTML(bytes.NewReader(output))
	if err != nil {
		t.Fatalf("%v", err)
	}
	return doc
}

// ByPlaceholder returns the first control whose placeholder matches exactly.
func (d *Document) ByPlaceholder(placeholder string) (*Element, bool) {
	return d.first(func(n *html.Node) bool {
		return (n.DataAtom == atom.Input || n.DataAtom == atom.Textarea) && attr(n, "placeholder") == placeholder
	})
}

// ByName returns the first element whose name attribute matches, including
// hidden inputs that carry no role.
func (d *Document) ByName(name string) (*Element, bool) {
	return d.first(func(n *html.Node) bool {
		return n.Type == html.ElementNode && attr(n, "name") == name
	})
}

// AllByRole returns elements carrying the implicit or explicit ARIA role.
// Only the roles a form uses are recognised: button, textbox, heading, alert.
func (d *Document) AllByRole(role string) []*Element {
	return d.all(func(n *html.Node) bool { return roleOf(n) == role })
}

// ByRole returns the first element with role whose accessible text equals
// name. An empty name matches any element with the role.
func (d *Document) ByRole(role, name string) (*Element, bool) {
	for _, el := range d.AllByRole(role) {
		if name == "" || el.Text() == name {
			return el, true
		}
	}
	return nil, false
}

// AllByTestID returns every element whose data-testid equals id.
func (d *Document) AllByTestID(id string) []*Element {
	return d.all(func(n *html.Node) bool { return attr(n, "data-testid") == id })
}

// ByTestID returns the first element whose data-testid equals id.
func (d *Document) ByTestID(id string) (*Element, bool) {
	return d.first(func(n *html.Node) bool { return attr(n, "data-testid") == id })
}

// QueryByText returns the innermost element whose trimmed text equals text.
func (d *Document) QueryByText(text string) (*Element, bool) {
	var found *html.Node
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom != atom.Style && collectText(n) == text {
			found = n
		}
		return false
	})
	if found == nil {
		return nil, false
	}
	return &Element{node: found}, true
}

// Texts returns the text of each element.
func Texts(elements []*Element) []string {
	out := make([]string, 0, len(elements))
	for _, el := range elements {
		out = append(out, el.Text())
	}
	return out
}

// Tag returns the element name, e.g. "input".
func (e *Element) Tag() string { return e.node.Data }

// Attr returns the value of the named attribute.
func (e *Element) Attr(name string) string { return attr(e.node, name) }

// Has reports whether the named attribute is present.
func (e *Element) Has(name string) bool {
	for _, a := range e.node.Attr {
		if a.Key == name {
			return true
		}
	}
	return false
}

// Text returns the element's trimmed, whitespace-collapsed text content.
func (e *Element) Text() string { return collectText(e.node) }

// Value returns the current value of a control: the value attribute for
// inputs and the text content for textareas.
func (e *Element) Value() string {
	if e.node.DataAtom == atom.Textarea {
		var sb strings.Builder
		for c := e.node.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				sb.WriteString(c.Data)
			}
		}
		return sb.String()
	}
	return attr(e.node, "value")
}

func (d *Document) first(match func(*html.Node) bool) (*Element, bool) {
	var found *html.Node
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && match(n) {
			found = n
			return true
		}
		return false
	})
	if found == nil {
		return nil, false
	}
	return &Element{node: found}, true
}

func (d *Document) all(match func(*html.Node) bool) []*Element {
	var out []*Element
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, &Element{node: n})
		}
		return false
	})
	return out
}

// walk visits nodes depth first until visit returns true.
func walk(n *html.Node, visit func(*html.Node) bool) bool {
	if visit(n) {
		return true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if walk(c, visit) {
			return true
		}
	}
	return false
}

func roleOf(n *html.Node) string {
	if role := attr(n, "role"); role != "" {
		return role
	}
	switch n.DataAtom {
	case atom.Button:
		return "button"
	case atom.Textarea:
		return "textbox"
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return "heading"
	case atom.Input:
		switch strings.ToLower(attr(n, "type")) {
		case "", "text", "email", "tel", "url", "search":
			return "textbox"
		case "submit", "button", "reset":
			return "button"
		}
	}
	return ""
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func collectText(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}
