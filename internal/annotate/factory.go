package annotate

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/termtip/termtip/internal/glossary"
)

// Class name and attribute hooks for the annotation markup. External
// stylesheets, scripts and tests rely on these staying stable.
const (
	ClassTerm      = "termtip-term"
	ClassTrigger   = "termtip-trigger"
	ClassIndicator = "termtip-indicator"
	ClassPopup     = "termtip-popup"
	ClassTitle     = "termtip-title"
	ClassBody      = "termtip-body"
	ClassLink      = "termtip-link"

	// AttrTermKey carries the matched dictionary key on the wrapper element.
	AttrTermKey = "data-term"
)

// DefaultGlossaryHref is the canonical glossary location every annotation's
// reference link points at.
const DefaultGlossaryHref = "glossary.html"

// Factory builds annotation node structures. Construction is pure: every
// call produces an independent node, so a term occurring many times gets one
// interactive instance per occurrence.
type Factory struct {
	glossaryHref string
}

// NewFactory returns a Factory whose reference links point at glossaryHref.
func NewFactory(glossaryHref string) *Factory {
	if glossaryHref == "" {
		glossaryHref = DefaultGlossaryHref
	}
	return &Factory{glossaryHref: glossaryHref}
}

// Build constructs the annotation for one occurrence of key. The trigger
// span carries the matched text verbatim; the popup starts closed.
//
//	<span class="termtip-term" data-term=KEY id=ID>
//	  <span class="termtip-trigger">KEY</span>
//	  <button class="termtip-indicator" aria-expanded="false">...</button>
//	  <span class="termtip-popup" role="tooltip" id=ID-popup hidden>
//	    <span class="termtip-title">FullName</span>
//	    <span class="termtip-body">ShortDefinition</span>
//	    <a class="termtip-link" href=...>Glossary</a>
//	  </span>
//	</span>
func (f *Factory) Build(key string, term glossary.Term) *html.Node {
	id := "termtip-" + uuid.NewString()
	popupID := id + "-popup"

	wrapper := elem(atom.Span, "span",
		attr("class", ClassTerm),
		attr(AttrTermKey, key),
		attr("id", id),
	)

	trigger := elem(atom.Span, "span", attr("class", ClassTrigger))
	trigger.AppendChild(text(key))

	indicator := elem(atom.Button, "button",
		attr("class", ClassIndicator),
		attr("type", "button"),
		attr("aria-expanded", "false"),
		attr("aria-describedby", popupID),
	)
	indicator.AppendChild(text("?"))

	popup := elem(atom.Span, "span",
		attr("class", ClassPopup),
		attr("role", "tooltip"),
		attr("id", popupID),
		attr("hidden", ""),
	)
	title := elem(atom.Span, "span", attr("class", ClassTitle))
	title.AppendChild(text(term.FullName))
	body := elem(atom.Span, "span", attr("class", ClassBody))
	body.AppendChild(text(term.ShortDefinition))
	link := elem(atom.A, "a",
		attr("class", ClassLink),
		attr("href", f.glossaryHref),
	)
	link.AppendChild(text("Glossary"))
	popup.AppendChild(title)
	popup.AppendChild(body)
	popup.AppendChild(link)

	wrapper.AppendChild(trigger)
	wrapper.AppendChild(indicator)
	wrapper.AppendChild(popup)
	return wrapper
}

// IsAnnotation reports whether the element is an annotation wrapper (or one
// of its parts) produced by a Factory.
func IsAnnotation(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, a := range n.Attr {
		if a.Key == AttrTermKey {
			return true
		}
		if a.Key == "class" {
			for _, c := range strings.Fields(a.Val) {
				if strings.HasPrefix(c, "termtip-") {
					return true
				}
			}
		}
	}
	return false
}

// TriggerText returns the visible trigger text of an annotation wrapper,
// the text the annotation replaced.
func TriggerText(wrapper *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, ClassPopup) {
			return
		}
		if n.Type == html.TextNode && n.Parent != nil && hasClass(n.Parent, ClassTrigger) {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(wrapper)
	return b.String()
}

func hasClass(n *html.Node, class string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, a := range n.Attr {
		if a.Key == "class" {
			for _, c := range strings.Fields(a.Val) {
				if c == class {
					return true
				}
			}
		}
	}
	return false
}

func elem(a atom.Atom, tag string, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     tag,
		Attr:     attrs,
	}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
