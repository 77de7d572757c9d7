package annotate

import (
	"sync"

	"golang.org/x/net/html"
)

// HoverBreakpoint is the viewport width, in pixels, at or above which
// tooltips also open on hover. Below it only clicks toggle a popup. The
// embedded browser script uses the same value.
const HoverBreakpoint = 900

// PopupController owns the page-wide "currently open popup" state. At most
// one popup is open at any instant: opening one closes every other. All
// mutation of the open/closed state routes through this object.
//
// The browser-side script mirrors this state machine; the Go object backs
// server-side rendering of pages that arrive with a term pre-revealed.
type PopupController struct {
	mu   sync.Mutex
	open string
}

// NewPopupController returns a controller with every popup closed.
func NewPopupController() *PopupController {
	return &PopupController{}
}

// Open marks the popup with the given id as the open one, closing whichever
// popup was open before. It returns the id that was closed, or "" if none.
func (c *PopupController) Open(id string) (closed string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.open == id {
		return ""
	}
	closed = c.open
	c.open = id
	return closed
}

// Close closes the popup with the given id if it is the open one.
func (c *PopupController) Close(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.open == id {
		c.open = ""
	}
}

// CloseAll closes any open popup (the "click outside" behavior).
func (c *PopupController) CloseAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = ""
}

// OpenID returns the id of the open popup, or "" when all are closed.
func (c *PopupController) OpenID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// Reveal renders the first annotation of key in doc with its popup open and
// every other popup closed, and records the open popup in the controller.
// It reports whether an annotation for key was found.
func (c *PopupController) Reveal(doc *html.Node, key string) bool {
	var target *html.Node
	var others []*html.Node

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, ClassPopup) {
			wrapper := n.Parent
			if target == nil && wrapper != nil && attrValue(wrapper, AttrTermKey) == key {
				target = n
			} else {
				others = append(others, n)
			}
			return
		}
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			walk(ch)
		}
	}
	walk(doc)

	if target == nil {
		return false
	}
	for _, popup := range others {
		setHidden(popup, true)
	}
	setHidden(target, false)
	c.Open(attrValue(target, "id"))
	return true
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setHidden(n *html.Node, hidden bool) {
	for i, a := range n.Attr {
		if a.Key == "hidden" {
			if !hidden {
				n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			}
			return
		}
	}
	if hidden {
		n.Attr = append(n.Attr, html.Attribute{Key: "hidden"})
	}
}
