package goquery

import (
	"strings"

	"golang.org/x/net/html"
)

// hiddenMarkers are matched as plain substrings of the style attribute.
var hiddenMarkers = []string{"hidden", "display: none", "display:none"}

// IsHidden reports whether the node's own style attribute hides it.
func IsHidden(n *html.Node) bool {
	style, ok := attr(n, "style")
	if !ok {
		return false
	}
	for _, marker := range hiddenMarkers {
		if strings.Contains(style, marker) {
			return true
		}
	}
	return false
}

// IsVisible reports whether neither the node nor any of its ancestors is
// hidden. A nil node is visible.
func IsVisible(n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if IsHidden(n) {
			return false
		}
	}
	return true
}

func attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
