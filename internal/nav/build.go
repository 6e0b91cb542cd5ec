package nav

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/net/html"

	"github.com/dionysius/docweave/internal/markup"
)

// Build parses a navigation file's contents and returns one Tree per
// top-level list block. navIndex is the file's position in the component
// version's declared nav[] list: the first block takes navIndex as its
// order, later blocks in the same file get navIndex + k/N rounded to four
// decimals, so file order always outranks within-file order.
func Build(source []byte, navIndex int, parser markup.Parser, resolveInclude markup.ResolveInclude, resolvePageRef markup.ResolvePageRef) ([]*Tree, error) {
	doc, err := parser.Parse(source, resolveInclude, resolvePageRef)
	if err != nil {
		return nil, fmt.Errorf("parse navigation: %w", err)
	}

	var lists []markup.Block
	for _, b := range doc.Blocks() {
		if b.Kind() == "list" {
			lists = append(lists, b)
		}
	}

	n := len(lists)
	trees := make([]*Tree, 0, n)
	for k, block := range lists {
		order := float64(navIndex)
		if k > 0 {
			order = round4(float64(navIndex) + float64(k)/float64(n))
		}
		trees = append(trees, &Tree{
			Content: block.Title(),
			Items:   buildItems(block.Items()),
			Root:    true,
			Order:   order,
		})
	}
	return trees, nil
}

func buildItems(items []markup.ListItem) []*Tree {
	if len(items) == 0 {
		return nil
	}

	out := make([]*Tree, 0, len(items))
	for _, item := range items {
		anchor, hasAnchor := findAnchor(item.Content())

		t := &Tree{Items: buildItems(item.Items())}
		if hasAnchor {
			t.Content = anchor.text
			t.URL = anchor.url
			t.URLType = anchor.urlType
			t.Hash = anchor.hash
		} else {
			t.Content = item.Content()
		}
		out = append(out, t)
	}
	return out
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

type parsedAnchor struct {
	url     string
	hash    string
	urlType string
	text    string
}

// findAnchor scans content for its first <a> element and classifies it:
// an anchor the cross-reference resolver marked role="page" is internal
// (url/hash split on "#"); an href starting with "#" with no such role is
// a same-page fragment link; anything else with an href is external.
// Content with no anchor at all reports hasAnchor=false.
func findAnchor(content string) (parsedAnchor, bool) {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return parsedAnchor{}, false
	}

	node := firstElement(doc, "a")
	if node == nil {
		return parsedAnchor{}, false
	}

	href := attr(node, "href")
	role := attr(node, "role")
	text := textContent(node)

	switch {
	case role == "page":
		if idx := strings.IndexByte(href, '#'); idx >= 0 {
			return parsedAnchor{url: href[:idx], hash: href[idx:], urlType: "internal", text: text}, true
		}
		return parsedAnchor{url: href, urlType: "internal", text: text}, true
	case strings.HasPrefix(href, "#"):
		return parsedAnchor{hash: href, urlType: "fragment", text: text}, true
	default:
		return parsedAnchor{url: href, urlType: "external", text: text}, true
	}
}

func firstElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := firstElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
