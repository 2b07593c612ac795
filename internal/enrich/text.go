package enrich

import (
	"strings"

	"golang.org/x/net/html"
)

// ExtractText flattens ingested article HTML into plain text before
// prompting. Script and style bodies are dropped; block boundaries become
// single spaces. Input that is not HTML passes through unchanged.
func ExtractText(content string) string {
	if !strings.Contains(content, "<") {
		return content
	}
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return content
	}

	var b strings.Builder
	collectText(doc, &b)
	return strings.Join(strings.Fields(b.String()), " ")
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return
	}
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		b.WriteString(" ")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}
