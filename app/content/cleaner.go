package content

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// bodySelector matches the article body container used by the source
// sites; when absent the whole document body is cleaned instead.
const bodySelector = `div.item-text[itemprop="articleBody"]`

// junkSelector matches elements that never belong in an upload:
// ad slots, related-article widgets and embed leftovers.
const junkSelector = ".ads, .related, .related-content, .advertisement, .item-code, pre, code, script, style, iframe, form"

var blankLines = regexp.MustCompile(`\n{3,}`)

// Cleaner turns raw scraped HTML into the sanitized fragment that gets
// pasted into the CMS editor.
type Cleaner struct {
	blacklist *Blacklist
}

func NewCleaner(blacklist *Blacklist) *Cleaner {
	return &Cleaner{blacklist: blacklist}
}

// Clean extracts the article body from rawHTML, removes junk elements,
// flattens links to their text and strips blacklisted phrases. The
// result is an HTML fragment; cleaning an already-clean fragment
// returns it unchanged.
func (c *Cleaner) Clean(rawHTML string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", fmt.Errorf("failed to parse article HTML: %w", err)
	}

	root := doc.Find(bodySelector).First()
	if root.Length() == 0 {
		root = doc.Find("body").First()
	}
	if root.Length() == 0 {
		return "", fmt.Errorf("article HTML has no body")
	}

	root.Find(junkSelector).Remove()

	// Links are flattened to their visible text so uploads never carry
	// outbound references to the source site.
	root.Find("a").Each(func(_ int, sel *goquery.Selection) {
		sel.ReplaceWithHtml(html.EscapeString(sel.Text()))
	})

	c.stripTextNodes(root)

	cleaned, err := root.Html()
	if err != nil {
		return "", fmt.Errorf("failed to render cleaned HTML: %w", err)
	}

	cleaned = blankLines.ReplaceAllString(cleaned, "\n\n")

	return strings.TrimSpace(cleaned), nil
}

// stripTextNodes walks every text node under root and removes
// blacklisted phrases without disturbing the surrounding markup.
func (c *Cleaner) stripTextNodes(root *goquery.Selection) {
	if c.blacklist == nil {
		return
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			n.Data = c.blacklist.Strip(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}

	for _, node := range root.Nodes {
		walk(node)
	}
}

// Summarize produces a plain-text lead from the cleaned fragment,
// truncated to at most maxRunes runes on a word boundary.
func Summarize(cleanedHTML string, maxRunes int) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(cleanedHTML))
	if err != nil {
		return ""
	}

	text := strings.Join(strings.Fields(doc.Text()), " ")

	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}

	cut := string(runes[:maxRunes])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "…"
}
