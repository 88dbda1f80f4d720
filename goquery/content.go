package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newsarchive"
	"golang.org/x/net/html"
)

// DefaultContentSelectors locate the article body, most specific first.
var DefaultContentSelectors = []string{
	".wysiwyg--all-content",
	".article-body",
	".post-content",
	"article .content",
	".entry-content",
}

// DefaultStripSelector matches nodes removed from the chosen body.
const DefaultStripSelector = "script, style, nav, header, footer, aside"

// Fallback defaults used when no content selector matches.
const (
	DefaultFallbackSelector = "div"
	DefaultFallbackMinChars = 200
)

// Ensure ContentSelector implements newsarchive.ContentSelector at compile time.
var _ newsarchive.ContentSelector = (*ContentSelector)(nil)

// ContentSelector chooses the body node of an article page. The first
// selector that matches wins. When none matches, the first fallback node
// whose own text is longer than the minimum is used, then the optional
// extractor.
type ContentSelector struct {
	selectors        []string
	strip            string
	fallbackSelector string
	fallbackMinChars int
	extractor        newsarchive.Extractor
}

// ContentOption configures a ContentSelector.
type ContentOption func(*ContentSelector)

// WithSelectors replaces the ordered body selectors.
func WithSelectors(selectors []string) ContentOption {
	return func(c *ContentSelector) {
		c.selectors = selectors
	}
}

// WithFallback sets the node selector and minimum direct text length of
// the heuristic fallback.
func WithFallback(selector string, minChars int) ContentOption {
	return func(c *ContentSelector) {
		c.fallbackSelector = selector
		c.fallbackMinChars = minChars
	}
}

// WithExtractor sets a main-content extractor tried after the heuristic
// fallback.
func WithExtractor(e newsarchive.Extractor) ContentOption {
	return func(c *ContentSelector) {
		c.extractor = e
	}
}

// NewContentSelector creates a ContentSelector with the default chain.
func NewContentSelector(opts ...ContentOption) *ContentSelector {
	c := &ContentSelector{
		selectors:        DefaultContentSelectors,
		strip:            DefaultStripSelector,
		fallbackSelector: DefaultFallbackSelector,
		fallbackMinChars: DefaultFallbackMinChars,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SelectText returns the body text with links flattened into their
// sentences and whitespace collapsed.
func (c *ContentSelector) SelectText(rawHTML string) (string, error) {
	body, err := c.body(rawHTML)
	if err != nil {
		return "", err
	}

	for _, n := range body.Nodes {
		unwrapLinks(n)
		mergeText(n)
	}

	text := newsarchive.CollapseWhitespace(joinText(body.Nodes, " \n "))
	if text == "" {
		return "", newsarchive.Errorf(newsarchive.ENOTFOUND, "article body is empty")
	}
	return text, nil
}

// SelectHTML returns the cleaned body markup.
func (c *ContentSelector) SelectHTML(rawHTML string) (string, error) {
	body, err := c.body(rawHTML)
	if err != nil {
		return "", err
	}
	return goquery.OuterHtml(body)
}

func (c *ContentSelector) body(rawHTML string) (*goquery.Selection, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, newsarchive.Errorf(newsarchive.EINVALID, "failed to parse HTML: %v", err)
	}

	body := c.find(doc)
	if body == nil {
		body = c.extract(rawHTML)
	}
	if body == nil {
		return nil, newsarchive.Errorf(newsarchive.ENOTFOUND, "article body not found")
	}

	body.Find(c.strip).Remove()
	return body, nil
}

func (c *ContentSelector) find(doc *goquery.Document) *goquery.Selection {
	for _, selector := range c.selectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			return sel
		}
	}

	if c.fallbackSelector == "" {
		return nil
	}
	var found *goquery.Selection
	doc.Find(c.fallbackSelector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if utf8.RuneCountInString(strings.TrimSpace(directText(sel.Nodes[0]))) > c.fallbackMinChars {
			found = sel
			return false
		}
		return true
	})
	return found
}

func (c *ContentSelector) extract(rawHTML string) *goquery.Selection {
	if c.extractor == nil {
		return nil
	}
	res, err := c.extractor.Extract(rawHTML)
	if err != nil || strings.TrimSpace(res.ContentHTML) == "" {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(res.ContentHTML))
	if err != nil {
		return nil
	}
	return doc.Find("body").First()
}

// directText concatenates the text children of n, ignoring descendants.
func directText(n *html.Node) string {
	var b strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.TextNode {
			b.WriteString(child.Data)
		}
	}
	return b.String()
}

// unwrapLinks replaces every anchor below n with a text node holding the
// anchor's text.
func unwrapLinks(n *html.Node) {
	var anchors []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if child.Type == html.ElementNode && child.Data == "a" {
				anchors = append(anchors, child)
				continue
			}
			walk(child)
		}
	}
	walk(n)

	for _, a := range anchors {
		text := &html.Node{Type: html.TextNode, Data: nodeText(a)}
		a.Parent.InsertBefore(text, a)
		a.Parent.RemoveChild(a)
	}
}

// mergeText joins adjacent text nodes below n so that flattened links read
// as part of the surrounding sentence.
func mergeText(n *html.Node) {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.TextNode {
			mergeText(child)
			continue
		}
		for next := child.NextSibling; next != nil && next.Type == html.TextNode; next = child.NextSibling {
			child.Data += next.Data
			n.RemoveChild(next)
		}
	}
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return b.String()
}

// joinText returns the trimmed, non-empty text nodes below nodes joined by sep.
func joinText(nodes []*html.Node, sep string) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if s := strings.TrimSpace(n.Data); s != "" {
				parts = append(parts, s)
			}
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return strings.Join(parts, sep)
}
