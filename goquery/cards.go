// Package goquery implements listing-card extraction and article body
// selection on top of goquery.
package goquery

import (
	"fmt"
	"html"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/newsarchive"
)

// CardSelectors names the parts of a listing card.
type CardSelectors struct {
	Card    string
	Title   string
	Excerpt string
	Image   string
}

// DefaultCardSelectors matches the listing markup of the news site.
var DefaultCardSelectors = CardSelectors{
	Card:    "article.gc",
	Title:   "h3.gc__title",
	Excerpt: "div.gc__excerpt",
	Image:   "img.gc__image",
}

// TypeClasses maps card classes to article types. The first class present
// on the card wins; cards with none of them are posts.
var TypeClasses = []struct {
	Class string
	Type  newsarchive.ArticleType
}{
	{"gc--type-video", newsarchive.ArticleTypeVideo},
	{"gc--type-liveblog", newsarchive.ArticleTypeLiveblog},
	{"gc--type-episode", newsarchive.ArticleTypeEpisode},
}

// undatedSortKey orders undated records after every real date.
const undatedSortKey = "1900-01-01"

// Ensure CardExtractor implements newsarchive.ArticleExtractor at compile time.
var _ newsarchive.ArticleExtractor = (*CardExtractor)(nil)

// CardExtractor turns listing pages into article records.
type CardExtractor struct {
	selectors   CardSelectors
	dateSources []DateSource
	logger      *slog.Logger
}

// CardOption configures a CardExtractor.
type CardOption func(*CardExtractor)

// WithCardSelectors overrides the card markup selectors.
func WithCardSelectors(s CardSelectors) CardOption {
	return func(e *CardExtractor) {
		e.selectors = s
	}
}

// WithDateSources replaces the date heuristic chain.
func WithDateSources(sources []DateSource) CardOption {
	return func(e *CardExtractor) {
		e.dateSources = sources
	}
}

// WithLogger sets the logger used to report skipped cards.
func WithLogger(logger *slog.Logger) CardOption {
	return func(e *CardExtractor) {
		e.logger = logger
	}
}

// NewCardExtractor creates a CardExtractor with the default selectors and
// date chain.
func NewCardExtractor(opts ...CardOption) *CardExtractor {
	e := &CardExtractor{
		selectors:   DefaultCardSelectors,
		dateSources: DefaultDateSources,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractArticles returns one record per card that has both a title and a
// link. A card that fails to parse is logged and skipped.
func (e *CardExtractor) ExtractArticles(rawHTML string) ([]*newsarchive.Article, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, newsarchive.Errorf(newsarchive.EINVALID, "failed to parse HTML: %v", err)
	}

	var articles []*newsarchive.Article
	doc.Find(e.selectors.Card).Each(func(i int, card *goquery.Selection) {
		a, err := e.extractCard(card)
		if err != nil {
			e.logger.Warn("skipping card", "index", i, "err", err)
			return
		}
		if a == nil {
			return
		}
		a.ID = len(articles) + 1
		articles = append(articles, a)
	})

	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].DateOr(undatedSortKey) > articles[j].DateOr(undatedSortKey)
	})

	return articles, nil
}

func (e *CardExtractor) extractCard(card *goquery.Selection) (a *newsarchive.Article, err error) {
	defer func() {
		if r := recover(); r != nil {
			a, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()

	anchor := card.Find(e.selectors.Title).First().Find("a").First()
	link, _ := anchor.Attr("href")
	title := CleanText(anchor.Find("span").First().Text())
	if title == "" || link == "" {
		return nil, nil
	}

	excerpt := CleanText(card.Find(e.selectors.Excerpt).First().Find("p").First().Text())
	image, _ := card.Find(e.selectors.Image).First().Attr("src")

	dateText := e.dateText(card, link)

	return &newsarchive.Article{
		Title:    title,
		Excerpt:  excerpt,
		Link:     link,
		Date:     newsarchive.ParseDate(dateText),
		DateText: dateText,
		ImageURL: image,
		Type:     cardType(card),
		Source:   newsarchive.Source,
	}, nil
}

func (e *CardExtractor) dateText(card *goquery.Selection, link string) string {
	for _, src := range e.dateSources {
		if text := src.Find(card, link); text != "" {
			return text
		}
	}
	return ""
}

func cardType(card *goquery.Selection) newsarchive.ArticleType {
	for _, tc := range TypeClasses {
		if card.HasClass(tc.Class) {
			return tc.Type
		}
	}
	return newsarchive.ArticleTypePost
}

// CleanText decodes leftover HTML entities and collapses whitespace.
func CleanText(s string) string {
	return newsarchive.CollapseWhitespace(html.UnescapeString(s))
}

// DateSource finds raw date text on a card. It returns "" when it has
// nothing to offer.
type DateSource struct {
	Name string
	Find func(card *goquery.Selection, link string) string
}

// PublishedMarker prefixes raw date text.
const PublishedMarker = "Published On"

var (
	linkDate      = regexp.MustCompile(`/(\d{4})/(\d{1,2})/(\d{1,2})/`)
	textDateShape = []*regexp.Regexp{
		regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`),
		regexp.MustCompile(`\d{4}-\d{2}-\d{2}`),
		regexp.MustCompile(`\d{1,2}-\d{1,2}-\d{4}`),
	}
)

// DefaultDateSources is the date heuristic chain, tried in order.
var DefaultDateSources = []DateSource{
	{Name: "screen-reader", Find: screenReaderDate},
	{Name: "time", Find: timeDate},
	{Name: "link", Find: linkPathDate},
	{Name: "text", Find: visibleTextDate},
}

func screenReaderDate(card *goquery.Selection, _ string) string {
	text := card.Find("span.screen-reader-text").First().Text()
	if strings.Contains(text, PublishedMarker) {
		return strings.TrimSpace(text)
	}
	return ""
}

func timeDate(card *goquery.Selection, _ string) string {
	if dt, _ := card.Find("time").First().Attr("datetime"); dt != "" {
		return PublishedMarker + " " + dt
	}
	return ""
}

func linkPathDate(_ *goquery.Selection, link string) string {
	m := linkDate.FindStringSubmatch(link)
	if m == nil {
		return ""
	}
	return fmt.Sprintf("%s %s/%s/%s", PublishedMarker, m[3], m[2], m[1])
}

func visibleTextDate(card *goquery.Selection, _ string) string {
	text := card.Text()
	for _, re := range textDateShape {
		if m := re.FindString(text); m != "" {
			return PublishedMarker + " " + m
		}
	}
	return ""
}
