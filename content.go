package newsarchive

import "context"

// Placeholders are shown in place of article content that could not be
// retrieved.
const (
	PlaceholderNotFound     = "عذراً، لم يتم العثور على محتوى المقال الكامل."
	PlaceholderNetworkError = "عذراً، حدث خطأ في تحميل محتوى المقال."
	PlaceholderParseError   = "عذراً، حدث خطأ في معالجة محتوى المقال."
	PlaceholderNoLink       = "عذراً، رابط المقال غير متوفر."
)

// IsPlaceholder reports whether text is empty or one of the placeholders.
// Article text that merely opens like a placeholder is content.
func IsPlaceholder(text string) bool {
	switch text {
	case "", PlaceholderNotFound, PlaceholderNetworkError, PlaceholderParseError, PlaceholderNoLink:
		return true
	}
	return false
}

// ContentService provides the full text of live articles.
type ContentService interface {
	// FetchContent returns the article text at url with paragraphs
	// separated by a blank line. It never fails: on any problem it returns
	// one of the placeholders.
	FetchContent(ctx context.Context, url string) string
}

// ContentSelector picks the main body out of an article page.
type ContentSelector interface {
	// SelectText returns the flattened, whitespace-collapsed body text.
	// Returns ENOTFOUND when no body can be identified.
	SelectText(html string) (string, error)

	// SelectHTML returns the cleaned body markup.
	// Returns ENOTFOUND when no body can be identified.
	SelectHTML(html string) (string, error)
}

// ExtractResult holds the main content found by an Extractor.
type ExtractResult struct {
	Title string

	// ContentHTML is the main content with boilerplate removed.
	ContentHTML string
}

// Extractor finds the main content of an arbitrary page.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	Convert(html string) (string, error)
}

// MarkdownRenderer renders the body of a live article as Markdown.
type MarkdownRenderer interface {
	// Render fetches url and returns its body as Markdown. Unlike
	// ContentService it reports failures to the caller.
	Render(ctx context.Context, url string) (string, error)
}
