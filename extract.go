package newsarchive

import "io"

// CaptureDecoder turns an archived multi-part web capture into the HTML of
// its listing page.
type CaptureDecoder interface {
	// Decode returns the decoded HTML part. Returns ENOTFOUND when the
	// capture holds no matching HTML part.
	Decode(r io.Reader) (string, error)
}

// ArticleExtractor parses listing pages into article records.
type ArticleExtractor interface {
	// ExtractArticles returns one record per usable card, ids assigned in
	// document order, sorted by date descending with undated records last.
	ExtractArticles(html string) ([]*Article, error)
}
