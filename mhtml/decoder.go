// Package mhtml decodes archived web captures saved as multi-part MIME
// documents.
package mhtml

import (
	"bytes"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/fwojciec/newsarchive"
)

// Default decoder settings.
const (
	DefaultLocationPattern = `https://www\.aljazeera\.net/.*?palestine`
	DefaultMaxLines        = 300000
	BoundaryPrefix         = "------MultipartBoundary"
)

// Ensure Decoder implements newsarchive.CaptureDecoder at compile time.
var _ newsarchive.CaptureDecoder = (*Decoder)(nil)

// Decoder extracts the listing page from a capture.
type Decoder struct {
	header   *regexp.Regexp
	maxLines int
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithLocationPattern sets the regular expression the part's
// Content-Location must match.
func WithLocationPattern(pattern string) Option {
	return func(d *Decoder) {
		d.header = headerPattern(pattern)
	}
}

// WithMaxLines bounds the number of lines collected from the HTML part.
func WithMaxLines(n int) Option {
	return func(d *Decoder) {
		d.maxLines = n
	}
}

// NewDecoder creates a Decoder.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{
		header:   headerPattern(DefaultLocationPattern),
		maxLines: DefaultMaxLines,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func headerPattern(location string) *regexp.Regexp {
	return regexp.MustCompile(`(?s)Content-Type: text/html.*?Content-Location: ` + location + `.*?\n\n`)
}

// Decode finds the HTML part whose location matches, collects its body up to
// the next boundary and undoes the quoted-printable transport encoding.
func (d *Decoder) Decode(r io.Reader) (string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	content := strings.ReplaceAll(string(raw), "\r\n", "\n")

	loc := d.header.FindStringIndex(content)
	if loc == nil {
		return "", newsarchive.Errorf(newsarchive.ENOTFOUND, "capture has no HTML part matching the expected location")
	}

	lines := strings.Split(content[loc[1]:], "\n")
	end := len(lines)
	for i, line := range lines {
		if strings.HasPrefix(line, BoundaryPrefix) || i >= d.maxLines {
			end = i
			break
		}
	}

	decoded := decodeQuotedPrintable(strings.Join(lines[:end], "\n"))
	return repair(strings.ToValidUTF8(decoded, "")), nil
}

// LooksLikeCapture reports whether data starts like a MIME capture rather
// than plain HTML.
func LooksLikeCapture(data []byte) bool {
	head := data[:min(len(data), 4096)]
	return bytes.Contains(head, []byte("MIME-Version:")) ||
		bytes.Contains(head, []byte("multipart/related"))
}

// decodeQuotedPrintable decodes soft line breaks and =XX escapes. Malformed
// escapes are kept literally.
func decodeQuotedPrintable(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '=' {
			b.WriteByte(c)
			continue
		}
		switch {
		case i+1 < len(s) && s[i+1] == '\n':
			i++
		case i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			v, _ := strconv.ParseUint(s[i+1:i+3], 16, 8)
			b.WriteByte(byte(v))
			i += 2
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

var residualEscape = regexp.MustCompile(`=([0-9A-F]{2})`)

// repair removes soft line breaks and decodes =XX escapes that survived
// the transport decoding, e.g. from double-encoded input.
func repair(s string) string {
	s = strings.ReplaceAll(s, "=\n", "")
	return residualEscape.ReplaceAllStringFunc(s, func(m string) string {
		v, _ := strconv.ParseUint(m[1:], 16, 8)
		return string(rune(v))
	})
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
