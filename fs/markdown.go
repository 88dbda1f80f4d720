package fs

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fwojciec/newsarchive"
	"gopkg.in/yaml.v3"
)

// Ensure MarkdownFormat implements newsarchive.DocumentFormat at compile time.
var _ newsarchive.DocumentFormat = MarkdownFormat{}

// MarkdownFormat creates markdown documents with YAML frontmatter.
type MarkdownFormat struct {
	// Now stamps the frontmatter. Defaults to time.Now.
	Now func() time.Time
}

// Ext returns ".md".
func (MarkdownFormat) Ext() string { return ".md" }

// NewDocument returns an empty markdown document.
func (f MarkdownFormat) NewDocument() newsarchive.Document {
	now := f.Now
	if now == nil {
		now = time.Now
	}
	return &MarkdownDocument{generated: now()}
}

// Ensure MarkdownDocument implements newsarchive.Document at compile time.
var _ newsarchive.Document = (*MarkdownDocument)(nil)

// MarkdownDocument accumulates markdown blocks. The first level 0 heading
// becomes the frontmatter title.
type MarkdownDocument struct {
	title     string
	generated time.Time
	blocks    []string
}

type frontmatter struct {
	Title     string `yaml:"title"`
	Generated string `yaml:"generated"`
}

// AddHeading appends an ATX heading. Level 0 renders as "#".
func (d *MarkdownDocument) AddHeading(text string, level int) {
	if level == 0 && d.title == "" {
		d.title = text
	}
	d.blocks = append(d.blocks, strings.Repeat("#", max(level, 0)+1)+" "+text)
}

// AddParagraph appends a paragraph.
func (d *MarkdownDocument) AddParagraph(text string) {
	d.blocks = append(d.blocks, text)
}

// AddImage appends a link to the image source.
func (d *MarkdownDocument) AddImage(img *newsarchive.Image) error {
	if img == nil || img.URL == "" {
		return newsarchive.Errorf(newsarchive.EINVALID, "image URL required")
	}
	d.blocks = append(d.blocks, fmt.Sprintf("![](%s)", img.URL))
	return nil
}

// String renders the document.
func (d *MarkdownDocument) String() string {
	fm, _ := yaml.Marshal(frontmatter{
		Title:     d.title,
		Generated: d.generated.Format("2006-01-02"),
	})

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(fm)
	b.WriteString("---\n\n")
	b.WriteString(strings.Join(d.blocks, "\n\n"))
	b.WriteString("\n")
	return b.String()
}

// Save writes the rendered document to path.
func (d *MarkdownDocument) Save(path string) error {
	return os.WriteFile(path, []byte(d.String()), 0644)
}
