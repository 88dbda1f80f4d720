package newsarchive

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ParagraphRule re-segments flattened article text into paragraphs.
//
// Text is split into sentences at a terminator immediately followed by
// whitespace; anything after the last such boundary is a final sentence.
// A rule either groups every GroupSize sentences, or, when GroupSize is
// zero, emits a paragraph at a sentence ending in a terminator once the
// paragraph holds at least MinSentences sentences and at least MinSentences
// sentences remain after it.
type ParagraphRule struct {
	Name         string
	Terminators  string
	MinSentences int
	GroupSize    int
}

// Named paragraph rules.
var (
	// FlushRule is used for document export. Arabic question marks end a
	// sentence and no paragraph is a lone trailing sentence.
	FlushRule = ParagraphRule{Name: "flush", Terminators: ".!؟", MinSentences: 2}

	// GroupRule is used for interactive display and groups every four
	// sentences.
	GroupRule = ParagraphRule{Name: "group", Terminators: ".!?", GroupSize: 4}
)

// ParagraphRules lists the named rules.
var ParagraphRules = []ParagraphRule{FlushRule, GroupRule}

// LookupParagraphRule returns the rule with the given name.
func LookupParagraphRule(name string) (ParagraphRule, error) {
	for _, r := range ParagraphRules {
		if r.Name == name {
			return r, nil
		}
	}
	return ParagraphRule{}, Errorf(EINVALID, "unknown paragraph rule %q", name)
}

var whitespaceRun = regexp.MustCompile(`[\s\p{Zs}]+`)

// CollapseWhitespace replaces every whitespace run with one space and trims.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// Sentences splits text at terminators followed by whitespace.
func (r ParagraphRule) Sentences(text string) []string {
	if r.Terminators == "" {
		if s := strings.TrimSpace(text); s != "" {
			return []string{s}
		}
		return nil
	}
	boundary := regexp.MustCompile(`[` + regexp.QuoteMeta(r.Terminators) + `][\s\p{Zs}]+`)

	var sentences []string
	start := 0
	for _, loc := range boundary.FindAllStringIndex(text, -1) {
		// The terminator stays with its sentence; the whitespace is dropped.
		end := loc[0] + len(strings.TrimRightFunc(text[loc[0]:loc[1]], unicode.IsSpace))
		if s := strings.TrimSpace(text[start:end]); s != "" {
			sentences = append(sentences, s)
		}
		start = loc[1]
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// Paragraphs returns the paragraphs of text under the rule. Text without any
// boundary is a single paragraph.
func (r ParagraphRule) Paragraphs(text string) []string {
	sentences := r.Sentences(text)
	if len(sentences) == 0 {
		return nil
	}
	if r.GroupSize > 0 {
		return r.group(sentences)
	}
	return r.flush(sentences)
}

// Reconstruct returns the paragraphs of text joined by a blank line.
func (r ParagraphRule) Reconstruct(text string) string {
	return strings.Join(r.Paragraphs(text), "\n\n")
}

func (r ParagraphRule) group(sentences []string) []string {
	var paragraphs []string
	for i := 0; i < len(sentences); i += r.GroupSize {
		end := min(i+r.GroupSize, len(sentences))
		paragraphs = append(paragraphs, strings.Join(sentences[i:end], " "))
	}
	return paragraphs
}

func (r ParagraphRule) flush(sentences []string) []string {
	minimum := max(r.MinSentences, 1)

	var paragraphs []string
	var buf []string
	for i, s := range sentences {
		buf = append(buf, s)
		remaining := len(sentences) - i - 1
		if len(buf) >= minimum && remaining >= minimum && r.terminated(s) {
			paragraphs = append(paragraphs, strings.Join(buf, " "))
			buf = nil
		}
	}
	if len(buf) > 0 {
		paragraphs = append(paragraphs, strings.Join(buf, " "))
	}
	return paragraphs
}

func (r ParagraphRule) terminated(sentence string) bool {
	last, _ := utf8.DecodeLastRuneInString(sentence)
	return strings.ContainsRune(r.Terminators, last)
}
