package text

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"paperquery/internal/result"
)

// Chunk is the unit of embedding and retrieval: a bounded span of page text
// with stable identifiers. Immutable once produced.
type Chunk struct {
	ID          string
	PageNumber  int
	ChunkNumber int
	Content     string
	Source      string
}

// Page is one extracted PDF page. Numbers are 1-based.
type Page struct {
	Number int
	Text   string
}

type Chunker struct {
	chunkSize    int
	chunkOverlap int
}

func NewChunker(chunkSize, chunkOverlap int) *Chunker {
	return &Chunker{chunkSize: chunkSize, chunkOverlap: chunkOverlap}
}

var (
	hyphenBreakRe = regexp.MustCompile(`(\w+)-\s*\n\s*(\w+)`)
	pageNumRe     = regexp.MustCompile(`(?m)^\d+\s*$`)
	newlineRunRe  = regexp.MustCompile("\n{3,}")
	referencesRe  = regexp.MustCompile(`(?i)references`)
	spaceRunRe    = regexp.MustCompile(` +`)
)

// Ordered by preference: paragraph break, line break, sentence end, space.
var separators = []string{"\n\n", "\n", ". ", " "}

// Clean normalizes raw page text extracted from a PDF. In order: rejoin
// hyphen-broken words, strip lone page-number lines, collapse single
// newlines into spaces (blank-line paragraph breaks survive, longer newline
// runs collapse to a space), truncate everything from "REFERENCES" onward,
// collapse space runs, trim. Idempotent.
func (c *Chunker) Clean(raw string) result.Result[string] {
	text := hyphenBreakRe.ReplaceAllString(raw, "$1$2")
	text = pageNumRe.ReplaceAllString(text, "")
	text = newlineRunRe.ReplaceAllString(text, " ")

	// A lone newline becomes a space; "\n\n" is a paragraph break and stays.
	text = strings.ReplaceAll(text, "\n\n", "\x00")
	text = strings.ReplaceAll(text, "\n", " ")
	text = strings.ReplaceAll(text, "\x00", "\n\n")

	if loc := referencesRe.FindStringIndex(text); loc != nil {
		text = text[:loc[0]]
	}

	text = spaceRunRe.ReplaceAllString(text, " ")

	return result.Ok(strings.TrimSpace(text), "text cleaned")
}

// Split turns cleaned pages into overlapping chunks. Chunk numbers are
// 1-based in document order; chunks never span a page boundary. A source
// that yields no pages, or whose pages are all empty, is a fatal failure.
func (c *Chunker) Split(source string, pages []Page) result.Result[[]Chunk] {
	if len(pages) == 0 {
		return result.Fail[[]Chunk](
			fmt.Errorf("%w: document has no readable pages", result.ErrNoSourceContent),
			"nothing to chunk")
	}

	var chunks []Chunk
	num := 0
	for _, page := range pages {
		if strings.TrimSpace(page.Text) == "" {
			continue
		}
		for _, content := range c.splitPage(page.Text) {
			num++
			chunks = append(chunks, Chunk{
				ID:          fmt.Sprintf("%s:%d:%d", source, page.Number, num),
				PageNumber:  page.Number,
				ChunkNumber: num,
				Content:     content,
				Source:      source,
			})
		}
	}

	if len(chunks) == 0 {
		return result.Fail[[]Chunk](
			fmt.Errorf("%w: all pages empty after cleaning", result.ErrNoSourceContent),
			"nothing to chunk")
	}

	return result.Ok(chunks, fmt.Sprintf("produced %d chunks", len(chunks)))
}

// splitPage atomizes page text into pieces no larger than chunkSize minus
// the overlap budget, then packs pieces into chunks, carrying the tail of
// each emitted chunk into the next so adjacent chunks share context.
func (c *Chunker) splitPage(text string) []string {
	maxPiece := c.chunkSize - c.chunkOverlap
	if maxPiece <= 0 {
		maxPiece = c.chunkSize
	}
	pieces := atomize(text, separators, maxPiece)

	var out []string
	var b strings.Builder
	carried := 0
	for _, piece := range pieces {
		if b.Len() > 0 && b.Len()+len(piece) > c.chunkSize {
			chunk := b.String()
			out = append(out, chunk)
			b.Reset()
			carried = 0
			if c.chunkOverlap > 0 {
				tail := lastChars(chunk, c.chunkOverlap)
				b.WriteString(tail)
				carried = len(tail)
			}
		}
		b.WriteString(piece)
	}
	// Emit the remainder only if it holds more than the carried overlap.
	if b.Len() > carried {
		out = append(out, b.String())
	}
	return out
}

// atomize splits text into pieces of at most max bytes, preferring the
// earliest separator in seps that applies; oversize pieces recurse with the
// remaining separators, falling back to a rune-aware hard cut.
func atomize(text string, seps []string, max int) []string {
	if len(text) <= max {
		return []string{text}
	}
	if len(seps) == 0 {
		var parts []string
		for len(text) > max {
			cut := max
			for cut > 0 && !utf8.RuneStart(text[cut]) {
				cut--
			}
			parts = append(parts, text[:cut])
			text = text[cut:]
		}
		return append(parts, text)
	}

	sep, rest := seps[0], seps[1:]
	if !strings.Contains(text, sep) {
		return atomize(text, rest, max)
	}

	var out []string
	for _, part := range strings.SplitAfter(text, sep) {
		if part == "" {
			continue
		}
		if len(part) <= max {
			out = append(out, part)
		} else {
			out = append(out, atomize(part, rest, max)...)
		}
	}
	return out
}

// lastChars returns at least the final n bytes of s without splitting a rune.
func lastChars(s string, n int) string {
	if len(s) <= n {
		return s
	}
	i := len(s) - n
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return s[i:]
}
