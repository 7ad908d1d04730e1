// Package document holds the capability interfaces for reading source
// documents, plus the local implementations: a PDF text extractor and an
// image reader.
package document

import (
	"context"

	"paperquery/internal/result"
	"paperquery/internal/text"
)

// TextExtractor pulls per-page text out of a source document.
type TextExtractor interface {
	ExtractPages(ctx context.Context, path string) result.Result[[]text.Page]
}

// PageImager converts a rendered page image into an embeddable data URI.
type PageImager interface {
	DataURI(path string) (string, error)
}
