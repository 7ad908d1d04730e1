package document

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/ledongthuc/pdf"

	"paperquery/internal/result"
	"paperquery/internal/text"
)

// PDFExtractor extracts plain text page by page from a local PDF file.
type PDFExtractor struct{}

func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

func (e *PDFExtractor) ExtractPages(ctx context.Context, path string) result.Result[[]text.Page] {
	f, reader, err := pdf.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return result.Fail[[]text.Page](
				fmt.Errorf("%w: %s", result.ErrFileNotFound, path),
				"pdf loading failed")
		}
		return result.Fail[[]text.Page](
			fmt.Errorf("open pdf %s: %w", path, err),
			"pdf loading failed")
	}
	defer f.Close()

	total := reader.NumPage()
	pages := make([]text.Page, 0, total)
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page is not fatal for the document.
			slog.WarnContext(ctx, "skipping unreadable page", "path", path, "page", i, "error", err)
			continue
		}
		pages = append(pages, text.Page{Number: i, Text: content})
	}

	if len(pages) == 0 {
		return result.Fail[[]text.Page](
			fmt.Errorf("%w: %s contains no readable pages", result.ErrNoSourceContent, path),
			"pdf contains no readable content")
	}

	return result.Ok(pages, fmt.Sprintf("extracted %d pages", len(pages)))
}
