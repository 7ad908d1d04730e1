package document_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"paperquery/internal/document"
	"paperquery/internal/result"
)

func TestPDFExtractor_MissingFile(t *testing.T) {
	e := document.NewPDFExtractor()

	r := e.ExtractPages(context.Background(), filepath.Join(t.TempDir(), "absent.pdf"))
	assert.False(t, r.Success)
	assert.True(t, r.Is(result.ErrFileNotFound))
}
