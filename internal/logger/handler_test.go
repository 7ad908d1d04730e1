package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paperquery/internal/logger"
)

func TestContextHandler_AddsOperation(t *testing.T) {
	var buf bytes.Buffer
	h := logger.NewContextHandler(slog.NewJSONHandler(&buf, nil))
	log := slog.New(h)

	ctx := logger.WithOperation(context.Background(), "embed-chunk")
	log.InfoContext(ctx, "attempt failed")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "embed-chunk", record["operation"])
	assert.Equal(t, "attempt failed", record["msg"])
}

func TestContextHandler_NoOperation(t *testing.T) {
	var buf bytes.Buffer
	h := logger.NewContextHandler(slog.NewJSONHandler(&buf, nil))
	log := slog.New(h)

	log.InfoContext(context.Background(), "plain")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	_, present := record["operation"]
	assert.False(t, present)
}

func TestOperation_Accessor(t *testing.T) {
	ctx := logger.WithOperation(context.Background(), "query")
	assert.Equal(t, "query", logger.Operation(ctx))
	assert.Equal(t, "", logger.Operation(context.Background()))
}
