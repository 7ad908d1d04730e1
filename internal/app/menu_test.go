package app

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun_ExitChoice(t *testing.T) {
	var out bytes.Buffer
	a := &App{}

	a.Run(context.Background(), strings.NewReader("0\n"), &out)

	assert.Contains(t, out.String(), "Options:")
	assert.Contains(t, out.String(), "Exiting...")
}

func TestRun_InvalidChoiceThenEOF(t *testing.T) {
	var out bytes.Buffer
	a := &App{}

	a.Run(context.Background(), strings.NewReader("9\n"), &out)

	assert.Contains(t, out.String(), "Invalid choice. Try again.")
}

func TestRun_EmptyQuestionIsIgnored(t *testing.T) {
	var out bytes.Buffer
	a := &App{}

	// Empty question must not reach the query pipeline (which is nil here).
	a.Run(context.Background(), strings.NewReader("1\n\n0\n"), &out)

	assert.Contains(t, out.String(), "Enter your question:")
	assert.Contains(t, out.String(), "Exiting...")
}
