// Package result carries the outcome of every fallible core operation.
// Pipelines check Success before reading Data; the wrapped error classifies
// the failure so callers can branch with errors.Is.
package result

import "errors"

// Failure kinds. Adapters wrap these so the pipelines never have to inspect
// provider-specific error types.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrTokenLimitExceeded = errors.New("token limit exceeded")
	ErrUpstreamEmbedding  = errors.New("upstream embedding error")
	ErrUpstreamGeneration = errors.New("upstream generation error")
	ErrResponseParse      = errors.New("response parse error")
	ErrStoreWrite         = errors.New("store write error")
	ErrStoreQuery         = errors.New("store query error")
	ErrNoSourceContent    = errors.New("no source content")
	ErrFileNotFound       = errors.New("file not found")
)

type Result[T any] struct {
	Success bool
	Data    T
	Err     error
	Message string
}

func Ok[T any](data T, message string) Result[T] {
	return Result[T]{Success: true, Data: data, Message: message}
}

func Fail[T any](err error, message string) Result[T] {
	return Result[T]{Success: false, Err: err, Message: message}
}

// FailAs re-tags a failed result with a new data type, preserving the error
// and message. Used when a stage propagates an inner failure upward.
func FailAs[T, U any](r Result[T]) Result[U] {
	return Result[U]{Success: false, Err: r.Err, Message: r.Message}
}

// Is reports whether the result failed with the given kind.
func (r Result[T]) Is(kind error) bool {
	return !r.Success && errors.Is(r.Err, kind)
}
