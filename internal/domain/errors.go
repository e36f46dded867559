package domain

import (
	"errors"
	"fmt"
)

// ErrorCode enumerates every failure the pipeline can surface to callers.
type ErrorCode string

const (
	ErrRateLimitExceeded       ErrorCode = "RATE_LIMIT_EXCEEDED"
	ErrSearchFailed            ErrorCode = "EXA_SEARCH_FAILED"
	ErrNoTopicsFound           ErrorCode = "NO_TOPICS_FOUND"
	ErrContentGenerationFailed ErrorCode = "CONTENT_GENERATION_FAILED"
	ErrSaveFailed              ErrorCode = "SAVE_FAILED"
	ErrUnauthorized            ErrorCode = "UNAUTHORIZED"
)

// GenerationError is the pipeline's structured failure value. The coordinator
// returns it instead of letting arbitrary errors cross the boundary.
type GenerationError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	Err         error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// NewGenerationError builds a failure value for the given code.
func NewGenerationError(code ErrorCode, message string, err error, suggestions ...string) *GenerationError {
	return &GenerationError{Code: code, Message: message, Err: err, Suggestions: suggestions}
}

// AsGenerationError extracts a GenerationError from an error chain, wrapping
// unknown errors as CONTENT_GENERATION_FAILED so callers always see the
// closed code set.
func AsGenerationError(err error) *GenerationError {
	if err == nil {
		return nil
	}
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr
	}
	return &GenerationError{Code: ErrContentGenerationFailed, Message: err.Error(), Err: err}
}
