package prediction

import (
	"errors"
	"fmt"
)

// Stage identifies where a request failed.
type Stage string

const (
	StageDecode    Stage = "decode"
	StageTransform Stage = "transform"
	StageModel     Stage = "model"
	StageInverse   Stage = "inverse"
)

// RequestError is the single error kind surfaced to callers. Every failure on
// the request path is wrapped into one.
type RequestError struct {
	Stage Stage
	Err   error
}

func (e *RequestError) Error() string {
	if e.Stage == StageDecode {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// NewRequestError wraps err, keeping an existing RequestError as is.
func NewRequestError(stage Stage, err error) *RequestError {
	var re *RequestError
	if errors.As(err, &re) {
		return re
	}
	return &RequestError{Stage: stage, Err: err}
}

// IsRequestError reports whether err should be answered with a client error.
func IsRequestError(err error) bool {
	var re *RequestError
	return errors.As(err, &re)
}
