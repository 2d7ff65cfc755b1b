package domain

import (
	"errors"
	"fmt"
)

// ErrConversionFailed matches every *ConversionError via errors.Is.
var ErrConversionFailed = errors.New("conversion failed")

// ErrNoCoordinates is returned when the line carries no coordinate triples.
var ErrNoCoordinates = errors.New("no coordinates")

// Conversion stages reported by ConversionError.
const (
	StageDecode  = "decode"
	StageExtract = "extract"
	StageCompose = "compose"
	StageEncode  = "encode"
	StagePanic   = "panic"
)

// ConversionError is the single failure kind of a profile conversion.
// The cause is kept for logs only; users get a generic message.
type ConversionError struct {
	Stage string
	Err   error
}

// NewConversionError wraps err as a failure of the given stage.
func NewConversionError(stage string, err error) *ConversionError {
	return &ConversionError{Stage: stage, Err: err}
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("conversion failed at %s: %v", e.Stage, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// Is reports true for ErrConversionFailed.
func (e *ConversionError) Is(target error) bool {
	return target == ErrConversionFailed
}
