package face

import (
	"errors"
	"fmt"
)

// Kind is the category of a pipeline failure.
type Kind int

const (
	KindUnknown Kind = iota
	ValidationError
	DetectionError
	ProcessingError
	ModelError
)

// String returns the category name.
func (k Kind) String() string {
	switch k {
	case ValidationError:
		return "validation"
	case DetectionError:
		return "detection"
	case ProcessingError:
		return "processing"
	case ModelError:
		return "model"
	default:
		return "unknown"
	}
}

// CallerError tests if the caller can fix the failure by changing the input.
func (k Kind) CallerError() bool {
	return k == ValidationError || k == DetectionError
}

// Error is a reportable pipeline failure with a stable code.
type Error struct {
	Kind   Kind
	Code   string
	Msg    string
	Detail string
	Err    error
}

var (
	ErrNoFaceDetected         = &Error{Kind: DetectionError, Code: "NoFaceDetected", Msg: "no face detected"}
	ErrFaceTooSmall           = &Error{Kind: DetectionError, Code: "FaceTooSmall", Msg: "face too small"}
	ErrInvalidEmbeddingFormat = &Error{Kind: ValidationError, Code: "InvalidEmbeddingFormat", Msg: "invalid embedding format"}
	ErrInvalidImage           = &Error{Kind: ValidationError, Code: "InvalidImage", Msg: "invalid image"}
	ErrInvalidEmbeddingShape  = &Error{Kind: ProcessingError, Code: "InvalidEmbeddingShape", Msg: "invalid embedding shape"}
	ErrSimilarityUndefined    = &Error{Kind: ProcessingError, Code: "SimilarityUndefined", Msg: "similarity undefined"}
	ErrUnknownSchema          = &Error{Kind: ModelError, Code: "UnknownOutputSchema", Msg: "unknown detector output schema"}
	ErrInference              = &Error{Kind: ModelError, Code: "InferenceFailed", Msg: "inference failed"}
)

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Detail != "" && e.Err != nil:
		return fmt.Sprintf("%s (%s): %s", e.Msg, e.Detail, e.Err)
	case e.Detail != "":
		return fmt.Sprintf("%s (%s)", e.Msg, e.Detail)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s", e.Msg, e.Err)
	default:
		return e.Msg
	}
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches errors by code so that errors.Is works with annotated copies.
func (e *Error) Is(target error) bool {
	var t *Error

	if !errors.As(target, &t) {
		return false
	}

	return e.Code == t.Code
}

// Withf returns a copy with a formatted detail message.
func (e *Error) Withf(format string, args ...interface{}) *Error {
	c := *e
	c.Detail = fmt.Sprintf(format, args...)
	return &c
}

// Wrap returns a copy with the given cause.
func (e *Error) Wrap(err error) *Error {
	c := *e
	c.Err = err
	return &c
}

// KindOf returns the category of err, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error

	if errors.As(err, &e) {
		return e.Kind
	}

	return KindUnknown
}

// CodeOf returns the stable code of err, or an empty string.
func CodeOf(err error) string {
	var e *Error

	if errors.As(err, &e) {
		return e.Code
	}

	return ""
}
