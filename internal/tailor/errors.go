package tailor

import "fmt"

// Kind classifies a pipeline failure.
type Kind string

const (
	KindValidation Kind = "validation"
	KindExtraction Kind = "extraction"
	KindModel      Kind = "model_unavailable"
	KindRender     Kind = "render"
	KindInternal   Kind = "internal"
)

// MsgMissingInput is shown when resume or job description is blank.
const MsgMissingInput = "Please provide both resume and job description."

// Error is a pipeline failure with a user-facing message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}
