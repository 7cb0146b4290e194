package fields

import "fmt"

// ErrorCategory classifies engine failures by how callers must react.
type ErrorCategory int

const (
	// CategoryDocumentOpen is fatal: the document could not be loaded at
	// all and the whole operation aborts.
	CategoryDocumentOpen ErrorCategory = iota

	// CategoryAnnotationProcessing is recoverable: the offending annotation
	// is skipped and extraction continues.
	CategoryAnnotationProcessing

	// CategoryFieldMatch is recoverable: the unmatched field is skipped and
	// export continues.
	CategoryFieldMatch

	// CategorySerialization is fatal during export: the partially built
	// output is discarded.
	CategorySerialization
)

// String returns the category's wire name.
func (c ErrorCategory) String() string {
	switch c {
	case CategoryDocumentOpen:
		return "DOCUMENT_OPEN"
	case CategoryAnnotationProcessing:
		return "ANNOTATION_PROCESSING"
	case CategoryFieldMatch:
		return "FIELD_MATCH"
	case CategorySerialization:
		return "SERIALIZATION"
	default:
		return "UNKNOWN"
	}
}

// Recoverable reports whether callers may absorb the error and continue.
func (c ErrorCategory) Recoverable() bool {
	return c == CategoryAnnotationProcessing || c == CategoryFieldMatch
}

// Error is a categorized engine error. Field and Page carry diagnostic
// context when the failure happened while processing a specific field.
type Error struct {
	Category ErrorCategory
	Message  string
	Field    string
	Page     int
	Err      error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Category, e.Message)
	if e.Field != "" {
		msg += fmt.Sprintf(" (field %q)", e.Field)
	}
	if e.Page > 0 {
		msg += fmt.Sprintf(" (page %d)", e.Page)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches errors by category so callers can test with errors.Is against
// the sentinel constructors below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Category == e.Category && (t.Message == "" || t.Message == e.Message)
}

// Sentinels for errors.Is checks.
var (
	ErrDocumentOpen  = &Error{Category: CategoryDocumentOpen}
	ErrAnnotation    = &Error{Category: CategoryAnnotationProcessing}
	ErrFieldMatch    = &Error{Category: CategoryFieldMatch}
	ErrSerialization = &Error{Category: CategorySerialization}
)

// NewDocumentOpenError wraps a document load failure.
func NewDocumentOpenError(err error) *Error {
	return &Error{Category: CategoryDocumentOpen, Message: "failed to open document", Err: err}
}

// NewAnnotationError wraps a per-annotation failure with its page.
func NewAnnotationError(page int, err error) *Error {
	return &Error{Category: CategoryAnnotationProcessing, Message: "failed to process annotation", Page: page, Err: err}
}

// NewFieldMatchError records a field that matched no mutable field object.
func NewFieldMatchError(fieldName string) *Error {
	return &Error{Category: CategoryFieldMatch, Message: "no matching document field", Field: fieldName}
}

// NewSerializationError wraps a save failure, naming the field being
// processed when it happened mid-loop.
func NewSerializationError(fieldName string, err error) *Error {
	return &Error{Category: CategorySerialization, Message: "failed to serialize document", Field: fieldName, Err: err}
}
