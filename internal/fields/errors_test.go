package fields

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCategories(t *testing.T) {
	tests := []struct {
		name        string
		err         *Error
		sentinel    *Error
		recoverable bool
	}{
		{
			name:        "document_open_is_fatal",
			err:         NewDocumentOpenError(errors.New("corrupt header")),
			sentinel:    ErrDocumentOpen,
			recoverable: false,
		},
		{
			name:        "annotation_processing_is_recoverable",
			err:         NewAnnotationError(4, errors.New("bad rect")),
			sentinel:    ErrAnnotation,
			recoverable: true,
		},
		{
			name:        "field_match_is_recoverable",
			err:         NewFieldMatchError("Ghost"),
			sentinel:    ErrFieldMatch,
			recoverable: true,
		},
		{
			name:        "serialization_is_fatal",
			err:         NewSerializationError("Name", errors.New("write failed")),
			sentinel:    ErrSerialization,
			recoverable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.sentinel)
			assert.Equal(t, tt.recoverable, tt.err.Category.Recoverable())
		})
	}
}

func TestError_MessageCarriesContext(t *testing.T) {
	err := NewSerializationError("Shipping Method", errors.New("stream truncated"))
	msg := err.Error()
	assert.Contains(t, msg, "SERIALIZATION")
	assert.Contains(t, msg, `"Shipping Method"`)
	assert.Contains(t, msg, "stream truncated")

	pageErr := NewAnnotationError(7, errors.New("bad dict"))
	assert.Contains(t, pageErr.Error(), "page 7")
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NewDocumentOpenError(cause)
	assert.ErrorIs(t, err, cause)

	wrapped := fmt.Errorf("opening session: %w", err)
	assert.ErrorIs(t, wrapped, ErrDocumentOpen)
}
