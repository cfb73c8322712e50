package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorMessageAndUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewTranscriptsDisabledError("list transcripts", cause)

	assert.Equal(t, "list transcripts: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "TRANSCRIPTS_DISABLED", err.Code)
}

func TestTypeChecks(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantType    ErrorType
		unavailable bool
	}{
		{"resolution", NewResolutionError("bad url", nil), ErrorTypeResolution, true},
		{"disabled", NewTranscriptsDisabledError("disabled", nil), ErrorTypeTranscriptsDisabled, true},
		{"not found", NewNotFoundError("no en/hi", nil), ErrorTypeNotFound, true},
		{"upstream", NewUpstreamError("timedtext", nil), ErrorTypeUpstream, true},
		{"validation", NewValidationError("missing", nil), ErrorTypeValidation, false},
		{"plain", errors.New("boom"), "", false},
		{"wrapped with fmt", fmt.Errorf("fetch: %w", NewNotFoundError("x", nil)), ErrorTypeNotFound, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, TypeOf(tt.err))
			assert.Equal(t, tt.unavailable, IsTranscriptUnavailable(tt.err))
		})
	}
}

func TestWrapErrorKeepsType(t *testing.T) {
	assert.Nil(t, WrapError(nil, "ctx", ErrorTypeUpstream))

	wrapped := WrapError(NewResolutionError("bad id", nil), "fetch", ErrorTypeUpstream)
	assert.True(t, IsResolutionError(wrapped))
	assert.Equal(t, "fetch: bad id", wrapped.Error())

	plain := WrapError(errors.New("eof"), "read", ErrorTypeUpstream)
	assert.Equal(t, ErrorTypeUpstream, TypeOf(plain))
}
