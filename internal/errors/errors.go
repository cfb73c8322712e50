// internal/errors/errors.go
package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies failures raised inside the transcript pipeline.
type ErrorType string

const (
	ErrorTypeValidation          ErrorType = "validation_error"
	ErrorTypeResolution          ErrorType = "resolution_error"
	ErrorTypeTranscriptsDisabled ErrorType = "transcripts_disabled"
	ErrorTypeNotFound            ErrorType = "not_found"
	ErrorTypeTranslation         ErrorType = "translation_error"
	ErrorTypeAnalysis            ErrorType = "analysis_error"
	ErrorTypeUpstream            ErrorType = "upstream_error"
)

// AppError is the error value passed between components.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
	Code    string
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements error chaining
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError
func NewAppError(errType ErrorType, message string, originalError error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     originalError,
		Code:    generateErrorCode(errType),
	}
}

func NewValidationError(message string, originalError error) *AppError {
	return NewAppError(ErrorTypeValidation, message, originalError)
}

// NewResolutionError is returned when a video reference cannot be turned into a video id.
func NewResolutionError(message string, originalError error) *AppError {
	return NewAppError(ErrorTypeResolution, message, originalError)
}

// NewTranscriptsDisabledError is returned when the caption track list cannot be obtained.
func NewTranscriptsDisabledError(message string, originalError error) *AppError {
	return NewAppError(ErrorTypeTranscriptsDisabled, message, originalError)
}

func NewNotFoundError(message string, originalError error) *AppError {
	return NewAppError(ErrorTypeNotFound, message, originalError)
}

func NewTranslationError(message string, originalError error) *AppError {
	return NewAppError(ErrorTypeTranslation, message, originalError)
}

func NewAnalysisError(message string, originalError error) *AppError {
	return NewAppError(ErrorTypeAnalysis, message, originalError)
}

func NewUpstreamError(message string, originalError error) *AppError {
	return NewAppError(ErrorTypeUpstream, message, originalError)
}

// TypeOf returns the ErrorType of err, or "" when err is not an AppError.
func TypeOf(err error) ErrorType {
	var appError *AppError
	if errors.As(err, &appError) {
		return appError.Type
	}
	return ""
}

func IsValidationError(err error) bool {
	return TypeOf(err) == ErrorTypeValidation
}

func IsResolutionError(err error) bool {
	return TypeOf(err) == ErrorTypeResolution
}

func IsTranscriptsDisabledError(err error) bool {
	return TypeOf(err) == ErrorTypeTranscriptsDisabled
}

func IsNotFoundError(err error) bool {
	return TypeOf(err) == ErrorTypeNotFound
}

// IsTranscriptUnavailable reports whether err means "no usable transcript",
// whatever the underlying cause.
func IsTranscriptUnavailable(err error) bool {
	switch TypeOf(err) {
	case ErrorTypeResolution, ErrorTypeTranscriptsDisabled, ErrorTypeNotFound, ErrorTypeUpstream:
		return true
	}
	return false
}

func generateErrorCode(errType ErrorType) string {
	switch errType {
	case ErrorTypeValidation:
		return "VALIDATION_ERROR"
	case ErrorTypeResolution:
		return "VIDEO_RESOLUTION_FAILED"
	case ErrorTypeTranscriptsDisabled:
		return "TRANSCRIPTS_DISABLED"
	case ErrorTypeNotFound:
		return "TRANSCRIPT_NOT_FOUND"
	case ErrorTypeTranslation:
		return "TRANSLATION_FAILED"
	case ErrorTypeAnalysis:
		return "ANALYSIS_FAILED"
	case ErrorTypeUpstream:
		return "UPSTREAM_ERROR"
	default:
		return "UNKNOWN_ERROR"
	}
}

// WrapError wraps err with message, keeping the type of an existing AppError.
func WrapError(err error, message string, errType ErrorType) error {
	if err == nil {
		return nil
	}

	var appError *AppError
	if errors.As(err, &appError) {
		return &AppError{
			Type:    appError.Type,
			Message: fmt.Sprintf("%s: %s", message, appError.Message),
			Err:     appError.Err,
			Code:    appError.Code,
		}
	}

	return NewAppError(errType, message, err)
}
