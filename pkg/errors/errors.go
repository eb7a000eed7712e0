package errors

import "fmt"

// Error codes
const (
	CodePipeline   = "PIPELINE_ERROR"
	CodeProvider   = "PROVIDER_ERROR"
	CodeValidation = "VALIDATION_ERROR"
	CodePublish    = "PUBLISH_ERROR"
	CodeCollection = "COLLECTION_ERROR"
)

// ProviderKind classifies a failed text-generation call. It decides whether
// the gateway moves on to the next configured provider.
type ProviderKind string

const (
	KindQuotaExceeded ProviderKind = "quota_exceeded"
	KindTransient     ProviderKind = "transient_error"
	KindFatal         ProviderKind = "fatal_error"
)

type PipelineError struct {
	Message string
	Code    string
	Context map[string]any
	Cause   error
}

func (e *PipelineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *PipelineError) Unwrap() error {
	return e.Cause
}

func NewPipelineError(message, code string, context map[string]any) *PipelineError {
	return &PipelineError{
		Message: message,
		Code:    code,
		Context: context,
	}
}

func (e *PipelineError) WithCause(cause error) *PipelineError {
	e.Cause = cause
	return e
}

type ProviderError struct {
	*PipelineError
	Provider string
	Kind     ProviderKind
}

func NewProviderError(message, provider string, kind ProviderKind, cause error) *ProviderError {
	return &ProviderError{
		PipelineError: &PipelineError{
			Message: message,
			Code:    CodeProvider,
			Context: map[string]any{
				"provider": provider,
				"kind":     string(kind),
			},
			Cause: cause,
		},
		Provider: provider,
		Kind:     kind,
	}
}

// Retriable reports whether the failure should trigger the next provider in
// the fallback order rather than abort the logical request.
func (e *ProviderError) Retriable() bool {
	return e.Kind == KindQuotaExceeded || e.Kind == KindTransient
}

type ValidationError struct {
	*PipelineError
	Stage string
	Field string
}

func NewValidationError(message, stage, field string, cause error) *ValidationError {
	return &ValidationError{
		PipelineError: &PipelineError{
			Message: message,
			Code:    CodeValidation,
			Context: map[string]any{
				"stage": stage,
				"field": field,
			},
			Cause: cause,
		},
		Stage: stage,
		Field: field,
	}
}

type PublishError struct {
	*PipelineError
	Path string
}

func NewPublishError(message, path string, cause error) *PublishError {
	return &PublishError{
		PipelineError: &PipelineError{
			Message: message,
			Code:    CodePublish,
			Context: map[string]any{
				"path": path,
			},
			Cause: cause,
		},
		Path: path,
	}
}

type CollectionError struct {
	*PipelineError
	Source string
}

func NewCollectionError(message, source string, cause error) *CollectionError {
	return &CollectionError{
		PipelineError: &PipelineError{
			Message: message,
			Code:    CodeCollection,
			Context: map[string]any{
				"source": source,
			},
			Cause: cause,
		},
		Source: source,
	}
}
