package provider

import "context"

// Options tune a single completion call.
type Options struct {
	// Model overrides the provider's default model.
	Model string
	// JSONMode asks the backend for a JSON-only response.
	JSONMode bool
	// Temperature <= 0 means provider default.
	Temperature float32
	// MaxTokens <= 0 means provider default.
	MaxTokens int
}

const (
	defaultTemperature = float32(0.7)
	defaultMaxTokens   = 4096
)

// Provider is a single text-generation backend. Implementations make exactly
// one attempt per call; retry policy lives in the Gateway.
type Provider interface {
	Name() string
	Complete(ctx context.Context, systemPrompt, userPrompt string, opts *Options) (string, error)
}

// Outcome tags the result of a logical completion request.
type Outcome string

const (
	OutcomeSuccess       Outcome = "success"
	OutcomeQuotaExceeded Outcome = "quota_exceeded"
	OutcomeTransient     Outcome = "transient_error"
	OutcomeFatal         Outcome = "fatal_error"
)

// Result is the gateway's answer to one logical request. Text is set only
// when Outcome is OutcomeSuccess.
type Result struct {
	Text     string
	Provider string
	Model    string
	Outcome  Outcome
}

func (o *Options) temperature() float32 {
	if o != nil && o.Temperature > 0 {
		return o.Temperature
	}
	return defaultTemperature
}

func (o *Options) maxTokens() int {
	if o != nil && o.MaxTokens > 0 {
		return o.MaxTokens
	}
	return defaultMaxTokens
}

func (o *Options) jsonMode() bool {
	return o != nil && o.JSONMode
}

func (o *Options) model(fallback string) string {
	if o != nil && o.Model != "" {
		return o.Model
	}
	return fallback
}
