package provider

import (
	"context"

	pkgerrors "github.com/hotker/blog-collector-go/pkg/errors"
	"go.uber.org/zap"
)

// Gateway fans a logical completion request across an ordered list of
// backends. Each backend gets exactly one attempt: quota and transient
// failures advance to the next provider, a fatal classification stops the
// chain immediately. There is no backoff against the same provider because
// external quota windows reset in hours, not seconds.
type Gateway struct {
	providers []Provider
	logger    *zap.Logger
}

// NewGateway builds a gateway from the fallback order. Nil entries are
// dropped so optional backends can be passed unconditionally.
func NewGateway(logger *zap.Logger, providers ...Provider) *Gateway {
	filtered := make([]Provider, 0, len(providers))
	for _, p := range providers {
		if p == nil {
			continue
		}
		filtered = append(filtered, p)
	}
	return &Gateway{
		providers: filtered,
		logger:    logger,
	}
}

// Providers returns the configured fallback order, primary first.
func (g *Gateway) Providers() []Provider {
	return g.providers
}

// Complete runs one logical request through the fallback chain.
func (g *Gateway) Complete(ctx context.Context, systemPrompt, userPrompt string, opts *Options) (Result, error) {
	if len(g.providers) == 0 {
		err := pkgerrors.NewProviderError("no providers configured", "", pkgerrors.KindFatal, nil)
		return Result{Outcome: OutcomeFatal}, err
	}

	var lastErr *pkgerrors.ProviderError

	for i, p := range g.providers {
		text, err := p.Complete(ctx, systemPrompt, userPrompt, opts)
		if err == nil {
			if i > 0 {
				g.logger.Info("Completion served by fallback provider",
					zap.String("provider", p.Name()),
					zap.Int("position", i))
			}
			return Result{
				Text:     text,
				Provider: p.Name(),
				Model:    opts.model(""),
				Outcome:  OutcomeSuccess,
			}, nil
		}

		lastErr = Classify(p.Name(), err)
		g.logger.Warn("Provider call failed",
			zap.String("provider", p.Name()),
			zap.String("kind", string(lastErr.Kind)),
			zap.Error(err),
		)

		if !lastErr.Retriable() {
			return Result{Provider: p.Name(), Outcome: OutcomeFatal}, lastErr
		}
	}

	// Fallback order exhausted. The caller sees a fatal outcome even when
	// the last classification was retriable; there is nothing left to try.
	final := pkgerrors.NewProviderError(
		"all providers exhausted", lastErr.Provider, pkgerrors.KindFatal, lastErr)
	return Result{Provider: lastErr.Provider, Outcome: OutcomeFatal}, final
}
