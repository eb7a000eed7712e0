package editorial

import (
	"context"
	"fmt"

	"github.com/hotker/blog-collector-go/internal/config"
	"github.com/hotker/blog-collector-go/internal/domain"
	"github.com/hotker/blog-collector-go/internal/persona"
	"github.com/hotker/blog-collector-go/internal/prompt"
	"github.com/hotker/blog-collector-go/internal/provider"
	pkgerrors "github.com/hotker/blog-collector-go/pkg/errors"
	"go.uber.org/zap"
)

// Prompt budgets, in runes of source content per stage.
const (
	triageExcerptLen    = 1000
	critiqueExcerptLen  = 3000
	synthesisContentLen = 6000
)

// Completer is the slice of the provider gateway the orchestrator needs.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, opts *provider.Options) (provider.Result, error)
}

// Orchestrator drives one article through triage, critique and synthesis.
// State moves Ingested -> Triaged -> Critiqued -> Synthesized -> Done, with
// Skipped as the terminal state for any unrecoverable provider or validation
// failure.
type Orchestrator struct {
	gateway  Completer
	registry *persona.Registry
	cfg      config.EditorialConfig
	logger   *zap.Logger
}

func NewOrchestrator(gateway Completer, registry *persona.Registry, cfg config.EditorialConfig, logger *zap.Logger) *Orchestrator {
	if cfg.DefaultPersona == "" {
		cfg.DefaultPersona = persona.DefaultPersonaID
	}
	return &Orchestrator{
		gateway:  gateway,
		registry: registry,
		cfg:      cfg,
		logger:   logger,
	}
}

// Rewrite runs the editorial pipeline for a single article. The returned
// state is StateDone on success and StateSkipped otherwise; a skipped article
// must never be published.
func (o *Orchestrator) Rewrite(ctx context.Context, article domain.Article) (*domain.RewriteResult, domain.ArticleState, error) {
	log := o.logger.With(zap.String("url", article.URL))
	state := domain.StateIngested

	selected, err := o.triage(ctx, article, log)
	if err != nil {
		return nil, domain.StateSkipped, fmt.Errorf("triage: %w", err)
	}
	state = domain.StateTriaged
	log.Info("Persona selected",
		zap.String("state", string(state)),
		zap.String("persona", selected.ID))

	critique, err := o.critique(ctx, article, selected, log)
	if err != nil {
		return nil, domain.StateSkipped, fmt.Errorf("critique: %w", err)
	}
	state = domain.StateCritiqued
	log.Info("Critique generated",
		zap.String("state", string(state)),
		zap.Int("insights", len(critique)))

	synth, err := o.synthesize(ctx, article, selected, critique, log)
	if err != nil {
		return nil, domain.StateSkipped, fmt.Errorf("synthesis: %w", err)
	}
	state = domain.StateSynthesized

	result := &domain.RewriteResult{
		PersonaID:  selected.ID,
		Title:      synth.Title,
		Summary:    synth.Summary,
		Tags:       synth.Tags,
		Categories: synth.Categories,
		Content:    synth.Content,
		Critique:   critique,
		WordCount:  domain.CountWords(synth.Content),
	}

	state = domain.StateDone
	log.Info("Rewrite finished",
		zap.String("state", string(state)),
		zap.String("persona", result.PersonaID),
		zap.Int("word_count", result.WordCount))

	return result, state, nil
}

// triage selects the persona. When auto-triage is disabled the configured
// default is used without a provider call. A response naming an unregistered
// persona falls back to the default exactly once; triage is never re-asked.
func (o *Orchestrator) triage(ctx context.Context, article domain.Article, log *zap.Logger) (*domain.Persona, error) {
	if !o.cfg.EnableAutoTriage {
		return o.defaultPersona()
	}

	userPrompt := prompt.BuildTriagePrompt(prompt.TriagePromptVars{
		Title:    article.Title,
		Excerpt:  domain.Excerpt(article.Content, triageExcerptLen),
		Personas: o.registry.List(),
	})

	res, err := o.gateway.Complete(ctx, prompt.TriageSystemPrompt, userPrompt, &provider.Options{JSONMode: true})
	if err != nil {
		return nil, err
	}

	var parsed prompt.TriageResponse
	if err := prompt.ExtractJSON(res.Text, &parsed); err != nil {
		log.Warn("Triage response unparsable, using default persona", zap.Error(err))
		return o.defaultPersona()
	}

	if !o.registry.Has(parsed.Persona) {
		log.Warn("Triage returned unregistered persona, using default",
			zap.String("persona", parsed.Persona))
		return o.defaultPersona()
	}

	return o.registry.Get(parsed.Persona)
}

// critique asks for 3-5 analytical statements. A thin parse triggers exactly
// one strict re-extraction; after that the article proceeds with whatever was
// parsed. Critique degrades, it never gates.
func (o *Orchestrator) critique(ctx context.Context, article domain.Article, p *domain.Persona, log *zap.Logger) ([]string, error) {
	const minInsights = 3

	vars := prompt.CritiquePromptVars{
		Title:         article.Title,
		Excerpt:       domain.Excerpt(article.Content, critiqueExcerptLen),
		PersonaName:   p.Name,
		PersonaPrompt: p.SystemPrompt,
	}

	res, err := o.gateway.Complete(ctx, prompt.CritiqueSystemPrompt, prompt.BuildCritiquePrompt(vars), &provider.Options{JSONMode: true})
	if err != nil {
		return nil, err
	}

	insights := prompt.ParseInsights(res.Text)
	if len(insights) >= minInsights {
		return insights, nil
	}

	log.Warn("Critique parsed thin, retrying with strict extraction",
		zap.Int("insights", len(insights)))

	vars.Strict = true
	res, err = o.gateway.Complete(ctx, prompt.CritiqueSystemPrompt, prompt.BuildCritiquePrompt(vars), &provider.Options{JSONMode: true})
	if err != nil {
		return nil, err
	}

	retried := prompt.ParseInsights(res.Text)
	if len(retried) > len(insights) {
		insights = retried
	}

	if len(insights) == 0 {
		log.Warn("No critique statements parsed, proceeding without critique")
	}

	return insights, nil
}

// synthesize produces the rewritten article. A malformed rewrite must never
// be published, so validation failures here are hard errors.
func (o *Orchestrator) synthesize(ctx context.Context, article domain.Article, p *domain.Persona, critique []string, log *zap.Logger) (*prompt.SynthesisResponse, error) {
	userPrompt := prompt.BuildSynthesisPrompt(prompt.SynthesisPromptVars{
		Title:          article.Title,
		Content:        domain.Excerpt(article.Content, synthesisContentLen),
		SourceName:     article.SourceName,
		SourceURL:      article.URL,
		Persona:        p,
		Critique:       critique,
		TargetLanguage: o.cfg.TargetLanguage,
	})

	res, err := o.gateway.Complete(ctx, prompt.SynthesisSystemPrompt(p), userPrompt, &provider.Options{JSONMode: true})
	if err != nil {
		return nil, err
	}

	var parsed prompt.SynthesisResponse
	if err := prompt.ExtractJSON(res.Text, &parsed); err != nil {
		return nil, pkgerrors.NewValidationError("synthesis response unparsable", "synthesis", "content", err)
	}

	if parsed.Title == "" {
		return nil, pkgerrors.NewValidationError("synthesis response missing title", "synthesis", "title", nil)
	}
	if parsed.Content == "" {
		return nil, pkgerrors.NewValidationError("synthesis response missing content", "synthesis", "content", nil)
	}

	return &parsed, nil
}

func (o *Orchestrator) defaultPersona() (*domain.Persona, error) {
	p, err := o.registry.Get(o.cfg.DefaultPersona)
	if err != nil {
		// Misconfigured default: fall back to the registry's first entry so
		// a typo in an env var cannot stall the whole run.
		list := o.registry.List()
		if len(list) == 0 {
			return nil, fmt.Errorf("persona registry is empty")
		}
		return list[0], nil
	}
	return p, nil
}
