package pipeline

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/hotker/blog-collector-go/internal/domain"
	"github.com/hotker/blog-collector-go/internal/ledger"
	"github.com/hotker/blog-collector-go/internal/persona"
	"github.com/hotker/blog-collector-go/internal/publisher"
	"go.uber.org/zap"
)

// ArticleCollector yields the run's candidate articles.
type ArticleCollector interface {
	CollectAll(ctx context.Context, maxAge time.Duration, limit int) ([]domain.Article, error)
}

// Rewriter runs the editorial pipeline for one article.
type Rewriter interface {
	Rewrite(ctx context.Context, article domain.Article) (*domain.RewriteResult, domain.ArticleState, error)
}

// CoverResolver derives a cover URL; it never fails, only degrades.
type CoverResolver interface {
	Resolve(ctx context.Context, title string, tags []string, summary string) string
}

// DocumentPublisher writes an assembled document to the publish target.
type DocumentPublisher interface {
	Publish(ctx context.Context, doc *domain.Document) error
}

// Config carries the per-run limits the driver enforces.
type Config struct {
	MaxArticlesPerRun int
	CandidateLimit    int
	MinContentLength  int
	MaxArticleAge     time.Duration
	PostDir           string
}

// Summary reports what one run did.
type Summary struct {
	Candidates   int
	Deduped      int
	TooShort     int
	LedgerErrors int
	Skipped      int
	Published    int
}

// Driver sequences collection, orchestration, cover resolution and
// publication for one run. Articles are processed strictly in candidate
// order; one article's failure never aborts the run.
type Driver struct {
	collector ArticleCollector
	rewriter  Rewriter
	covers    CoverResolver
	publisher DocumentPublisher
	ledger    ledger.Ledger
	registry  *persona.Registry
	cfg       Config
	logger    *zap.Logger

	now func() time.Time
}

func NewDriver(
	collector ArticleCollector,
	rewriter Rewriter,
	covers CoverResolver,
	docPublisher DocumentPublisher,
	led ledger.Ledger,
	registry *persona.Registry,
	cfg Config,
	logger *zap.Logger,
) *Driver {
	return &Driver{
		collector: collector,
		rewriter:  rewriter,
		covers:    covers,
		publisher: docPublisher,
		ledger:    led,
		registry:  registry,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// Run executes one pipeline pass. It returns an error only when collection
// itself fails; everything after that degrades per article.
func (d *Driver) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	candidates, err := d.collector.CollectAll(ctx, d.cfg.MaxArticleAge, d.cfg.CandidateLimit)
	if err != nil {
		return summary, err
	}
	summary.Candidates = len(candidates)

	for _, article := range candidates {
		if summary.Published >= d.cfg.MaxArticlesPerRun {
			break
		}

		if skip, reason := d.filter(ctx, article); skip {
			switch reason {
			case "duplicate":
				summary.Deduped++
			case "too_short":
				summary.TooShort++
			case "ledger_error":
				summary.LedgerErrors++
			}
			d.logger.Debug("Candidate filtered",
				zap.String("url", article.URL),
				zap.String("reason", reason))
			continue
		}

		if d.processArticle(ctx, article) {
			summary.Published++
		} else {
			summary.Skipped++
		}
	}

	d.logger.Info("Run finished",
		zap.Int("candidates", summary.Candidates),
		zap.Int("deduped", summary.Deduped),
		zap.Int("too_short", summary.TooShort),
		zap.Int("ledger_errors", summary.LedgerErrors),
		zap.Int("skipped", summary.Skipped),
		zap.Int("published", summary.Published))

	return summary, nil
}

// filter applies the dedup and content-length gates. Age filtering already
// happened during collection.
func (d *Driver) filter(ctx context.Context, article domain.Article) (bool, string) {
	published, err := d.ledger.Contains(ctx, article.URL)
	if err != nil {
		// An unreadable ledger must not cause re-publication; skip instead.
		d.logger.Error("Ledger lookup failed, skipping candidate",
			zap.String("url", article.URL),
			zap.Error(err))
		return true, "ledger_error"
	}
	if published {
		return true, "duplicate"
	}

	if utf8.RuneCountInString(article.Content) < d.cfg.MinContentLength {
		return true, "too_short"
	}

	return false, ""
}

// processArticle takes one candidate to publication. Returns true only when
// the document was published and recorded.
func (d *Driver) processArticle(ctx context.Context, article domain.Article) bool {
	log := d.logger.With(
		zap.String("url", article.URL),
		zap.String("source", article.SourceName))

	result, state, err := d.rewriter.Rewrite(ctx, article)
	if err != nil {
		log.Warn("Article skipped at orchestration",
			zap.String("state", string(state)),
			zap.Error(err))
		return false
	}

	coverURL := d.covers.Resolve(ctx, result.Title, result.Tags, result.Summary)

	personaName := result.PersonaID
	if p, err := d.registry.Get(result.PersonaID); err == nil {
		personaName = p.Name
	}

	now := d.now()
	doc, err := publisher.AssembleDocument(result, personaName, coverURL, article.URL, d.cfg.PostDir, now)
	if err != nil {
		log.Error("Document assembly failed", zap.Error(err))
		return false
	}

	if err := d.publisher.Publish(ctx, doc); err != nil {
		// No ledger entry: the article stays eligible for the next run.
		log.Warn("Publish failed, article will be retried next run", zap.Error(err))
		return false
	}

	if err := d.ledger.Add(ctx, ledger.Entry{
		SourceURL:   article.URL,
		Title:       result.Title,
		PublishedAt: now,
		Path:        doc.Path,
	}); err != nil {
		// Published but unrecorded: the next run would publish a duplicate
		// path, which the publisher's existence check then refuses.
		log.Error("Ledger append failed after publish", zap.Error(err))
		return true
	}

	log.Info("Article published",
		zap.String("path", doc.Path),
		zap.String("persona", result.PersonaID))

	return true
}
