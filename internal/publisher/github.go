package publisher

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v66/github"
	"github.com/hotker/blog-collector-go/internal/config"
	"github.com/hotker/blog-collector-go/internal/domain"
	pkgerrors "github.com/hotker/blog-collector-go/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// GitHubPublisher writes assembled documents into the target repository
// through the contents API.
type GitHubPublisher struct {
	client *github.Client
	owner  string
	repo   string
	branch string
	logger *zap.Logger
}

func NewGitHubPublisher(ctx context.Context, cfg config.GitHubConfig, logger *zap.Logger) (*GitHubPublisher, error) {
	owner, repo, ok := strings.Cut(cfg.TargetRepo, "/")
	if !ok || owner == "" || repo == "" {
		return nil, fmt.Errorf("target repo must be in owner/repo form, got %q", cfg.TargetRepo)
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
	tc := oauth2.NewClient(ctx, ts)

	return &GitHubPublisher{
		client: github.NewClient(tc),
		owner:  owner,
		repo:   repo,
		branch: cfg.Branch,
		logger: logger,
	}, nil
}

// Publish creates the document in the target repository. A path that already
// exists is reported as a publish failure; the file is never overwritten.
func (p *GitHubPublisher) Publish(ctx context.Context, doc *domain.Document) error {
	_, _, resp, err := p.client.Repositories.GetContents(ctx, p.owner, p.repo, doc.Path, &github.RepositoryContentGetOptions{
		Ref: p.branch,
	})
	if err == nil {
		return pkgerrors.NewPublishError("file already exists", doc.Path, nil)
	}
	if resp == nil || resp.StatusCode != 404 {
		return pkgerrors.NewPublishError("existence check failed", doc.Path, err)
	}

	_, _, err = p.client.Repositories.CreateFile(ctx, p.owner, p.repo, doc.Path, &github.RepositoryContentFileOptions{
		Message: github.String(doc.CommitMessage),
		Content: []byte(doc.Content),
		Branch:  github.String(p.branch),
	})
	if err != nil {
		return pkgerrors.NewPublishError("create file failed", doc.Path, err)
	}

	p.logger.Info("Published document",
		zap.String("repo", p.owner+"/"+p.repo),
		zap.String("path", doc.Path),
		zap.String("branch", p.branch))

	return nil
}
