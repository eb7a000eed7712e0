package cover

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hotker/blog-collector-go/internal/config"
	"github.com/hotker/blog-collector-go/internal/prompt"
	"github.com/hotker/blog-collector-go/internal/provider"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	defaultKeywords = "artificial intelligence, technology, innovation"
	defaultStyle    = "futuristic tech"

	imageTimeout  = 45 * time.Second
	uploadTimeout = 30 * time.Second

	maxImageBytes = 8 << 20
)

// Completer is the slice of the provider gateway the resolver needs for
// keyword analysis.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, opts *provider.Options) (provider.Result, error)
}

// Resolver derives a cover image URL for an article: keyword analysis, image
// generation (free endpoint first, Imagen as fallback), upload to the image
// host. Every failure path degrades to the configured default cover URL;
// cover generation never blocks publication.
type Resolver struct {
	gateway     Completer
	genaiClient *genai.Client
	httpClient  *http.Client
	cfg         config.CoverConfig
	logger      *zap.Logger
}

// NewResolver builds a resolver. genaiClient may be nil; the Imagen fallback
// is then skipped.
func NewResolver(gateway Completer, genaiClient *genai.Client, cfg config.CoverConfig, logger *zap.Logger) *Resolver {
	return &Resolver{
		gateway:     gateway,
		genaiClient: genaiClient,
		httpClient: &http.Client{
			Timeout: imageTimeout,
		},
		cfg:    cfg,
		logger: logger,
	}
}

// Resolve returns a cover URL for the article metadata, or the configured
// default when any stage fails.
func (r *Resolver) Resolve(ctx context.Context, title string, tags []string, summary string) string {
	keywords, style := r.analyze(ctx, title, tags, summary)
	imagePrompt := fmt.Sprintf(
		"Create a blog cover image. Theme: %s. Style: %s. Visually appealing, professional, suitable for a tech blog header. No text in the image.",
		keywords, style)

	imageData, err := r.fetchFreeImage(ctx, imagePrompt)
	if err != nil {
		r.logger.Warn("Free image endpoint failed, trying Imagen", zap.Error(err))
		imageData, err = r.generateWithImagen(ctx, imagePrompt)
	}
	if err != nil {
		r.logger.Warn("Cover generation failed, using default cover", zap.Error(err))
		return r.cfg.DefaultCoverURL
	}

	coverURL, err := r.upload(ctx, imageData)
	if err != nil {
		r.logger.Warn("Cover upload failed, using default cover", zap.Error(err))
		return r.cfg.DefaultCoverURL
	}

	r.logger.Info("Cover resolved",
		zap.String("keywords", keywords),
		zap.String("style", style),
		zap.String("url", coverURL))

	return coverURL
}

// analyze asks for an image keyword phrase and style tag. Failures fall back
// to generic tech keywords rather than aborting.
func (r *Resolver) analyze(ctx context.Context, title string, tags []string, summary string) (keywords, style string) {
	userPrompt := prompt.BuildCoverAnalysisPrompt(prompt.CoverPromptVars{
		Title:   title,
		Tags:    tags,
		Summary: summary,
	})

	res, err := r.gateway.Complete(ctx, prompt.CoverSystemPrompt, userPrompt, &provider.Options{JSONMode: true})
	if err != nil {
		r.logger.Warn("Cover analysis failed, using default keywords", zap.Error(err))
		return defaultKeywords, defaultStyle
	}

	var parsed prompt.CoverAnalysisResponse
	if err := prompt.ExtractJSON(res.Text, &parsed); err != nil {
		r.logger.Warn("Cover analysis unparsable, using default keywords", zap.Error(err))
		return defaultKeywords, defaultStyle
	}

	if parsed.Keywords == "" {
		parsed.Keywords = defaultKeywords
	}
	if parsed.Style == "" {
		parsed.Style = defaultStyle
	}

	return parsed.Keywords, parsed.Style
}

// fetchFreeImage pulls an image from the keyless prompt-in-URL endpoint.
func (r *Resolver) fetchFreeImage(ctx context.Context, imagePrompt string) ([]byte, error) {
	if r.cfg.FreeImageURL == "" {
		return nil, fmt.Errorf("free image endpoint not configured")
	}

	imageURL := fmt.Sprintf("%s/%s?width=1280&height=720&nologo=true",
		strings.TrimRight(r.cfg.FreeImageURL, "/"),
		url.PathEscape(imagePrompt))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/") {
		return nil, fmt.Errorf("unexpected content type: %s", ct)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty image response")
	}

	return data, nil
}

// generateWithImagen is the paid fallback when the free endpoint is down.
func (r *Resolver) generateWithImagen(ctx context.Context, imagePrompt string) ([]byte, error) {
	if r.genaiClient == nil {
		return nil, fmt.Errorf("imagen client not configured")
	}

	resp, err := r.genaiClient.Models.GenerateImages(ctx, r.cfg.ImagenModel, imagePrompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    "16:9",
	})
	if err != nil {
		return nil, fmt.Errorf("imagen generation failed: %w", err)
	}

	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil || len(resp.GeneratedImages[0].Image.ImageBytes) == 0 {
		return nil, fmt.Errorf("imagen returned no image")
	}

	return resp.GeneratedImages[0].Image.ImageBytes, nil
}

type uploadResult struct {
	Src string `json:"src"`
}

// upload pushes image bytes to the image host and builds the public URL from
// the returned relative path.
func (r *Resolver) upload(ctx context.Context, imageData []byte) (string, error) {
	if r.cfg.UploadURL == "" {
		return "", fmt.Errorf("upload endpoint not configured")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "cover.png")
	if err != nil {
		return "", err
	}
	if _, err := part.Write(imageData); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	uploadCtx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(uploadCtx, http.MethodPost, r.cfg.UploadURL, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var results []uploadResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}
	if len(results) == 0 || results[0].Src == "" {
		return "", fmt.Errorf("upload response missing src")
	}

	src := results[0].Src
	if strings.HasPrefix(src, "http") {
		return src, nil
	}
	return strings.TrimRight(r.cfg.ImageBaseURL, "/") + "/" + strings.TrimLeft(src, "/"), nil
}
