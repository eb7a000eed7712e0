package provider

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"

	pkgerrors "github.com/hotker/blog-collector-go/pkg/errors"
)

var (
	statusRegex     = regexp.MustCompile(`\b(5\d{2})\b`)
	geminiCodeRegex = regexp.MustCompile(`"code":(\d{3})`)
	openaiCodeRegex = regexp.MustCompile(`^(\d{3})\s`)
)

// Classify maps a raw backend error onto the pipeline error taxonomy. The
// SDKs do not expose stable error types across providers, so classification
// works on the error text the same way for both backends.
func Classify(providerName string, err error) *pkgerrors.ProviderError {
	if perr := new(pkgerrors.ProviderError); errors.As(err, &perr) {
		return perr
	}

	kind := pkgerrors.KindFatal
	switch {
	case isRateLimit(err):
		kind = pkgerrors.KindQuotaExceeded
	case isTransient(err):
		kind = pkgerrors.KindTransient
	}

	return pkgerrors.NewProviderError("completion failed", providerName, kind, err)
}

func isRateLimit(err error) bool {
	if err == nil {
		return false
	}

	msg := err.Error()

	if strings.Contains(msg, "429") || strings.Contains(strings.ToLower(msg), "rate limit") || strings.Contains(strings.ToLower(msg), "quota") {
		return true
	}

	if matches := geminiCodeRegex.FindStringSubmatch(msg); len(matches) > 1 {
		if code, convErr := strconv.Atoi(matches[1]); convErr == nil {
			return code == 429
		}
	}

	if matches := openaiCodeRegex.FindStringSubmatch(msg); len(matches) > 1 {
		if code, convErr := strconv.Atoi(matches[1]); convErr == nil {
			return code == 429
		}
	}

	return false
}

func isTransient(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	msg := err.Error()
	lower := strings.ToLower(msg)

	if strings.Contains(lower, "timeout") || strings.Contains(lower, "deadline exceeded") ||
		strings.Contains(lower, "connection refused") || strings.Contains(lower, "connection reset") {
		return true
	}

	if statusRegex.MatchString(msg) {
		return true
	}

	if matches := geminiCodeRegex.FindStringSubmatch(msg); len(matches) > 1 {
		if code, convErr := strconv.Atoi(matches[1]); convErr == nil {
			return code >= 500 && code < 600
		}
	}

	if matches := openaiCodeRegex.FindStringSubmatch(msg); len(matches) > 1 {
		if code, convErr := strconv.Atoi(matches[1]); convErr == nil {
			return code >= 500 && code < 600
		}
	}

	return false
}
