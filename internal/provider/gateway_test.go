package provider

import (
	"context"
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/hotker/blog-collector-go/pkg/errors"
	"go.uber.org/zap"
)

type fakeProvider struct {
	name  string
	text  string
	err   error
	calls int
}

func (f *fakeProvider) Name() string {
	return f.name
}

func (f *fakeProvider) Complete(_ context.Context, _, _ string, _ *Options) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func TestGatewayFallsBackOnQuotaExceeded(t *testing.T) {
	primary := &fakeProvider{name: "primary", err: fmt.Errorf("429 Too Many Requests")}
	secondary := &fakeProvider{name: "secondary", text: "X"}

	gw := NewGateway(zap.NewNop(), primary, secondary)
	res, err := gw.Complete(context.Background(), "sys", "user", nil)
	if err != nil {
		t.Fatalf("expected success via fallback, got %v", err)
	}

	if res.Outcome != OutcomeSuccess {
		t.Fatalf("expected success outcome, got %s", res.Outcome)
	}
	if res.Text != "X" {
		t.Fatalf("expected secondary text, got %q", res.Text)
	}
	if res.Provider != "secondary" {
		t.Fatalf("expected secondary provider, got %q", res.Provider)
	}
	if primary.calls != 1 || secondary.calls != 1 {
		t.Fatalf("expected exactly one attempt per provider, got %d/%d", primary.calls, secondary.calls)
	}
}

func TestGatewayQuotaWithoutSecondaryIsFatal(t *testing.T) {
	primary := &fakeProvider{name: "primary", err: fmt.Errorf("quota exceeded for model")}

	gw := NewGateway(zap.NewNop(), primary)
	res, err := gw.Complete(context.Background(), "sys", "user", nil)
	if err == nil {
		t.Fatal("expected error")
	}

	if res.Outcome != OutcomeFatal {
		t.Fatalf("expected fatal outcome, got %s", res.Outcome)
	}

	var perr *pkgerrors.ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ProviderError, got %T", err)
	}
	if perr.Kind != pkgerrors.KindFatal {
		t.Fatalf("expected fatal kind, got %s", perr.Kind)
	}
	if primary.calls != 1 {
		t.Fatalf("expected no retry against the same provider, got %d attempts", primary.calls)
	}
}

func TestGatewayFatalStopsChain(t *testing.T) {
	primary := &fakeProvider{name: "primary", err: fmt.Errorf("400 invalid request body")}
	secondary := &fakeProvider{name: "secondary", text: "unused"}

	gw := NewGateway(zap.NewNop(), primary, secondary)
	res, err := gw.Complete(context.Background(), "sys", "user", nil)
	if err == nil {
		t.Fatal("expected error")
	}

	if res.Outcome != OutcomeFatal {
		t.Fatalf("expected fatal outcome, got %s", res.Outcome)
	}
	if secondary.calls != 0 {
		t.Fatalf("fatal primary failure must not reach the secondary, got %d calls", secondary.calls)
	}
}

func TestGatewayTransientAdvancesToSecondary(t *testing.T) {
	primary := &fakeProvider{name: "primary", err: fmt.Errorf("503 service unavailable")}
	secondary := &fakeProvider{name: "secondary", text: "ok"}

	gw := NewGateway(zap.NewNop(), primary, secondary)
	res, err := gw.Complete(context.Background(), "", "user", nil)
	if err != nil {
		t.Fatalf("expected success via fallback, got %v", err)
	}
	if res.Text != "ok" {
		t.Fatalf("expected secondary text, got %q", res.Text)
	}
}

func TestGatewaySkipsNilProviders(t *testing.T) {
	secondary := &fakeProvider{name: "secondary", text: "ok"}

	gw := NewGateway(zap.NewNop(), nil, secondary)
	if got := len(gw.Providers()); got != 1 {
		t.Fatalf("expected nil providers to be dropped, got %d", got)
	}
}

func TestGatewayNoProvidersConfigured(t *testing.T) {
	gw := NewGateway(zap.NewNop())
	res, err := gw.Complete(context.Background(), "", "user", nil)
	if err == nil {
		t.Fatal("expected error with no providers")
	}
	if res.Outcome != OutcomeFatal {
		t.Fatalf("expected fatal outcome, got %s", res.Outcome)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want pkgerrors.ProviderKind
	}{
		{"http 429", fmt.Errorf("429 Too Many Requests"), pkgerrors.KindQuotaExceeded},
		{"quota text", fmt.Errorf("quota exceeded"), pkgerrors.KindQuotaExceeded},
		{"rate limit text", fmt.Errorf("Rate limit reached"), pkgerrors.KindQuotaExceeded},
		{"gemini 429 body", fmt.Errorf(`error: {"code":429,"status":"RESOURCE_EXHAUSTED"}`), pkgerrors.KindQuotaExceeded},
		{"http 503", fmt.Errorf("503 Service Unavailable"), pkgerrors.KindTransient},
		{"timeout", fmt.Errorf("context deadline exceeded (Client.Timeout exceeded)"), pkgerrors.KindTransient},
		{"connection refused", fmt.Errorf("dial tcp: connection refused"), pkgerrors.KindTransient},
		{"bad request", fmt.Errorf("400 invalid request"), pkgerrors.KindFatal},
		{"malformed", fmt.Errorf("unexpected response shape"), pkgerrors.KindFatal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			perr := Classify("test", tt.err)
			if perr.Kind != tt.want {
				t.Fatalf("Classify(%q) = %s, want %s", tt.err, perr.Kind, tt.want)
			}
		})
	}
}
