package tracing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
)

func recorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})
	return rec
}

func TestStartSpan(t *testing.T) {
	rec := recorder(t)

	_, end := StartSpan(context.Background(), "match.find_similar", attribute.Int("candidates", 3))
	end(nil)

	spans := rec.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name() != "match.find_similar" {
		t.Errorf("span name = %q", spans[0].Name())
	}

	found := false
	for _, a := range spans[0].Attributes() {
		if a.Key == "candidates" && a.Value.AsInt64() == 3 {
			found = true
		}
	}
	if !found {
		t.Errorf("missing candidates attribute: %v", spans[0].Attributes())
	}
	if spans[0].Status().Code == codes.Error {
		t.Error("successful span must not have error status")
	}
}

func TestStartSpan_RecordsError(t *testing.T) {
	rec := recorder(t)

	_, end := StartSpan(context.Background(), "similarity.build")
	end(errors.New("empty corpus"))

	spans := rec.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Status().Code != codes.Error {
		t.Errorf("status = %v, want Error", spans[0].Status().Code)
	}
	if len(spans[0].Events()) == 0 {
		t.Error("expected recorded error event")
	}
}

func TestStartSpan_NestsUnderParent(t *testing.T) {
	rec := recorder(t)

	ctx, endParent := StartSpan(context.Background(), "parent")
	_, endChild := StartSpan(ctx, "child")
	endChild(nil)
	endParent(nil)

	spans := rec.Ended()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	child, parent := spans[0], spans[1]
	if child.Parent().SpanID() != parent.SpanContext().SpanID() {
		t.Error("child span is not parented to the outer span")
	}
}

func TestMiddleware_CreatesServerSpan(t *testing.T) {
	rec := recorder(t)

	handler := Middleware("profilematch")(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/find-similar-profiles", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	spans := rec.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name() != "POST /find-similar-profiles" {
		t.Errorf("span name = %q", spans[0].Name())
	}
}

func TestNewProvider_Disabled(t *testing.T) {
	p, err := NewProvider(Config{}, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.Shutdown(context.Background()); err != nil {
		t.Errorf("shutdown of disabled provider: %v", err)
	}
}

func TestNewProvider_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"no service name", Config{Enabled: true, SamplingRate: 1}},
		{"sampling rate", Config{Enabled: true, ServiceName: "profilematch", SamplingRate: 1.5}},
		{"exporter", Config{Enabled: true, ServiceName: "profilematch", SamplingRate: 1, Exporter: "zipkin"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewProvider(tt.cfg, zap.NewNop()); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
