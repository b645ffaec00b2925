package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/outfit-advisor/internal/domain/outfit"
	"github.com/yanqian/outfit-advisor/internal/infra/config"
	"github.com/yanqian/outfit-advisor/internal/infra/outcomes"
	"github.com/yanqian/outfit-advisor/internal/infra/ratelimit"
)

const completePlan = "```json\n" + `{
  "morning": {"short": "Hırka", "detail": "d1", "reason": "r1", "alternatives": [{"short": "a", "detail": "b"}]},
  "afternoon": {"short": "Tişört", "detail": "d2", "reason": "r2", "alternatives": [{"short": "c", "detail": "d"}]},
  "evening": {"short": "Ceket", "detail": "d3", "reason": "r3", "alternatives": [{"short": "e", "detail": "f"}]}
}` + "\n```"

func TestRouter_RecommendFromModel(t *testing.T) {
	gen := &stubGenerator{text: completePlan}
	server := newRouterUnderTest(t, gen, nil, "")

	rec := performRequest(server, http.MethodGet, "/api/ai?temp=18&location=%C4%B0zmir")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, outfit.ContentType, rec.Header().Get("Content-Type"))
	require.Equal(t, string(outfit.SourceModel), rec.Header().Get(HeaderRecommendationSource))
	require.NotEmpty(t, rec.Header().Get(HeaderRequestID))
	requireCORS(t, rec)

	var plan map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &plan))
	require.Equal(t, "Ceket", plan["evening"].(map[string]any)["short"])
	require.Contains(t, gen.lastPrompt(), "İzmir")
	require.Contains(t, gen.lastPrompt(), "18")
}

func TestRouter_RecommendFallsBackOnProse(t *testing.T) {
	server := newRouterUnderTest(t, &stubGenerator{text: "Üzgünüm, yardımcı olamam."}, nil, "")

	rec := performRequest(server, http.MethodGet, "/api/ai?temp=5&description=Ya%C4%9Fmurlu&wind=20&location=%C4%B0stanbul")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, string(outfit.SourceFallbackExtraction), rec.Header().Get(HeaderRecommendationSource))

	want, err := outfit.Encode(outfit.FallbackPlan(outfit.WeatherQuery{
		Temperature: "5",
		Description: "Yağmurlu",
		Wind:        "20",
		Location:    "İstanbul",
	}))
	require.NoError(t, err)
	require.Equal(t, string(want), rec.Body.String())
}

func TestRouter_RecommendUpstreamFailure(t *testing.T) {
	server := newRouterUnderTest(t, &stubGenerator{err: errors.New("quota exhausted")}, nil, "")

	rec := performRequest(server, http.MethodGet, "/api/ai?temp=5&description=Ya%C4%9Fmurlu&wind=20&location=%C4%B0stanbul")
	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.Empty(t, rec.Header().Get(HeaderRecommendationSource))
	requireCORS(t, rec)

	errBody := decodeErrorBody(t, rec.Body.Bytes())
	require.Equal(t, "llm_error", errBody["error"]["code"])
	require.Contains(t, errBody["error"]["message"], "quota exhausted")
	require.NotContains(t, rec.Body.String(), "morning")
}

func TestRouter_Preflight(t *testing.T) {
	server := newRouterUnderTest(t, &stubGenerator{text: completePlan}, nil, "")

	rec := performRequest(server, http.MethodOptions, "/api/ai")
	require.Equal(t, http.StatusNoContent, rec.Code)
	requireCORS(t, rec)
}

func TestRouter_RateLimited(t *testing.T) {
	limiter := ratelimit.NewMemoryLimiter(1, 1)
	server := newRouterUnderTest(t, &stubGenerator{text: completePlan}, limiter, "")

	require.Equal(t, http.StatusOK, performRequest(server, http.MethodGet, "/api/ai").Code)

	rec := performRequest(server, http.MethodGet, "/api/ai")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	requireCORS(t, rec)
	require.Equal(t, "rate_limit_exceeded", decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])
}

func TestRouter_RateLimiterFaultFailsOpen(t *testing.T) {
	server := newRouterUnderTest(t, &stubGenerator{text: completePlan}, failingLimiter{}, "")
	require.Equal(t, http.StatusOK, performRequest(server, http.MethodGet, "/api/ai").Code)
}

func TestRouter_Stats(t *testing.T) {
	server := newRouterUnderTest(t, &stubGenerator{text: "not json"}, nil, "")
	require.Equal(t, http.StatusOK, performRequest(server, http.MethodGet, "/api/ai").Code)
	require.Equal(t, http.StatusOK, performRequest(server, http.MethodGet, "/api/ai").Code)

	rec := performRequest(server, http.MethodGet, "/api/ai/stats")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Counts []outfit.SourceCount `json:"counts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, []outfit.SourceCount{{Source: outfit.SourceFallbackExtraction, Count: 2}}, body.Counts)
}

func TestRouter_StaticFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(\"hava\")"), 0o600))
	server := newRouterUnderTest(t, &stubGenerator{text: completePlan}, nil, dir)

	rec := performRequest(server, http.MethodGet, "/app.js")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, `console.log("hava")`, rec.Body.String())
	requireCORS(t, rec)

	rec = performRequest(server, http.MethodGet, "/api/unknown")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "not_found", decodeErrorBody(t, rec.Body.Bytes())["error"]["code"])
}

func TestRouter_NoStaticDir(t *testing.T) {
	server := newRouterUnderTest(t, &stubGenerator{text: completePlan}, nil, "")

	rec := performRequest(server, http.MethodGet, "/index.html")
	require.Equal(t, http.StatusNotFound, rec.Code)
	requireCORS(t, rec)
}

func TestRouter_KeepsCallerRequestID(t *testing.T) {
	server := newRouterUnderTest(t, &stubGenerator{text: completePlan}, nil, "")

	req := httptest.NewRequest(http.MethodGet, "/api/ai", nil)
	req.Header.Set(HeaderRequestID, "req-123")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	require.Equal(t, "req-123", rec.Header().Get(HeaderRequestID))
}

func TestResolveOrigin(t *testing.T) {
	require.Equal(t, "*", resolveOrigin("https://x.example", nil))
	require.Equal(t, "https://b.example", resolveOrigin("https://B.example", []string{"https://a.example", "https://b.example"}))
	require.Equal(t, "https://a.example", resolveOrigin("https://c.example", []string{"https://a.example"}))
	require.Equal(t, "https://a.example", resolveOrigin("HTTPS://A.EXAMPLE", []string{"https://a.example"}), "configured text is echoed")
}

func TestRouter_CORSEchoesConfiguredOrigin(t *testing.T) {
	logger := newTestLogger()
	svc := outfit.NewService(outfit.Config{GenerationTimeout: time.Second}, &stubGenerator{text: completePlan}, nil, logger)
	cfg := &config.Config{HTTP: config.HTTPConfig{AllowedOrigins: []string{"https://hava.example"}}}
	server := NewRouter(cfg, NewHandler(svc, logger), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/ai", nil)
	req.Header.Set("Origin", "https://HAVA.example")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	require.Equal(t, "https://hava.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func performRequest(server *http.Server, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func newRouterUnderTest(t *testing.T, gen outfit.Generator, limiter ratelimit.Limiter, staticDir string) *http.Server {
	t.Helper()
	logger := newTestLogger()
	svc := outfit.NewService(outfit.Config{GenerationTimeout: time.Second}, gen, outcomes.NewMemoryRecorder(), logger)
	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
			StaticDir:    staticDir,
		},
	}
	return NewRouter(cfg, NewHandler(svc, logger), limiter)
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

func requireCORS(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "GET, POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	require.Equal(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
}

func decodeErrorBody(t *testing.T, raw []byte) map[string]map[string]string {
	t.Helper()
	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

type stubGenerator struct {
	text   string
	err    error
	prompt string
}

func (s *stubGenerator) Generate(_ context.Context, prompt string) (outfit.Generation, error) {
	s.prompt = prompt
	if s.err != nil {
		return outfit.Generation{}, s.err
	}
	return outfit.Generation{Text: s.text, Model: "stub"}, nil
}

func (s *stubGenerator) lastPrompt() string {
	return s.prompt
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (bool, error) {
	return false, errors.New("valkey down")
}
