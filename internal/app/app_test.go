package app_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"portfolio-assistant/features/chat"
	"portfolio-assistant/internal/app"
	"portfolio-assistant/internal/config"
)

type stubRetriever struct{}

func (stubRetriever) RetrieveContext(ctx context.Context, query string, topK int) string {
	return "ctx"
}

type stubAssembler struct{}

func (stubAssembler) Assemble(contextBlock, message string) string { return "prompt" }

type stubGenerator struct{}

func (stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return "answer", nil
}

func testApp() *app.App {
	cfg := &config.Config{ServerPort: 8081}
	svc := chat.NewService(stubRetriever{}, stubAssembler{}, stubGenerator{}, 5)
	return app.New(cfg, svc)
}

func TestHealth(t *testing.T) {
	a := testApp()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	a.Handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestChatRoute(t *testing.T) {
	a := testApp()
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message": "hello there"}`))
	w := httptest.NewRecorder()
	a.Handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "answer")
	assert.NotEmpty(t, w.Header().Get("X-Correlation-ID"))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestChatPreflight(t *testing.T) {
	a := testApp()
	req := httptest.NewRequest(http.MethodOptions, "/chat", nil)
	w := httptest.NewRecorder()
	a.Handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
