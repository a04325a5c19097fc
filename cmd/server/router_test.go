package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/phrazzld/tickler/internal/app"
	"github.com/phrazzld/tickler/internal/config"
	"github.com/phrazzld/tickler/internal/platform/logger"
	"github.com/phrazzld/tickler/internal/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestApp(t *testing.T, secret string) *app.Application {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:                   0,
			LogLevel:               "debug",
			ShutdownTimeoutSeconds: 1,
			CORSAllowedOrigins:     []string{"https://example.com"},
		},
		Scheduler: config.SchedulerConfig{PollIntervalSeconds: 60, NotifyWorkers: 1, NotifyQueueSize: 4},
		Auth:      config.AuthConfig{JWTSecret: secret, TokenLifetimeMinutes: 5},
	}
	log, _ := logger.NewTestLogger()
	now := func() time.Time { return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC) }

	a, err := app.New(cfg, log, app.WithSchedulerOptions(scheduler.WithClock(now)))
	require.NoError(t, err)
	return a
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(setupRouter(newTestApp(t, "")))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))
}

func TestRouter_TaskLifecycle(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(setupRouter(newTestApp(t, "")))
	defer srv.Close()

	body := `{"title":"Dentist","description":"card","reminder_time":"01.01.2024 10:00","reminder_before_minutes":15,"priority":"High"}`
	resp, err := http.Post(srv.URL+"/api/tasks", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = http.Post(srv.URL+"/api/reminders/check", "application/json", nil)
	require.NoError(t, err)
	var checked struct {
		Fired []struct {
			ID          int  `json:"id"`
			IsCompleted bool `json:"is_completed"`
		} `json:"fired"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&checked))
	resp.Body.Close()
	require.Len(t, checked.Fired, 1)
	assert.True(t, checked.Fired[0].IsCompleted)

	resp, err = http.Get(srv.URL + "/api/tasks?status=completed")
	require.NoError(t, err)
	var completed []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&completed))
	resp.Body.Close()
	assert.Len(t, completed, 1)

	resp, err = http.Get(srv.URL + "/api/tasks/2")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_AuthRequiredWhenSecretConfigured(t *testing.T) {
	t.Parallel()

	a := newTestApp(t, testSecret)
	srv := httptest.NewServer(setupRouter(a))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/tasks")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token, err := a.JWTService.GenerateToken(context.Background(), "cli")
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/tasks", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode, "health stays public")
}

func TestRouter_CORS(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(setupRouter(newTestApp(t, "")))
	defer srv.Close()

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/tasks", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "https://example.com", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestServer_ShutsDownOnCancel(t *testing.T) {
	t.Parallel()

	s := newServer(newTestApp(t, ""))
	s.httpServer.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}
