package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mager/moodscale/config"
	"github.com/mager/moodscale/handler/health"
	personalityHandler "github.com/mager/moodscale/handler/personality"
	"github.com/mager/moodscale/insight"
	"github.com/mager/moodscale/logger"
	"github.com/mager/moodscale/middleware"
	"github.com/mager/moodscale/spotify"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

func TestAppWiring(t *testing.T) {
	assert.NoError(t, fx.ValidateApp(appOptions()...))
}

type stubRoute struct{ pattern string }

func (s stubRoute) Pattern() string { return s.pattern }

func (stubRoute) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(`{}`))
}

func TestNewRouter(t *testing.T) {
	log, _ := logger.NewTestLogger()
	cfg := config.Config{RateLimitPerMinute: 1}

	router := NewRouter(cfg, log, []Route{
		health.NewHealthHandler(log, spotify.ProvideSpotify(cfg, log), insight.ProvideGenerator(cfg, log)),
		personalityHandler.NewPersonalityHandler(log),
		stubRoute{"/profile"},
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.NotEmpty(t, rr.Header().Get(middleware.RequestIDHeader))

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/personality", strings.NewReader(`{"genres":["jazz"]}`)))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"mbti":"INTJ"`)

	call := func() int {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/profile", nil))
		return rr.Code
	}
	assert.Equal(t, http.StatusOK, call())
	assert.Equal(t, http.StatusTooManyRequests, call())

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func freePort(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	return fmt.Sprint(ln.Addr().(*net.TCPAddr).Port)
}

func TestNewHTTPServerServes(t *testing.T) {
	log, _ := logger.NewTestLogger()
	port := freePort(t)

	router := mux.NewRouter()
	router.Handle("/ping", stubRoute{"/ping"})

	lc := fxtest.NewLifecycle(t)
	srv := NewHTTPServer(lc, config.Config{Port: port}, log, router)
	assert.Equal(t, ":"+port, srv.Addr)

	lc.RequireStart()
	defer lc.RequireStop()

	resp, err := http.Get("http://127.0.0.1:" + port + "/ping")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNewHTTPServerBadPort(t *testing.T) {
	log, _ := logger.NewTestLogger()

	lc := fxtest.NewLifecycle(t)
	NewHTTPServer(lc, config.Config{Port: "not-a-port"}, log, mux.NewRouter())

	assert.Error(t, lc.Start(context.Background()))
}
