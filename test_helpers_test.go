package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-document-validator/document"
	"go-document-validator/metrics"

	"github.com/stretchr/testify/require"
)

const testPort = 8081

var testConfig = ServerConfig{
	Host:           "localhost",
	Port:           testPort,
	UseTls:         false,
	TlsCertPath:    "",
	TlsPrivKeyPath: "",
}

func testURL(path string) string {
	return fmt.Sprintf("http://localhost:%d%s", testPort, path)
}

func newTestState(cache ResultCache) *ServerState {
	return &ServerState{
		documentValidator: document.NewDispatcher(fakeValidator{valid: true}, fakeValidator{valid: false}),
		resultCache:       cache,
		metrics:           metrics.New(),
	}
}

func startTestServer(t *testing.T, state *ServerState) *Server {
	t.Helper()

	srv, err := NewServer(state, testConfig)
	require.NoError(t, err)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			t.Errorf("server error: %v", err)
		}
	}()

	waitUntilHealthy(t, testURL("/api/health"))
	t.Cleanup(func() {
		if err := srv.Stop(); err != nil {
			t.Logf("error shutting down server: %v", err)
		}
	})
	return srv
}

func waitUntilHealthy(t *testing.T, url string) {
	t.Helper()
	const maxAttempts = 50
	for i := 0; i < maxAttempts; i++ {
		if resp, err := http.Get(url); err == nil {
			_ = resp.Body.Close()
			return
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatalf("server did not start in time")
}

func postJSON[T any](t *testing.T, url string, payload any) (*http.Response, []byte, *T) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(b)
	}
	resp, err := http.Post(url, "application/json", body)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var v T
	_ = json.Unmarshal(respBody, &v)

	return resp, respBody, &v
}

func mustStatus(t *testing.T, resp *http.Response, want int, body []byte) {
	t.Helper()
	require.Equalf(t, want, resp.StatusCode, "body: %s", body)
}

// serve runs a single request through the router without a listener.
func serve(t *testing.T, state *ServerState, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	srv, err := NewServer(state, testConfig)
	require.NoError(t, err)

	req := newRequest(t, method, path)
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	return recordRequest(srv, req)
}

func newRequest(t *testing.T, method, path string) *http.Request {
	t.Helper()
	return httptest.NewRequest(method, path, nil)
}

func recordRequest(srv *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

// test doubles

type fakeValidator struct{ valid bool }

func (f fakeValidator) Validate(string) bool {
	return f.valid
}

type countingDocumentValidator struct {
	inner DocumentValidator
	calls int
}

func (c *countingDocumentValidator) ValidateCleaned(cleaned string) document.ValidationResult {
	c.calls++
	return c.inner.ValidateCleaned(cleaned)
}

type failingResultCache struct{}

func (failingResultCache) Store(_ context.Context, _ string, _ document.ValidationResult) error {
	return errors.New("cache unavailable")
}

func (failingResultCache) Retrieve(_ context.Context, _ string) (document.ValidationResult, bool, error) {
	return document.ValidationResult{}, false, errors.New("cache unavailable")
}
