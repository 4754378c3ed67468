package observability

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

func startTestServer(t *testing.T, ready ReadinessChecker) *Server {
	t.Helper()
	server := NewServer("127.0.0.1:0", ready)
	if _, err := server.Start(); err != nil {
		t.Fatalf("failed to start server: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Stop(ctx)
	})
	return server
}

func getBody(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("failed to GET %s: %v", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func TestServer_Metrics(t *testing.T) {
	server := startTestServer(t, func() bool { return true })

	status, body := getBody(t, "http://"+server.Addr()+"/metrics")
	if status != http.StatusOK {
		t.Errorf("expected status 200, got %d", status)
	}
	if !strings.Contains(body, "# HELP") || !strings.Contains(body, "# TYPE") {
		t.Error("expected Prometheus exposition format")
	}
	if !strings.Contains(body, "go_") {
		t.Error("expected go_* metrics")
	}
	if !strings.Contains(body, "process_") {
		t.Error("expected process_* metrics")
	}
}

func TestServer_MetricsIncrement(t *testing.T) {
	server := startTestServer(t, func() bool { return true })

	metrics := server.Metrics()
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
	metrics.RegistrationsTotal.Inc()
	metrics.SocialLoginsTotal.WithLabelValues("google").Inc()
	metrics.SessionsIssued.Inc()
	metrics.SessionsInvalidated.Inc()
	metrics.SelectionSwapsTotal.WithLabelValues("daily_goal").Inc()

	_, body := getBody(t, "http://"+server.Addr()+"/metrics")

	if !strings.Contains(body, `deepworktimer_logins_total{outcome="success"} 2`) {
		t.Error("expected success login counter to be 2")
	}
	if !strings.Contains(body, `deepworktimer_logins_total{outcome="invalid_credentials"} 1`) {
		t.Error("expected invalid_credentials login counter to be 1")
	}
	if !strings.Contains(body, "deepworktimer_registrations_total 1") {
		t.Error("expected registration counter to be 1")
	}
	if !strings.Contains(body, `deepworktimer_social_logins_total{provider="google"} 1`) {
		t.Error("expected google social login counter to be 1")
	}
	if !strings.Contains(body, `deepworktimer_selection_swaps_total{kind="daily_goal"} 1`) {
		t.Error("expected daily_goal selection swap counter to be 1")
	}
}

func TestServer_LivenessReturns200(t *testing.T) {
	server := startTestServer(t, nil)

	status, body := getBody(t, "http://"+server.Addr()+"/healthz/liveness")
	if status != http.StatusOK {
		t.Errorf("expected status 200, got %d", status)
	}
	if strings.TrimSpace(body) != "ok" {
		t.Errorf("expected body 'ok', got %q", body)
	}
}

func TestServer_ReadinessWhenReady(t *testing.T) {
	server := startTestServer(t, func() bool { return true })

	status, _ := getBody(t, "http://"+server.Addr()+"/healthz/readiness")
	if status != http.StatusOK {
		t.Errorf("expected status 200, got %d", status)
	}
}

func TestServer_ReadinessWhenNotReady(t *testing.T) {
	server := startTestServer(t, func() bool { return false })

	status, body := getBody(t, "http://"+server.Addr()+"/healthz/readiness")
	if status != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", status)
	}
	if strings.TrimSpace(body) != "not ready" {
		t.Errorf("expected body 'not ready', got %q", body)
	}
}

func TestServer_ReadinessWithNilChecker(t *testing.T) {
	server := startTestServer(t, nil)

	status, _ := getBody(t, "http://"+server.Addr()+"/healthz/readiness")
	if status != http.StatusOK {
		t.Errorf("expected status 200 with nil checker, got %d", status)
	}
}

func TestServer_DoubleStartFails(t *testing.T) {
	server := startTestServer(t, nil)

	if _, err := server.Start(); err == nil {
		t.Error("expected error on double start, got nil")
	}
}

func TestServer_StopIdempotent(t *testing.T) {
	server := NewServer("127.0.0.1:0", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		t.Errorf("stop without start should not error: %v", err)
	}
}

func TestServer_ErrorChannelReportsServeErrors(t *testing.T) {
	server := NewServer("127.0.0.1:0", nil)

	errCh, err := server.Start()
	if err != nil {
		t.Fatalf("failed to start server: %v", err)
	}

	// Force close the listener to trigger an error in Serve().
	if server.listener != nil {
		_ = server.listener.Close()
	}

	select {
	case serveErr := <-errCh:
		if serveErr == nil {
			t.Error("expected an error after closing the listener")
		}
	case <-time.After(2 * time.Second):
		t.Error("timeout waiting for error on error channel")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Stop(ctx)
}

func TestServer_ErrorChannelClosesOnNormalShutdown(t *testing.T) {
	server := NewServer("127.0.0.1:0", nil)

	errCh, err := server.Start()
	if err != nil {
		t.Fatalf("failed to start server: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Stop(ctx); err != nil {
		t.Fatalf("failed to stop server: %v", err)
	}

	select {
	case err, ok := <-errCh:
		if ok && err != nil {
			t.Errorf("unexpected error on normal shutdown: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Error("timeout waiting for error channel to close")
	}
}
