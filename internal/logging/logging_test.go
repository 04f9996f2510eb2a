package logging

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSetupDebugMode(t *testing.T) {
	old := slog.Default()
	defer slog.SetDefault(old)

	var buf bytes.Buffer
	Setup(true)
	// Replace with a buffer-backed handler at the same level Setup would use
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	slog.Debug("test debug")
	slog.Info("test info")

	output := buf.String()
	if !bytes.Contains([]byte(output), []byte("test debug")) {
		t.Error("expected debug message visible in debug mode")
	}
	if !bytes.Contains([]byte(output), []byte("test info")) {
		t.Error("expected info message visible in debug mode")
	}
}

func TestSetupDefaultMode(t *testing.T) {
	old := slog.Default()
	defer slog.SetDefault(old)

	Setup(false)
	// Verify logger works — just ensure no panic
	slog.Info("prod test")
}

func TestTransportLogsRequests(t *testing.T) {
	old := slog.Default()
	defer slog.SetDefault(old)

	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := &http.Client{Transport: &Transport{}}
	resp, err := client.Get(srv.URL + "/api/visitors/summary")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if err := resp.Body.Close(); err != nil {
		t.Errorf("close body: %v", err)
	}

	if !bytes.Contains(buf.Bytes(), []byte("GET")) {
		t.Error("expected method in log output")
	}
	if !bytes.Contains(buf.Bytes(), []byte("status=200")) {
		t.Error("expected status in log output")
	}
}

func TestTransportLogsFailures(t *testing.T) {
	old := slog.Default()
	defer slog.SetDefault(old)

	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	client := &http.Client{Transport: &Transport{}}
	if _, err := client.Get("http://127.0.0.1:1/unreachable"); err == nil {
		t.Fatal("expected connection error")
	}

	if !bytes.Contains(buf.Bytes(), []byte("api request failed")) {
		t.Error("expected failure log output")
	}
}
