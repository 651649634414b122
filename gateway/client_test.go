package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fintrack-backend/config"
)

func testClient(url string) *WhatsAppClient {
	return NewWhatsAppClient(config.GatewayConfig{
		BaseURL:  url,
		Instance: "main",
		APIKey:   "secret",
	}, 2*time.Second)
}

func TestSendTextSuccess(t *testing.T) {
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("apikey")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"key":{"id":"ABC123"},"status":"PENDING"}`))
	}))
	defer srv.Close()

	res := testClient(srv.URL).SendText(context.Background(), "5511999990000", "hello")

	if !res.Sent {
		t.Fatalf("expected sent, got error %q", res.Error)
	}
	if res.MessageID != "ABC123" {
		t.Errorf("MessageID = %q, want ABC123", res.MessageID)
	}
	if gotPath != "/message/sendText/main" {
		t.Errorf("path = %q", gotPath)
	}
	if gotKey != "secret" {
		t.Errorf("apikey header = %q", gotKey)
	}
}

func TestSendTextLegacyMessageID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"messageId":"legacy-1"}`))
	}))
	defer srv.Close()

	res := testClient(srv.URL).SendText(context.Background(), "5511999990000", "hello")
	if !res.Sent || res.MessageID != "legacy-1" {
		t.Errorf("got %+v", res)
	}
}

func TestSendTextNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"instance disconnected"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	res := testClient(srv.URL).SendText(context.Background(), "5511999990000", "hello")

	if res.Sent {
		t.Fatal("expected failure for 500 response")
	}
	if res.MessageID != "" {
		t.Errorf("failed result must not carry a message id, got %q", res.MessageID)
	}
	if !strings.Contains(res.Error, "500") {
		t.Errorf("error should mention status, got %q", res.Error)
	}
}

func TestSendTextNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	res := testClient(srv.URL).SendText(context.Background(), "5511999990000", "hello")
	if res.Sent {
		t.Fatal("expected failure when the gateway is unreachable")
	}
	if res.Error == "" {
		t.Error("expected a populated error message")
	}
}

func TestConnectionStateFlat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/instance/connectionState/main" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"state":"open","phoneNumber":"5511999990000"}`))
	}))
	defer srv.Close()

	state, err := testClient(srv.URL).ConnectionState(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if state.State != "open" || state.PhoneNumber != "5511999990000" {
		t.Errorf("got %+v", state)
	}
}

func TestConnectNestedShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/instance/connect/main" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"instance":{"state":"connecting","code":"PAIR-99"}}`))
	}))
	defer srv.Close()

	state, err := testClient(srv.URL).Connect(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if state.State != "connecting" || state.PairingCode != "PAIR-99" {
		t.Errorf("got %+v", state)
	}
}
