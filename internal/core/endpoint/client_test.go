package endpoint

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestClient_GetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/properties" {
			t.Errorf("request = %s %s, want GET /properties", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": "success"}`))
	}))
	defer srv.Close()

	var out struct {
		Status string `json:"status"`
	}
	c := NewClient(srv.URL+"/", time.Second, nil)
	if err := c.GetJSON(context.Background(), "/properties", &out); err != nil {
		t.Fatalf("GetJSON() error = %v, want nil", err)
	}
	if out.Status != "success" {
		t.Errorf("GetJSON() status = %q, want success", out.Status)
	}
	if c.BaseURL() != srv.URL {
		t.Errorf("BaseURL() = %q, want %q", c.BaseURL(), srv.URL)
	}
}

func TestClient_PostJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("Decode() error = %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"echo": body["filters"]})
	}))
	defer srv.Close()

	var out map[string]string
	c := NewClient(srv.URL, time.Second, nil)
	if err := c.PostJSON(context.Background(), "/search", map[string]string{"filters": "A eq 1"}, &out); err != nil {
		t.Fatalf("PostJSON() error = %v, want nil", err)
	}
	if out["echo"] != "A eq 1" {
		t.Errorf("PostJSON() echo = %q, want %q", out["echo"], "A eq 1")
	}
}

func TestClient_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message": "unexpected token UNKNOWN"}`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL, time.Second, nil).PostJSON(context.Background(), "/search", struct{}{}, nil)
	if !IsStatus(err, http.StatusBadRequest) {
		t.Fatalf("PostJSON() error = %v, want status 400", err)
	}
	if !strings.Contains(err.Error(), "unexpected token UNKNOWN") {
		t.Errorf("Error() = %q, want service message", err.Error())
	}
}

func TestClient_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewClient(srv.URL, time.Second, nil).GetJSON(ctx, "/", nil); err == nil {
		t.Fatal("GetJSON() error = nil, want context canceled")
	}
}
