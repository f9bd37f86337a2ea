package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestLoginStoresSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var creds map[string]string
		json.NewDecoder(r.Body).Decode(&creds)
		if creds["email"] != "admin@toolflow.local" {
			t.Errorf("unexpected email %q", creds["email"])
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"token": "tok-123",
			"user":  map[string]any{"id": 1, "name": "Admin", "role": "ADMINISTRATOR"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, NewMemorySession())
	profile, err := c.Login(context.Background(), "admin@toolflow.local", "admin123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if profile == nil || profile.Role != "ADMINISTRATOR" {
		t.Errorf("unexpected profile %+v", profile)
	}
	if c.Session.Token() != "tok-123" {
		t.Errorf("token not stored, got %q", c.Session.Token())
	}
}

func TestBearerHeaderOnRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Errorf("unexpected authorization header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	session := NewMemorySession()
	session.Set("tok-123", &UserProfile{ID: 1})
	c := New(srv.URL, session)

	if _, err := c.Headquarters(context.Background()); err != nil {
		t.Fatalf("request failed: %v", err)
	}
}

func TestAPIErrorCarriesBackendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"El traslado ya fue aceptado o cancelado y no puede modificarse"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, NewMemorySession())
	err := c.AcceptTransfer(context.Background(), 9)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusConflict {
		t.Errorf("unexpected status %d", apiErr.StatusCode)
	}
	if apiErr.Message != "El traslado ya fue aceptado o cancelado y no puede modificarse" {
		t.Errorf("unexpected message %q", apiErr.Message)
	}
}

func TestAPIErrorFallsBackToGenericMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := New(srv.URL, NewMemorySession())
	err := c.CancelTransfer(context.Background(), 9)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Message != "Error desconocido" {
		t.Errorf("expected generic message, got %q", apiErr.Message)
	}
}

func TestTransportFailureIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New(srv.URL, NewMemorySession())
	_, err := c.Headquarters(context.Background())
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
}

func TestAvailableToolsQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tools/available-for-transfer" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("headquarterId"); got != "10" {
			t.Errorf("unexpected headquarterId %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"name":"Taladro","available":5}]`))
	}))
	defer srv.Close()

	c := New(srv.URL, NewMemorySession())
	items, err := c.AvailableTools(context.Background(), 10)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if len(items) != 1 || items[0].Available != 5 {
		t.Errorf("unexpected items %+v", items)
	}
}

func TestFileSessionPersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	first := NewFileSession(path)
	first.Set("tok-123", &UserProfile{ID: 1, Name: "Admin"})

	second := NewFileSession(path)
	if second.Token() != "tok-123" {
		t.Errorf("token not persisted, got %q", second.Token())
	}
	profile := second.Profile()
	if profile == nil || profile.Name != "Admin" {
		t.Errorf("profile not persisted: %+v", profile)
	}

	second.Clear()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("clear should remove the session file")
	}
	if second.Token() != "" {
		t.Error("token should be empty after clear")
	}
}

func TestFileSessionSetFailureLeavesNoState(t *testing.T) {
	// Parent directory does not exist, so the write fails.
	path := filepath.Join(t.TempDir(), "missing", "session.json")
	s := NewFileSession(path)

	s.Set("tok-123", &UserProfile{ID: 1})
	if s.Token() != "" {
		t.Error("a failed persist must not report a stored token")
	}
	if s.Profile() != nil {
		t.Error("a failed persist must not report a stored profile")
	}
}

func TestLoadReferenceDataFansOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/headquarters":
			w.Write([]byte(`[{"id":10,"name":"Central"}]`))
		case "/api/users":
			w.Write([]byte(`[{"id":1,"name":"Admin"}]`))
		case "/tools/all":
			w.Write([]byte(`[{"id":1,"name":"Taladro","status":true}]`))
		case "/api/vehicle-parts":
			w.Write([]byte(`[{"id":7,"name":"Filtro","status":true}]`))
		case "/api/vehicles":
			w.Write([]byte(`[{"id":20,"plate":"ABC123","status":true}]`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.Write([]byte(`[]`))
		}
	}))
	defer srv.Close()

	c := New(srv.URL, NewMemorySession())
	ref, err := c.LoadReferenceData(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(ref.Sites) != 1 || len(ref.Users) != 1 || len(ref.Tools) != 1 || len(ref.Parts) != 1 || len(ref.Vehicles) != 1 {
		t.Errorf("incomplete reference data: %+v", ref)
	}
	if _, ok := ref.FindTool(1); !ok {
		t.Error("FindTool should locate loaded tool")
	}
}
