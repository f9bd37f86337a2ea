package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAcceptPreFlightBlocksWithoutRequest(t *testing.T) {
	requested := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = true
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ref := &ReferenceData{
		Tools: []CatalogItem{
			{ID: 1, Name: "Taladro", Status: false, Stock: []SiteStock{{HeadquarterID: 10, Available: 5}}},
		},
	}
	var notified string
	lc := &LifecycleController{
		Client:    New(srv.URL, NewMemorySession()),
		Notifier:  NotifierFunc(func(msg string) { notified = msg }),
		Reference: ref,
	}

	transfer := &Transfer{
		ID:       9,
		OriginID: 10,
		Status:   StatusPending,
		Tools:    []TransferTool{{ToolID: 1, Name: "Taladro", Quantity: 2}},
	}
	err := lc.Accept(context.Background(), transfer)
	if !errors.Is(err, ErrAcceptBlocked) {
		t.Fatalf("expected ErrAcceptBlocked, got %v", err)
	}
	if requested {
		t.Error("pre-flight refusal must not reach the backend")
	}
	if notified != ErrAcceptBlocked.Error() {
		t.Errorf("expected blocked notification, got %q", notified)
	}
}

func TestAcceptPreFlightChecksOriginStock(t *testing.T) {
	ref := &ReferenceData{
		Tools: []CatalogItem{
			{ID: 1, Name: "Taladro", Status: true, Stock: []SiteStock{{HeadquarterID: 10, Available: 1}}},
		},
	}
	lc := &LifecycleController{Reference: ref}

	transfer := &Transfer{
		OriginID: 10,
		Tools:    []TransferTool{{ToolID: 1, Name: "Taladro", Quantity: 2}},
	}
	if lc.acceptable(transfer) {
		t.Error("insufficient origin stock should block acceptance")
	}

	transfer.Tools[0].Quantity = 1
	if !lc.acceptable(transfer) {
		t.Error("stock matching the request should pass")
	}
}

func TestAcceptPreFlightChecksVehicleLocation(t *testing.T) {
	ref := &ReferenceData{
		Vehicles: []CatalogVehicle{
			{ID: 20, Plate: "ABC123", Status: true, HeadquarterID: 11},
		},
	}
	lc := &LifecycleController{Reference: ref}

	transfer := &Transfer{
		OriginID: 10,
		Vehicles: []TransferVehicle{{VehicleID: 20, Plate: "ABC123"}},
	}
	if lc.acceptable(transfer) {
		t.Error("vehicle parked elsewhere should block acceptance")
	}
}

func TestCreateSurfacesBackendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"La herramienta 'Sierra' está inactiva"}`))
	}))
	defer srv.Close()

	var notified string
	lc := &LifecycleController{
		Client:   New(srv.URL, NewMemorySession()),
		Notifier: NotifierFunc(func(msg string) { notified = msg }),
	}

	form := &TransferFormData{OriginID: 10, DestinationID: 11}
	if _, err := lc.Create(context.Background(), form); err == nil {
		t.Fatal("expected backend rejection")
	}
	if notified != "La herramienta 'Sierra' está inactiva" {
		t.Errorf("expected verbatim backend message, got %q", notified)
	}
}

func TestCancelReloadsListing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Traslado cancelado"}`))
	}))
	defer srv.Close()

	reloaded := false
	lc := &LifecycleController{
		Client: New(srv.URL, NewMemorySession()),
		Reload: func() { reloaded = true },
	}

	if err := lc.Cancel(context.Background(), &Transfer{ID: 9, Status: StatusPending}); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if !reloaded {
		t.Error("successful cancel must reload the listing")
	}
}
