package models

import "testing"

func TestTransferCanTransition(t *testing.T) {
	tr := &Transfer{Status: TransferStatusPending}
	if !tr.CanTransition(TransferStatusAccepted) {
		t.Error("pending should accept")
	}
	if !tr.CanTransition(TransferStatusCancelled) {
		t.Error("pending should cancel")
	}
	if tr.CanTransition(TransferStatusPending) {
		t.Error("pending is not a transition target")
	}

	for _, status := range []string{TransferStatusAccepted, TransferStatusCancelled} {
		tr := &Transfer{Status: status}
		if tr.CanTransition(TransferStatusAccepted) || tr.CanTransition(TransferStatusCancelled) {
			t.Errorf("terminal status %s must not transition", status)
		}
		if tr.Mutable() {
			t.Errorf("terminal status %s must not be mutable", status)
		}
	}
}

func TestTransferEmpty(t *testing.T) {
	tr := &Transfer{}
	if !tr.Empty() {
		t.Error("no items means empty")
	}
	tr.Vehicles = []TransferVehicle{{VehicleID: 20}}
	if tr.Empty() {
		t.Error("a vehicle alone makes the transfer non-empty")
	}
}

func TestToolAdjustStock(t *testing.T) {
	tool := &Tool{Stock: []SiteStock{{HeadquarterID: 10, Available: 5}}}

	if !tool.AdjustStock(10, -5) {
		t.Fatal("draining to zero should succeed")
	}
	if got := tool.AvailableAt(10); got != 0 {
		t.Errorf("expected 0 after drain, got %d", got)
	}
	if tool.AdjustStock(10, -1) {
		t.Error("negative stock must be refused")
	}

	// Crediting an unseen site creates its entry.
	if !tool.AdjustStock(11, 3) {
		t.Fatal("credit to a new site should succeed")
	}
	if got := tool.AvailableAt(11); got != 3 {
		t.Errorf("expected 3 at new site, got %d", got)
	}
	if tool.AdjustStock(12, -1) {
		t.Error("debit from an unknown site must be refused")
	}

	if got := tool.TotalAvailable(); got != 3 {
		t.Errorf("expected total 3, got %d", got)
	}
}
