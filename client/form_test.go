package client

import "testing"

func TestSetOriginClearsMatchingDestination(t *testing.T) {
	avail := testAvailability(t)
	var refreshed []int64
	form := NewTransferForm(avail, nil, func(id int64) { refreshed = append(refreshed, id) })

	form.SetOriginSite(10)
	if !form.SetDestinationSite(11) {
		t.Fatal("distinct destination should be accepted")
	}

	form.SetOriginSite(11)
	if form.Data.DestinationID != 0 {
		t.Errorf("destination equal to new origin should be cleared, got %d", form.Data.DestinationID)
	}
	if len(refreshed) != 2 || refreshed[0] != 10 || refreshed[1] != 11 {
		t.Errorf("expected refresh per origin change, got %v", refreshed)
	}
}

func TestSetDestinationRejectsOrigin(t *testing.T) {
	avail := testAvailability(t)
	form := NewTransferForm(avail, nil, nil)
	form.SetOriginSite(10)

	if form.SetDestinationSite(10) {
		t.Error("destination equal to origin must be rejected")
	}
	if form.Data.DestinationID != 0 {
		t.Errorf("destination should stay unset, got %d", form.Data.DestinationID)
	}
}

func TestDestinationOptionsExcludeOrigin(t *testing.T) {
	avail := testAvailability(t)
	form := NewTransferForm(avail, nil, nil)
	form.SetOriginSite(10)

	sites := []Headquarter{{ID: 10, Name: "Central"}, {ID: 11, Name: "Norte"}}
	opts := form.DestinationOptions(sites)
	if len(opts) != 1 || opts[0].ID != 11 {
		t.Errorf("expected only site 11, got %v", opts)
	}
}

func TestAddToolRejectsDuplicates(t *testing.T) {
	avail := testAvailability(t)
	form := NewTransferForm(avail, nil, nil)

	if !form.AddTool(1, 2) {
		t.Fatal("first add should succeed")
	}
	if form.AddTool(1, 3) {
		t.Error("duplicate tool id should be rejected")
	}
	if len(form.Data.Tools) != 1 || form.Data.Tools[0].Quantity != 2 {
		t.Errorf("unexpected tool lines %v", form.Data.Tools)
	}
}

func TestToolOptionsIncludeStaleDraftLines(t *testing.T) {
	avail := testAvailability(t)
	seed := &TransferFormData{
		OriginID: 10,
		Tools:    []FormLine{{ID: 3, Name: "Sierra", Quantity: 1}},
	}
	form := NewTransferForm(avail, seed, nil)

	opts := form.ToolOptions()
	var found *Option
	for i := range opts {
		if opts[i].ID == 3 {
			found = &opts[i]
		}
	}
	if found == nil {
		t.Fatal("draft line missing from scoped list should still be offered")
	}
	if found.State != Inactive {
		t.Errorf("stale inactive line should classify Inactive, got %v", found.State)
	}
}

func TestAdvanceStepBlockedByInactiveTool(t *testing.T) {
	avail := testAvailability(t)
	form := NewTransferForm(avail, nil, nil)
	form.SetOriginSite(10)
	form.SetDestinationSite(11)

	if !form.AdvanceStep() {
		t.Fatal("general step should advance")
	}
	form.AddTool(3, 1)
	if form.AdvanceStep() {
		t.Error("tools step must not advance with an inactive tool selected")
	}
	form.RemoveTool(3)
	if !form.AdvanceStep() {
		t.Error("tools step should advance once the inactive tool is removed")
	}
}

func TestRetreatStepAlwaysAllowed(t *testing.T) {
	avail := testAvailability(t)
	form := NewTransferForm(avail, nil, nil)

	if form.RetreatStep() {
		t.Error("cannot retreat before the first step")
	}
	form.AdvanceStep()
	form.AddTool(3, 1)
	if !form.RetreatStep() {
		t.Error("retreat must succeed regardless of validation state")
	}
	if form.Step() != StepGeneral {
		t.Errorf("expected StepGeneral, got %v", form.Step())
	}
}

func TestNewTransferFormSeedRefreshesOrigin(t *testing.T) {
	avail := testAvailability(t)
	var refreshed int64
	seed := &TransferFormData{ID: 5, OriginID: 10, DestinationID: 11}

	form := NewTransferForm(avail, seed, func(id int64) { refreshed = id })
	if refreshed != 10 {
		t.Errorf("expected refresh for seeded origin 10, got %d", refreshed)
	}
	if form.Data.ID != 5 {
		t.Errorf("seed not applied: %+v", form.Data)
	}
}

func TestNewTransferFormDefaultsDate(t *testing.T) {
	avail := testAvailability(t)
	form := NewTransferForm(avail, nil, nil)
	if form.Data.TransferDate == "" {
		t.Error("empty draft should default the transfer date")
	}
}
