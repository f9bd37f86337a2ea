package client

import (
	"errors"
	"testing"
)

func testAvailability(t *testing.T) *Availability {
	t.Helper()
	ref := &ReferenceData{
		Tools: []CatalogItem{
			{ID: 1, Name: "Taladro", Status: true, Stock: []SiteStock{{HeadquarterID: 10, Available: 5}}},
			{ID: 2, Name: "Martillo", Status: true, Stock: []SiteStock{{HeadquarterID: 10, Available: 0}}},
			{ID: 3, Name: "Sierra", Status: false, Stock: []SiteStock{{HeadquarterID: 10, Available: 4}}},
		},
		Parts: []CatalogItem{
			{ID: 7, Name: "Filtro", Status: true, Stock: []SiteStock{{HeadquarterID: 10, Available: 2}}},
		},
		Vehicles: []CatalogVehicle{
			{ID: 20, Plate: "ABC123", Status: true, HeadquarterID: 10},
			{ID: 21, Plate: "XYZ987", Status: false, HeadquarterID: 10},
		},
	}
	avail := NewAvailability(ref)
	avail.SiteTools = []AvailableItem{{ID: 1, Name: "Taladro", Available: 5}}
	avail.SiteParts = []AvailableItem{{ID: 7, Name: "Filtro", Available: 2}}
	avail.SiteVehicles = []AvailableVehicle{{ID: 20, Plate: "ABC123"}}
	return avail
}

func TestCanSubmitEmptySelection(t *testing.T) {
	avail := testAvailability(t)
	form := &TransferFormData{OriginID: 10, DestinationID: 11}

	err := CanSubmit(form, avail)
	if !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("expected ErrEmptySelection, got %v", err)
	}
}

func TestCanSubmitInactiveToolBeforeQuantities(t *testing.T) {
	avail := testAvailability(t)
	form := &TransferFormData{
		OriginID:      10,
		DestinationID: 11,
		Tools: []FormLine{
			{ID: 1, Name: "Taladro", Quantity: 99},
			{ID: 3, Name: "Sierra", Quantity: 1},
		},
	}

	err := CanSubmit(form, avail)
	var inactive *InactiveToolError
	if !errors.As(err, &inactive) {
		t.Fatalf("expected InactiveToolError, got %v", err)
	}
	if inactive.Name != "Sierra" {
		t.Errorf("expected inactive tool Sierra, got %q", inactive.Name)
	}
	if inactive.Error() != "La herramienta 'Sierra' está inactiva" {
		t.Errorf("unexpected message %q", inactive.Error())
	}
}

func TestCanSubmitToolQuantityExceeded(t *testing.T) {
	avail := testAvailability(t)
	form := &TransferFormData{
		OriginID:      10,
		DestinationID: 11,
		Tools:         []FormLine{{ID: 1, Name: "Taladro", Quantity: 6}},
	}

	err := CanSubmit(form, avail)
	var qty *QuantityError
	if !errors.As(err, &qty) {
		t.Fatalf("expected QuantityError, got %v", err)
	}
	if qty.Requested != 6 || qty.Available != 5 {
		t.Errorf("expected 6 > 5, got %d > %d", qty.Requested, qty.Available)
	}
	if qty.Error() != "La cantidad solicitada de 'Taladro' supera la disponible (6 > 5)" {
		t.Errorf("unexpected message %q", qty.Error())
	}
}

func TestCanSubmitExactQuantityPasses(t *testing.T) {
	avail := testAvailability(t)
	form := &TransferFormData{
		OriginID:      10,
		DestinationID: 11,
		Tools:         []FormLine{{ID: 1, Name: "Taladro", Quantity: 5}},
		Parts:         []FormLine{{ID: 7, Name: "Filtro", Quantity: 2}},
	}

	if err := CanSubmit(form, avail); err != nil {
		t.Fatalf("expected valid form, got %v", err)
	}
}

func TestCanSubmitPartQuantityExceeded(t *testing.T) {
	avail := testAvailability(t)
	form := &TransferFormData{
		OriginID:      10,
		DestinationID: 11,
		Parts:         []FormLine{{ID: 7, Name: "Filtro", Quantity: 3}},
	}

	err := CanSubmit(form, avail)
	var qty *QuantityError
	if !errors.As(err, &qty) {
		t.Fatalf("expected QuantityError, got %v", err)
	}
	if qty.Name != "Filtro" {
		t.Errorf("expected Filtro, got %q", qty.Name)
	}
}

func TestCanAdvanceToolsStep(t *testing.T) {
	avail := testAvailability(t)

	// Exhausted tools do not block the step, inactive ones do.
	form := &TransferFormData{Tools: []FormLine{{ID: 2, Name: "Martillo", Quantity: 1}}}
	if !CanAdvance(StepTools, form, avail) {
		t.Error("exhausted tool should not block the tools step")
	}

	form = &TransferFormData{Tools: []FormLine{{ID: 3, Name: "Sierra", Quantity: 1}}}
	if CanAdvance(StepTools, form, avail) {
		t.Error("inactive tool should block the tools step")
	}
}

func TestCanAdvancePartsStep(t *testing.T) {
	avail := testAvailability(t)
	avail.SiteParts = []AvailableItem{
		{ID: 7, Name: "Filtro", Available: 2},
		{ID: 8, Name: "Correa", Available: 0},
	}

	form := &TransferFormData{Parts: []FormLine{{ID: 7, Name: "Filtro", Quantity: 1}}}
	if !CanAdvance(StepParts, form, avail) {
		t.Error("part with scoped availability should not block the parts step")
	}

	form = &TransferFormData{Parts: []FormLine{{ID: 8, Name: "Correa", Quantity: 1}}}
	if CanAdvance(StepParts, form, avail) {
		t.Error("part listed with zero availability must block the parts step")
	}

	form = &TransferFormData{Parts: []FormLine{{ID: 9, Name: "Bujía", Quantity: 1}}}
	if CanAdvance(StepParts, form, avail) {
		t.Error("part absent from the scoped list must block the parts step")
	}
}

func TestCanAdvanceVehiclesStep(t *testing.T) {
	avail := testAvailability(t)

	form := &TransferFormData{Vehicles: []int64{20}}
	if !CanAdvance(StepVehicles, form, avail) {
		t.Error("active vehicle should not block")
	}

	form = &TransferFormData{Vehicles: []int64{21}}
	if CanAdvance(StepVehicles, form, avail) {
		t.Error("inactive vehicle should block")
	}
}

func TestClassifyUnknownItem(t *testing.T) {
	avail := testAvailability(t)

	if got := avail.ClassifyTool(999); got.State != Inactive {
		t.Errorf("unknown tool should classify Inactive, got %v", got.State)
	}
	if name := avail.ToolDisplayName(999); name != "Herramienta ID: 999" {
		t.Errorf("unexpected placeholder %q", name)
	}
	if name := avail.PartDisplayName(888); name != "Repuesto ID: 888" {
		t.Errorf("unexpected placeholder %q", name)
	}
	if name := avail.VehicleDisplayName(777); name != "Vehículo ID: 777" {
		t.Errorf("unexpected placeholder %q", name)
	}
}
