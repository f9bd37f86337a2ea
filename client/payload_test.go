package client

import (
	"reflect"
	"testing"
)

func TestPayloadRemapsLines(t *testing.T) {
	form := TransferFormData{
		ResponsibleID: 3,
		OriginID:      10,
		DestinationID: 11,
		TransferDate:  "2026-02-14",
		Notes:         "traslado mensual",
		Tools:         []FormLine{{ID: 1, Name: "Taladro", Quantity: 2}},
		Parts:         []FormLine{{ID: 7, Name: "Filtro", Quantity: 4}},
		Vehicles:      []int64{20, 21},
	}

	p := form.Payload()
	want := TransferPayload{
		ResponsibleID: 3,
		OriginID:      10,
		DestinationID: 11,
		TransferDate:  "2026-02-14",
		Notes:         "traslado mensual",
		Tools:         []TransferToolPayload{{ToolID: 1, Quantity: 2}},
		VehicleParts:  []TransferPartPayload{{PartID: 7, Quantity: 4}},
		VehicleIDs:    []int64{20, 21},
	}
	if !reflect.DeepEqual(p, want) {
		t.Errorf("payload mismatch:\n got %+v\nwant %+v", p, want)
	}
}

func TestFormDataFromTransferRoundTrip(t *testing.T) {
	stored := &Transfer{
		ID:            9,
		ResponsibleID: 3,
		OriginID:      10,
		DestinationID: 11,
		TransferDate:  "2026-02-14",
		Notes:         "traslado mensual",
		Status:        StatusPending,
		Tools:         []TransferTool{{ToolID: 1, Name: "Taladro", Quantity: 2}},
		VehicleParts:  []TransferPart{{PartID: 7, Name: "Filtro", Quantity: 4}},
		Vehicles:      []TransferVehicle{{VehicleID: 20, Plate: "ABC123"}},
	}

	form := FormDataFromTransfer(stored)
	p := form.Payload()

	if form.ID != 9 {
		t.Errorf("expected form id 9, got %d", form.ID)
	}
	if len(p.Tools) != 1 || p.Tools[0].ToolID != 1 || p.Tools[0].Quantity != 2 {
		t.Errorf("tool line lost in round trip: %+v", p.Tools)
	}
	if len(p.VehicleParts) != 1 || p.VehicleParts[0].PartID != 7 {
		t.Errorf("part line lost in round trip: %+v", p.VehicleParts)
	}
	if len(p.VehicleIDs) != 1 || p.VehicleIDs[0] != 20 {
		t.Errorf("vehicle lost in round trip: %+v", p.VehicleIDs)
	}
	if p.TransferDate != stored.TransferDate || p.Notes != stored.Notes {
		t.Errorf("general fields lost in round trip: %+v", p)
	}
}
