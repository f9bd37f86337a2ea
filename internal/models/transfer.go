package models

import "time"

// Transfer lifecycle statuses. PENDING moves to ACCEPTED or CANCELLED
// exactly once and never reverts.
const (
	TransferStatusPending   = "PENDING"
	TransferStatusAccepted  = "ACCEPTED"
	TransferStatusCancelled = "CANCELLED"
)

// MaxTransferNotesLen bounds the free-text notes field.
const MaxTransferNotesLen = 200

// TransferTool is a quantity of a tool moved between sites. The name is
// denormalized so persisted transfers stay renderable when the tool changes.
type TransferTool struct {
	ToolID   int64  `bson:"toolId" json:"toolId"`
	Name     string `bson:"name" json:"name"`
	Quantity int    `bson:"quantity" json:"quantity"`
}

type TransferPart struct {
	PartID   int64  `bson:"partId" json:"partId"`
	Name     string `bson:"name" json:"name"`
	Quantity int    `bson:"quantity" json:"quantity"`
}

// TransferVehicle references a whole vehicle included in a transfer,
// quantity always 1.
type TransferVehicle struct {
	VehicleID int64  `bson:"vehicleId" json:"vehicleId"`
	Plate     string `bson:"plate" json:"plate"`
}

// Transfer is a request to move inventory between two headquarters.
type Transfer struct {
	ID            int64             `bson:"_id" json:"id"`
	ResponsibleID int64             `bson:"responsibleId" json:"responsibleId"`
	OriginID      int64             `bson:"originId" json:"originId"`
	DestinationID int64             `bson:"destinationId" json:"destinationId"`
	TransferDate  string            `bson:"transferDate" json:"transferDate"` // YYYY-MM-DD
	Notes         string            `bson:"notes,omitempty" json:"notes,omitempty"`
	Status        string            `bson:"status" json:"status"`
	Tools         []TransferTool    `bson:"tools" json:"tools"`
	VehicleParts  []TransferPart    `bson:"vehicleParts" json:"vehicleParts"`
	Vehicles      []TransferVehicle `bson:"vehicles" json:"vehicles"`
	CreatedBy     int64             `bson:"createdBy" json:"createdBy"`
	CreatedAt     time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// Empty reports whether the transfer carries no items at all.
func (t *Transfer) Empty() bool {
	return len(t.Tools) == 0 && len(t.VehicleParts) == 0 && len(t.Vehicles) == 0
}

// CanTransition reports whether the transfer may move to the target status.
// Only PENDING transfers transition, and only to ACCEPTED or CANCELLED.
func (t *Transfer) CanTransition(target string) bool {
	if t.Status != TransferStatusPending {
		return false
	}
	return target == TransferStatusAccepted || target == TransferStatusCancelled
}

// Mutable reports whether the record may still be edited.
func (t *Transfer) Mutable() bool {
	return t.Status == TransferStatusPending
}
