package client

import "time"

// Headquarter mirrors the server's site resource.
type Headquarter struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Status  bool   `json:"status"`
}

// UserProfile is the serialized profile kept in the session store.
type UserProfile struct {
	ID            int64  `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Role          string `json:"role"`
	HeadquarterID int64  `json:"headquarterId"`
}

// SiteStock is a per-site availability entry on a catalog item.
type SiteStock struct {
	HeadquarterID int64 `json:"headquarterId"`
	Available     int   `json:"available"`
}

// CatalogItem is the unscoped full-list shape shared by tools and vehicle
// parts: name, active flag and per-site stock.
type CatalogItem struct {
	ID     int64       `json:"id"`
	Name   string      `json:"name"`
	Status bool        `json:"status"`
	Stock  []SiteStock `json:"stock"`
}

// AvailableAt returns the stock the full list reports for one site.
func (i *CatalogItem) AvailableAt(headquarterID int64) int {
	for _, s := range i.Stock {
		if s.HeadquarterID == headquarterID {
			return s.Available
		}
	}
	return 0
}

// CatalogVehicle is the unscoped vehicle list entry.
type CatalogVehicle struct {
	ID            int64  `json:"id"`
	Plate         string `json:"plate"`
	Model         string `json:"model"`
	Status        bool   `json:"status"`
	HeadquarterID int64  `json:"headquarterId"`
}

// AvailableItem is one entry of a site-scoped availability list.
type AvailableItem struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Available int    `json:"available"`
}

// AvailableVehicle is one entry of the site-scoped vehicle list.
type AvailableVehicle struct {
	ID    int64  `json:"id"`
	Plate string `json:"plate"`
	Model string `json:"model"`
}

// Transfer statuses as persisted by the backend.
const (
	StatusPending   = "PENDING"
	StatusAccepted  = "ACCEPTED"
	StatusCancelled = "CANCELLED"
)

type TransferTool struct {
	ToolID   int64  `json:"toolId"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type TransferPart struct {
	PartID   int64  `json:"partId"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type TransferVehicle struct {
	VehicleID int64  `json:"vehicleId"`
	Plate     string `json:"plate"`
}

// Transfer is a persisted transfer record.
type Transfer struct {
	ID            int64             `json:"id"`
	ResponsibleID int64             `json:"responsibleId"`
	OriginID      int64             `json:"originId"`
	DestinationID int64             `json:"destinationId"`
	TransferDate  string            `json:"transferDate"`
	Notes         string            `json:"notes,omitempty"`
	Status        string            `json:"status"`
	Tools         []TransferTool    `json:"tools"`
	VehicleParts  []TransferPart    `json:"vehicleParts"`
	Vehicles      []TransferVehicle `json:"vehicles"`
	CreatedAt     time.Time         `json:"createdAt"`
}

// TransferPage is the server's pagination envelope for transfers.
type TransferPage struct {
	Content       []Transfer `json:"content"`
	TotalElements int64      `json:"totalElements"`
	TotalPages    int64      `json:"totalPages"`
	Page          int64      `json:"page"`
	Size          int64      `json:"size"`
}

// TransferToolPayload and friends are the wire shape for create/update,
// distinct from the form's line shape (id vs toolId/partId).
type TransferToolPayload struct {
	ToolID   int64 `json:"toolId"`
	Quantity int   `json:"quantity"`
}

type TransferPartPayload struct {
	PartID   int64 `json:"partId"`
	Quantity int   `json:"quantity"`
}

type TransferPayload struct {
	ResponsibleID int64                 `json:"responsibleId"`
	OriginID      int64                 `json:"originId"`
	DestinationID int64                 `json:"destinationId"`
	TransferDate  string                `json:"transferDate"`
	Notes         string                `json:"notes,omitempty"`
	Tools         []TransferToolPayload `json:"tools"`
	VehicleParts  []TransferPartPayload `json:"vehicleParts"`
	VehicleIDs    []int64               `json:"vehicleIds"`
}
