package models

import "time"

// Tool is a fungible inventory item with per-site stock. Status is an
// active/inactive flag independent of quantity: an inactive tool stays
// visible on existing records but is not a valid target for new operations.
type Tool struct {
	ID        int64         `bson:"_id" json:"id"`
	Name      string        `bson:"name" json:"name"`
	Brand     string        `bson:"brand" json:"brand"`
	Category  string        `bson:"category" json:"category"`
	Status    bool          `bson:"status" json:"status"`
	Stock     []SiteStock   `bson:"stock" json:"stock"`
	Photo     *MediaPointer `bson:"photo,omitempty" json:"photo,omitempty"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// AvailableAt returns the stock available at the given site.
func (t *Tool) AvailableAt(headquarterID int64) int {
	for _, s := range t.Stock {
		if s.HeadquarterID == headquarterID {
			return s.Available
		}
	}
	return 0
}

// TotalAvailable sums the stock across all sites.
func (t *Tool) TotalAvailable() int {
	total := 0
	for _, s := range t.Stock {
		total += s.Available
	}
	return total
}

// AdjustStock adds delta to the stock entry for the site, creating the
// entry when missing. Returns false if the adjustment would go negative.
func (t *Tool) AdjustStock(headquarterID int64, delta int) bool {
	for i := range t.Stock {
		if t.Stock[i].HeadquarterID == headquarterID {
			if t.Stock[i].Available+delta < 0 {
				return false
			}
			t.Stock[i].Available += delta
			return true
		}
	}
	if delta < 0 {
		return false
	}
	t.Stock = append(t.Stock, SiteStock{HeadquarterID: headquarterID, Available: delta})
	return true
}
