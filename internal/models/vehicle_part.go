package models

import "time"

// VehiclePart is a fungible spare part tracked per site, same stock
// semantics as Tool.
type VehiclePart struct {
	ID        int64       `bson:"_id" json:"id"`
	Name      string      `bson:"name" json:"name"`
	Reference string      `bson:"reference" json:"reference"`
	Status    bool        `bson:"status" json:"status"`
	Stock     []SiteStock `bson:"stock" json:"stock"`
	CreatedAt time.Time   `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time   `bson:"updatedAt" json:"updatedAt"`
}

func (p *VehiclePart) AvailableAt(headquarterID int64) int {
	for _, s := range p.Stock {
		if s.HeadquarterID == headquarterID {
			return s.Available
		}
	}
	return 0
}

func (p *VehiclePart) TotalAvailable() int {
	total := 0
	for _, s := range p.Stock {
		total += s.Available
	}
	return total
}

func (p *VehiclePart) AdjustStock(headquarterID int64, delta int) bool {
	for i := range p.Stock {
		if p.Stock[i].HeadquarterID == headquarterID {
			if p.Stock[i].Available+delta < 0 {
				return false
			}
			p.Stock[i].Available += delta
			return true
		}
	}
	if delta < 0 {
		return false
	}
	p.Stock = append(p.Stock, SiteStock{HeadquarterID: headquarterID, Available: delta})
	return true
}
