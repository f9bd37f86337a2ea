package models

import "time"

// Vehicle is a non-fungible asset stationed at one headquarters at a time.
// It is available for transfer when active, stationed at the origin site and
// not already committed to a pending transfer.
type Vehicle struct {
	ID            int64         `bson:"_id" json:"id"`
	Plate         string        `bson:"plate" json:"plate"`
	Model         string        `bson:"model" json:"model"`
	Brand         string        `bson:"brand" json:"brand"`
	HeadquarterID int64         `bson:"headquarterId" json:"headquarterId"`
	Status        bool          `bson:"status" json:"status"`
	Photo         *MediaPointer `bson:"photo,omitempty" json:"photo,omitempty"`
	CreatedAt     time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time     `bson:"updatedAt" json:"updatedAt"`
}
