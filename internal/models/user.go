package models

import "time"

// Roles known to the route authorization table.
const (
	RoleAdministrator = "ADMINISTRATOR"
	RoleCoordinator   = "COORDINATOR"
	RoleAssistant     = "ASSISTANT"
)

type User struct {
	ID            int64     `bson:"_id" json:"id"`
	Email         string    `bson:"email" json:"email"`
	Name          string    `bson:"name" json:"name"`
	Document      string    `bson:"document" json:"document"`
	Password      string    `bson:"password" json:"-"`
	Role          string    `bson:"role" json:"role"`
	HeadquarterID int64     `bson:"headquarterId" json:"headquarterId"`
	Status        bool      `bson:"status" json:"status"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`
}
