package database

import (
	"context"
	"log"
	"time"

	"github.com/kev405/toolflow/internal/auth"
	"github.com/kev405/toolflow/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const adminEmail = "admin@toolflow.local"

// SeedAdmin creates the initial administrator account if no user carries
// the administrator role yet.
func SeedAdmin(db *mongo.Database) error {
	users := db.Collection("users")

	count, err := users.CountDocuments(context.Background(), bson.M{"role": models.RoleAdministrator})
	if err != nil {
		return err
	}
	if count > 0 {
		log.Println("Administrator already exists. Seeding skipped.")
		return nil
	}

	log.Println("Administrator not found. Seeding...")
	hashedPassword, err := auth.HashPassword("admin123")
	if err != nil {
		return err
	}

	id, err := NextSequence(context.Background(), db, "users")
	if err != nil {
		return err
	}

	admin := models.User{
		ID:        id,
		Email:     adminEmail,
		Name:      "Administrador",
		Password:  hashedPassword,
		Role:      models.RoleAdministrator,
		Status:    true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if _, err := users.InsertOne(context.Background(), admin); err != nil {
		return err
	}

	log.Println("Administrator seeded successfully.")
	return nil
}
