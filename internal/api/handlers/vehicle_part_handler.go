package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/kev405/toolflow/internal/database"
	"github.com/kev405/toolflow/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type VehiclePartHandler struct {
	DB *mongo.Database
}

type VehiclePartRequest struct {
	Name      string             `json:"name" binding:"required"`
	Reference string             `json:"reference"`
	Status    *bool              `json:"status"`
	Stock     []models.SiteStock `json:"stock"`
}

func (h *VehiclePartHandler) CreateVehiclePart(c *gin.Context) {
	var req VehiclePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	for _, s := range req.Stock {
		if s.Available < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "La cantidad disponible no puede ser negativa"})
			return
		}
	}

	id, err := database.NextSequence(context.Background(), h.DB, "vehicle_parts")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to allocate part id"})
		return
	}

	status := true
	if req.Status != nil {
		status = *req.Status
	}
	if req.Stock == nil {
		req.Stock = []models.SiteStock{}
	}

	newPart := models.VehiclePart{
		ID:        id,
		Name:      req.Name,
		Reference: req.Reference,
		Status:    status,
		Stock:     req.Stock,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if _, err := h.DB.Collection("vehicle_parts").InsertOne(context.Background(), newPart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create vehicle part"})
		return
	}

	c.JSON(http.StatusCreated, newPart)
}

func (h *VehiclePartHandler) GetAllVehicleParts(c *gin.Context) {
	cursor, err := h.DB.Collection("vehicle_parts").Find(context.Background(), bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to query vehicle parts"})
		return
	}
	defer cursor.Close(context.Background())

	var parts []models.VehiclePart
	if err = cursor.All(context.Background(), &parts); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to decode vehicle parts"})
		return
	}
	if parts == nil {
		parts = []models.VehiclePart{}
	}

	c.JSON(http.StatusOK, parts)
}

// GetAvailableForTransfer mirrors the scoped tool query for parts.
func (h *VehiclePartHandler) GetAvailableForTransfer(c *gin.Context) {
	headquarterID, err := strconv.ParseInt(c.Query("headquarterId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "headquarterId is required"})
		return
	}

	cursor, err := h.DB.Collection("vehicle_parts").Find(context.Background(), bson.M{"status": true})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to query vehicle parts"})
		return
	}
	defer cursor.Close(context.Background())

	var parts []models.VehiclePart
	if err = cursor.All(context.Background(), &parts); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to decode vehicle parts"})
		return
	}

	available := []AvailableItem{}
	for _, p := range parts {
		if qty := p.AvailableAt(headquarterID); qty > 0 {
			available = append(available, AvailableItem{ID: p.ID, Name: p.Name, Available: qty})
		}
	}

	c.JSON(http.StatusOK, available)
}

func (h *VehiclePartHandler) GetVehiclePartByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid part id"})
		return
	}

	var part models.VehiclePart
	err = h.DB.Collection("vehicle_parts").FindOne(context.Background(), bson.M{"_id": id}).Decode(&part)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Repuesto no encontrado"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve vehicle part"})
		}
		return
	}

	c.JSON(http.StatusOK, part)
}

func (h *VehiclePartHandler) UpdateVehiclePart(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid part id"})
		return
	}

	var req VehiclePartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	update := bson.M{
		"name":      req.Name,
		"reference": req.Reference,
		"updatedAt": time.Now(),
	}
	if req.Status != nil {
		update["status"] = *req.Status
	}
	if req.Stock != nil {
		for _, s := range req.Stock {
			if s.Available < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"message": "La cantidad disponible no puede ser negativa"})
				return
			}
		}
		update["stock"] = req.Stock
	}

	result, err := h.DB.Collection("vehicle_parts").UpdateOne(context.Background(), bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update vehicle part"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Repuesto no encontrado"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Repuesto actualizado correctamente"})
}

func (h *VehiclePartHandler) DeleteVehiclePart(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid part id"})
		return
	}

	ctx := context.Background()

	pending, err := h.DB.Collection("transfers").CountDocuments(ctx, bson.M{
		"status":              models.TransferStatusPending,
		"vehicleParts.partId": id,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to check part references"})
		return
	}
	if pending > 0 {
		c.JSON(http.StatusConflict, gin.H{"message": "El repuesto está incluido en traslados pendientes y no puede eliminarse"})
		return
	}

	result, err := h.DB.Collection("vehicle_parts").DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete vehicle part"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Repuesto no encontrado"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Repuesto eliminado correctamente"})
}
