package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/kev405/toolflow/internal/database"
	"github.com/kev405/toolflow/internal/models"
	"github.com/kev405/toolflow/internal/s3"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type VehicleHandler struct {
	DB         *mongo.Database
	S3Uploader *s3.Uploader
}

type VehicleRequest struct {
	Plate         string `json:"plate" binding:"required"`
	Model         string `json:"model" binding:"required"`
	Brand         string `json:"brand"`
	HeadquarterID int64  `json:"headquarterId" binding:"required"`
	Status        *bool  `json:"status"`
}

// AvailableVehicle is the scoped-availability shape for whole vehicles.
type AvailableVehicle struct {
	ID    int64  `json:"id"`
	Plate string `json:"plate"`
	Model string `json:"model"`
}

func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	var req VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	collection := h.DB.Collection("vehicles")

	count, err := collection.CountDocuments(context.Background(), bson.M{"plate": req.Plate})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error checking for vehicle"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"message": "Ya existe un vehículo con esta placa"})
		return
	}

	hqCount, err := h.DB.Collection("headquarters").CountDocuments(context.Background(), bson.M{"_id": req.HeadquarterID})
	if err != nil || hqCount == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "La sede indicada no existe"})
		return
	}

	id, err := database.NextSequence(context.Background(), h.DB, "vehicles")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to allocate vehicle id"})
		return
	}

	status := true
	if req.Status != nil {
		status = *req.Status
	}

	newVehicle := models.Vehicle{
		ID:            id,
		Plate:         req.Plate,
		Model:         req.Model,
		Brand:         req.Brand,
		HeadquarterID: req.HeadquarterID,
		Status:        status,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if _, err := collection.InsertOne(context.Background(), newVehicle); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create vehicle"})
		return
	}

	c.JSON(http.StatusCreated, newVehicle)
}

func (h *VehicleHandler) GetAllVehicles(c *gin.Context) {
	cursor, err := h.DB.Collection("vehicles").Find(context.Background(), bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to query vehicles"})
		return
	}
	defer cursor.Close(context.Background())

	var vehicles []models.Vehicle
	if err = cursor.All(context.Background(), &vehicles); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to decode vehicles"})
		return
	}
	if vehicles == nil {
		vehicles = []models.Vehicle{}
	}

	c.JSON(http.StatusOK, vehicles)
}

// GetAvailableForTransfer returns active vehicles stationed at the site
// that are not already committed to a pending transfer.
func (h *VehicleHandler) GetAvailableForTransfer(c *gin.Context) {
	headquarterID, err := strconv.ParseInt(c.Query("headquarterId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "headquarterId is required"})
		return
	}

	ctx := context.Background()

	// Vehicles already on a pending transfer are committed.
	cursor, err := h.DB.Collection("transfers").Find(ctx, bson.M{"status": models.TransferStatusPending})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to query pending transfers"})
		return
	}
	var pending []models.Transfer
	if err = cursor.All(ctx, &pending); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to decode pending transfers"})
		return
	}
	committed := map[int64]bool{}
	for _, t := range pending {
		for _, v := range t.Vehicles {
			committed[v.VehicleID] = true
		}
	}

	cursor, err = h.DB.Collection("vehicles").Find(ctx, bson.M{"headquarterId": headquarterID, "status": true})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to query vehicles"})
		return
	}
	defer cursor.Close(ctx)

	var vehicles []models.Vehicle
	if err = cursor.All(ctx, &vehicles); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to decode vehicles"})
		return
	}

	available := []AvailableVehicle{}
	for _, v := range vehicles {
		if !committed[v.ID] {
			available = append(available, AvailableVehicle{ID: v.ID, Plate: v.Plate, Model: v.Model})
		}
	}

	c.JSON(http.StatusOK, available)
}

func (h *VehicleHandler) GetVehicleByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid vehicle id"})
		return
	}

	var vehicle models.Vehicle
	err = h.DB.Collection("vehicles").FindOne(context.Background(), bson.M{"_id": id}).Decode(&vehicle)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Vehículo no encontrado"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve vehicle"})
		}
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid vehicle id"})
		return
	}

	var req VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	update := bson.M{
		"plate":         req.Plate,
		"model":         req.Model,
		"brand":         req.Brand,
		"headquarterId": req.HeadquarterID,
		"updatedAt":     time.Now(),
	}
	if req.Status != nil {
		update["status"] = *req.Status
	}

	result, err := h.DB.Collection("vehicles").UpdateOne(context.Background(), bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update vehicle"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Vehículo no encontrado"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vehículo actualizado correctamente"})
}

func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid vehicle id"})
		return
	}

	ctx := context.Background()

	pending, err := h.DB.Collection("transfers").CountDocuments(ctx, bson.M{
		"status":             models.TransferStatusPending,
		"vehicles.vehicleId": id,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to check vehicle references"})
		return
	}
	if pending > 0 {
		c.JSON(http.StatusConflict, gin.H{"message": "El vehículo está incluido en traslados pendientes y no puede eliminarse"})
		return
	}

	result, err := h.DB.Collection("vehicles").DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete vehicle"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Vehículo no encontrado"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vehículo eliminado correctamente"})
}

// UploadVehiclePhoto stores a vehicle image on S3 and attaches the pointer
// to the vehicle document.
func (h *VehicleHandler) UploadVehiclePhoto(c *gin.Context) {
	if h.S3Uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "File storage is not configured"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid vehicle id"})
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "photo file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to open uploaded file"})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectKey := fmt.Sprintf("vehicles/%d/%s-%s", id, uuid.New().String()[:8], fileHeader.Filename)
	url, err := h.S3Uploader.UploadFile(c.Request.Context(), file, objectKey, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to upload photo"})
		return
	}

	photo := models.MediaPointer{
		ID:       uuid.New().String(),
		URL:      url,
		FileName: fileHeader.Filename,
		FileType: contentType,
	}

	result, err := h.DB.Collection("vehicles").UpdateOne(context.Background(), bson.M{"_id": id}, bson.M{"$set": bson.M{
		"photo":     photo,
		"updatedAt": time.Now(),
	}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to attach photo"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Vehículo no encontrado"})
		return
	}

	c.JSON(http.StatusOK, photo)
}
