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

type HeadquarterHandler struct {
	DB *mongo.Database
}

type HeadquarterRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address" binding:"required"`
	Phone   string `json:"phone"`
	Status  *bool  `json:"status"`
}

func (h *HeadquarterHandler) CreateHeadquarter(c *gin.Context) {
	var req HeadquarterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	collection := h.DB.Collection("headquarters")

	count, err := collection.CountDocuments(context.Background(), bson.M{"name": req.Name})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error checking for headquarter"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"message": "Ya existe una sede con este nombre"})
		return
	}

	id, err := database.NextSequence(context.Background(), h.DB, "headquarters")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to allocate headquarter id"})
		return
	}

	status := true
	if req.Status != nil {
		status = *req.Status
	}

	newHeadquarter := models.Headquarter{
		ID:        id,
		Name:      req.Name,
		Address:   req.Address,
		Phone:     req.Phone,
		Status:    status,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if _, err := collection.InsertOne(context.Background(), newHeadquarter); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create headquarter"})
		return
	}

	c.JSON(http.StatusCreated, newHeadquarter)
}

func (h *HeadquarterHandler) GetAllHeadquarters(c *gin.Context) {
	cursor, err := h.DB.Collection("headquarters").Find(context.Background(), bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to query headquarters"})
		return
	}
	defer cursor.Close(context.Background())

	var headquarters []models.Headquarter
	if err = cursor.All(context.Background(), &headquarters); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to decode headquarters"})
		return
	}
	if headquarters == nil {
		headquarters = []models.Headquarter{}
	}

	c.JSON(http.StatusOK, headquarters)
}

func (h *HeadquarterHandler) GetHeadquarterByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid headquarter id"})
		return
	}

	var headquarter models.Headquarter
	err = h.DB.Collection("headquarters").FindOne(context.Background(), bson.M{"_id": id}).Decode(&headquarter)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Sede no encontrada"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve headquarter"})
		}
		return
	}

	c.JSON(http.StatusOK, headquarter)
}

func (h *HeadquarterHandler) UpdateHeadquarter(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid headquarter id"})
		return
	}

	var req HeadquarterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	update := bson.M{
		"name":      req.Name,
		"address":   req.Address,
		"phone":     req.Phone,
		"updatedAt": time.Now(),
	}
	if req.Status != nil {
		update["status"] = *req.Status
	}

	result, err := h.DB.Collection("headquarters").UpdateOne(context.Background(), bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update headquarter"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Sede no encontrada"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Sede actualizada correctamente"})
}

// DeleteHeadquarter refuses to remove a site still referenced by stock,
// stationed vehicles or pending transfers.
func (h *HeadquarterHandler) DeleteHeadquarter(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid headquarter id"})
		return
	}

	ctx := context.Background()

	inUse, err := h.DB.Collection("tools").CountDocuments(ctx, bson.M{"stock": bson.M{"$elemMatch": bson.M{"headquarterId": id, "available": bson.M{"$gt": 0}}}})
	if err == nil && inUse == 0 {
		inUse, err = h.DB.Collection("vehicles").CountDocuments(ctx, bson.M{"headquarterId": id})
	}
	if err == nil && inUse == 0 {
		inUse, err = h.DB.Collection("transfers").CountDocuments(ctx, bson.M{
			"status": models.TransferStatusPending,
			"$or":    []bson.M{{"originId": id}, {"destinationId": id}},
		})
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to check headquarter references"})
		return
	}
	if inUse > 0 {
		c.JSON(http.StatusConflict, gin.H{"message": "La sede tiene inventario o traslados pendientes y no puede eliminarse"})
		return
	}

	result, err := h.DB.Collection("headquarters").DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete headquarter"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Sede no encontrada"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Sede eliminada correctamente"})
}
