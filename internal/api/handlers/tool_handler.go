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

type ToolHandler struct {
	DB         *mongo.Database
	S3Uploader *s3.Uploader
}

type ToolRequest struct {
	Name     string             `json:"name" binding:"required"`
	Brand    string             `json:"brand"`
	Category string             `json:"category"`
	Status   *bool              `json:"status"`
	Stock    []models.SiteStock `json:"stock"`
}

// AvailableItem is the shape of the site-scoped availability lists the
// transfer wizard consumes.
type AvailableItem struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Available int    `json:"available"`
}

func (h *ToolHandler) CreateTool(c *gin.Context) {
	var req ToolRequest
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

	id, err := database.NextSequence(context.Background(), h.DB, "tools")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to allocate tool id"})
		return
	}

	status := true
	if req.Status != nil {
		status = *req.Status
	}
	if req.Stock == nil {
		req.Stock = []models.SiteStock{}
	}

	newTool := models.Tool{
		ID:        id,
		Name:      req.Name,
		Brand:     req.Brand,
		Category:  req.Category,
		Status:    status,
		Stock:     req.Stock,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if _, err := h.DB.Collection("tools").InsertOne(context.Background(), newTool); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create tool"})
		return
	}

	c.JSON(http.StatusCreated, newTool)
}

// GetAllTools returns the unscoped full tool list (status + inventory),
// which the dashboard uses to resolve names and active flags for items on
// existing drafts.
func (h *ToolHandler) GetAllTools(c *gin.Context) {
	cursor, err := h.DB.Collection("tools").Find(context.Background(), bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to query tools"})
		return
	}
	defer cursor.Close(context.Background())

	var tools []models.Tool
	if err = cursor.All(context.Background(), &tools); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to decode tools"})
		return
	}
	if tools == nil {
		tools = []models.Tool{}
	}

	c.JSON(http.StatusOK, tools)
}

// GetAvailableForTransfer returns active tools with stock at the given
// site. This is the only site-scoped tool query in the system.
func (h *ToolHandler) GetAvailableForTransfer(c *gin.Context) {
	headquarterID, err := strconv.ParseInt(c.Query("headquarterId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "headquarterId is required"})
		return
	}

	cursor, err := h.DB.Collection("tools").Find(context.Background(), bson.M{"status": true})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to query tools"})
		return
	}
	defer cursor.Close(context.Background())

	var tools []models.Tool
	if err = cursor.All(context.Background(), &tools); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to decode tools"})
		return
	}

	available := []AvailableItem{}
	for _, t := range tools {
		if qty := t.AvailableAt(headquarterID); qty > 0 {
			available = append(available, AvailableItem{ID: t.ID, Name: t.Name, Available: qty})
		}
	}

	c.JSON(http.StatusOK, available)
}

func (h *ToolHandler) GetToolByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid tool id"})
		return
	}

	var tool models.Tool
	err = h.DB.Collection("tools").FindOne(context.Background(), bson.M{"_id": id}).Decode(&tool)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Herramienta no encontrada"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve tool"})
		}
		return
	}

	c.JSON(http.StatusOK, tool)
}

func (h *ToolHandler) UpdateTool(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid tool id"})
		return
	}

	var req ToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	update := bson.M{
		"name":      req.Name,
		"brand":     req.Brand,
		"category":  req.Category,
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

	result, err := h.DB.Collection("tools").UpdateOne(context.Background(), bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update tool"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Herramienta no encontrada"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Herramienta actualizada correctamente"})
}

func (h *ToolHandler) DeleteTool(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid tool id"})
		return
	}

	ctx := context.Background()

	pending, err := h.DB.Collection("transfers").CountDocuments(ctx, bson.M{
		"status":       models.TransferStatusPending,
		"tools.toolId": id,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to check tool references"})
		return
	}
	if pending > 0 {
		c.JSON(http.StatusConflict, gin.H{"message": "La herramienta está incluida en traslados pendientes y no puede eliminarse"})
		return
	}

	result, err := h.DB.Collection("tools").DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete tool"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Herramienta no encontrada"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Herramienta eliminada correctamente"})
}

// UploadToolPhoto stores a tool image on S3 and attaches the pointer to
// the tool document.
func (h *ToolHandler) UploadToolPhoto(c *gin.Context) {
	if h.S3Uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "File storage is not configured"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid tool id"})
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

	objectKey := fmt.Sprintf("tools/%d/%s-%s", id, uuid.New().String()[:8], fileHeader.Filename)
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

	result, err := h.DB.Collection("tools").UpdateOne(context.Background(), bson.M{"_id": id}, bson.M{"$set": bson.M{
		"photo":     photo,
		"updatedAt": time.Now(),
	}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to attach photo"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Herramienta no encontrada"})
		return
	}

	c.JSON(http.StatusOK, photo)
}
