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

type LoanHandler struct {
	DB *mongo.Database
}

type CreateLoanRequest struct {
	ToolID        int64      `json:"toolId" binding:"required"`
	ResponsibleID int64      `json:"responsibleId" binding:"required"`
	HeadquarterID int64      `json:"headquarterId" binding:"required"`
	Quantity      int        `json:"quantity" binding:"required,min=1"`
	Notes         string     `json:"notes"`
	DueDate       *time.Time `json:"dueDate"`
}

// CreateLoan lends a quantity of a tool to a responsible user, taking the
// stock from the site.
func (h *LoanHandler) CreateLoan(c *gin.Context) {
	var req CreateLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	ctx := context.Background()

	var tool models.Tool
	if err := h.DB.Collection("tools").FindOne(ctx, bson.M{"_id": req.ToolID}).Decode(&tool); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Herramienta no encontrada"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve tool"})
		}
		return
	}

	if !tool.Status {
		c.JSON(http.StatusConflict, gin.H{"message": "La herramienta '" + tool.Name + "' está inactiva"})
		return
	}

	available := tool.AvailableAt(req.HeadquarterID)
	if req.Quantity > available {
		c.JSON(http.StatusConflict, gin.H{
			"message": "La cantidad solicitada de '" + tool.Name + "' supera la disponible (" +
				strconv.Itoa(req.Quantity) + " > " + strconv.Itoa(available) + ")",
		})
		return
	}

	responsibleCount, err := h.DB.Collection("users").CountDocuments(ctx, bson.M{"_id": req.ResponsibleID})
	if err != nil || responsibleCount == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "El responsable indicado no existe"})
		return
	}

	tool.AdjustStock(req.HeadquarterID, -req.Quantity)
	if _, err := h.DB.Collection("tools").UpdateOne(ctx, bson.M{"_id": tool.ID}, bson.M{"$set": bson.M{
		"stock":     tool.Stock,
		"updatedAt": time.Now(),
	}}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update tool stock"})
		return
	}

	id, err := database.NextSequence(ctx, h.DB, "loans")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to allocate loan id"})
		return
	}

	newLoan := models.Loan{
		ID:            id,
		ToolID:        req.ToolID,
		ToolName:      tool.Name,
		ResponsibleID: req.ResponsibleID,
		HeadquarterID: req.HeadquarterID,
		Quantity:      req.Quantity,
		Notes:         req.Notes,
		LoanDate:      time.Now(),
		DueDate:       req.DueDate,
		Status:        models.LoanStatusActive,
		CreatedAt:     time.Now(),
	}

	if _, err := h.DB.Collection("loans").InsertOne(ctx, newLoan); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create loan"})
		return
	}

	c.JSON(http.StatusCreated, newLoan)
}

// GetAllLoans lists loans, optionally filtered by status, responsible or site.
func (h *LoanHandler) GetAllLoans(c *gin.Context) {
	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}
	if responsible := c.Query("responsibleId"); responsible != "" {
		if id, err := strconv.ParseInt(responsible, 10, 64); err == nil {
			filter["responsibleId"] = id
		}
	}
	if hq := c.Query("headquarterId"); hq != "" {
		if id, err := strconv.ParseInt(hq, 10, 64); err == nil {
			filter["headquarterId"] = id
		}
	}

	cursor, err := h.DB.Collection("loans").Find(context.Background(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to query loans"})
		return
	}
	defer cursor.Close(context.Background())

	var loans []models.Loan
	if err = cursor.All(context.Background(), &loans); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to decode loans"})
		return
	}
	if loans == nil {
		loans = []models.Loan{}
	}

	c.JSON(http.StatusOK, loans)
}

func (h *LoanHandler) GetLoanByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid loan id"})
		return
	}

	var loan models.Loan
	err = h.DB.Collection("loans").FindOne(context.Background(), bson.M{"_id": id}).Decode(&loan)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Préstamo no encontrado"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve loan"})
		}
		return
	}

	c.JSON(http.StatusOK, loan)
}

// ReturnLoan closes an active loan and puts the stock back at the site.
func (h *LoanHandler) ReturnLoan(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid loan id"})
		return
	}

	ctx := context.Background()

	var loan models.Loan
	if err := h.DB.Collection("loans").FindOne(ctx, bson.M{"_id": id}).Decode(&loan); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Préstamo no encontrado"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve loan"})
		}
		return
	}

	if loan.Status != models.LoanStatusActive {
		c.JSON(http.StatusConflict, gin.H{"message": "El préstamo ya fue devuelto"})
		return
	}

	var tool models.Tool
	if err := h.DB.Collection("tools").FindOne(ctx, bson.M{"_id": loan.ToolID}).Decode(&tool); err == nil {
		tool.AdjustStock(loan.HeadquarterID, loan.Quantity)
		if _, err := h.DB.Collection("tools").UpdateOne(ctx, bson.M{"_id": tool.ID}, bson.M{"$set": bson.M{
			"stock":     tool.Stock,
			"updatedAt": time.Now(),
		}}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to restore tool stock"})
			return
		}
	}

	now := time.Now()
	if _, err := h.DB.Collection("loans").UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"status":     models.LoanStatusReturned,
		"returnedAt": now,
	}}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update loan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Préstamo devuelto correctamente"})
}

// DeleteLoan removes a returned loan record. Active loans must be returned
// first so the stock is restored.
func (h *LoanHandler) DeleteLoan(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid loan id"})
		return
	}

	var loan models.Loan
	if err := h.DB.Collection("loans").FindOne(context.Background(), bson.M{"_id": id}).Decode(&loan); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Préstamo no encontrado"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve loan"})
		}
		return
	}

	if loan.Status == models.LoanStatusActive {
		c.JSON(http.StatusConflict, gin.H{"message": "El préstamo está activo; debe devolverse antes de eliminarse"})
		return
	}

	if _, err := h.DB.Collection("loans").DeleteOne(context.Background(), bson.M{"_id": id}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete loan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Préstamo eliminado correctamente"})
}
