package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/kev405/toolflow/internal/database"
	"github.com/kev405/toolflow/internal/models"
	"github.com/kev405/toolflow/internal/socket"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TransferHandler struct {
	DB  *mongo.Database
	Hub *socket.Hub
}

type TransferToolPayload struct {
	ToolID   int64 `json:"toolId" binding:"required"`
	Quantity int   `json:"quantity" binding:"required,min=1"`
}

type TransferPartPayload struct {
	PartID   int64 `json:"partId" binding:"required"`
	Quantity int   `json:"quantity" binding:"required,min=1"`
}

type TransferPayload struct {
	ResponsibleID int64                 `json:"responsibleId" binding:"required"`
	OriginID      int64                 `json:"originId" binding:"required"`
	DestinationID int64                 `json:"destinationId" binding:"required"`
	TransferDate  string                `json:"transferDate" binding:"required"`
	Notes         string                `json:"notes"`
	Tools         []TransferToolPayload `json:"tools"`
	VehicleParts  []TransferPartPayload `json:"vehicleParts"`
	VehicleIDs    []int64               `json:"vehicleIds"`
}

// Sortable fields accepted by the list endpoint.
var transferSortFields = map[string]string{
	"id":            "_id",
	"transferDate":  "transferDate",
	"createdAt":     "createdAt",
	"originId":      "originId",
	"destinationId": "destinationId",
	"status":        "status",
}

// validateTransferPayload checks the payload against authoritative state
// and returns the enriched line collections. excludeID skips the transfer
// being updated when checking vehicle commitments.
func (h *TransferHandler) validateTransferPayload(ctx context.Context, payload TransferPayload, excludeID int64) ([]models.TransferTool, []models.TransferPart, []models.TransferVehicle, int, string) {
	if payload.OriginID == payload.DestinationID {
		return nil, nil, nil, http.StatusBadRequest, "La sede de origen y la de destino no pueden ser la misma"
	}
	if utf8.RuneCountInString(payload.Notes) > models.MaxTransferNotesLen {
		return nil, nil, nil, http.StatusBadRequest, "Las observaciones no pueden superar los 200 caracteres"
	}
	if _, err := time.Parse("2006-01-02", payload.TransferDate); err != nil {
		return nil, nil, nil, http.StatusBadRequest, "Fecha de traslado inválida"
	}
	if len(payload.Tools) == 0 && len(payload.VehicleParts) == 0 && len(payload.VehicleIDs) == 0 {
		return nil, nil, nil, http.StatusBadRequest, "El traslado debe incluir al menos un ítem"
	}

	for _, hqID := range []int64{payload.OriginID, payload.DestinationID} {
		count, err := h.DB.Collection("headquarters").CountDocuments(ctx, bson.M{"_id": hqID})
		if err != nil {
			return nil, nil, nil, http.StatusInternalServerError, "Failed to check headquarters"
		}
		if count == 0 {
			return nil, nil, nil, http.StatusBadRequest, "La sede indicada no existe"
		}
	}

	count, err := h.DB.Collection("users").CountDocuments(ctx, bson.M{"_id": payload.ResponsibleID})
	if err != nil || count == 0 {
		return nil, nil, nil, http.StatusBadRequest, "El responsable indicado no existe"
	}

	tools := []models.TransferTool{}
	for _, line := range payload.Tools {
		var tool models.Tool
		if err := h.DB.Collection("tools").FindOne(ctx, bson.M{"_id": line.ToolID}).Decode(&tool); err != nil {
			return nil, nil, nil, http.StatusBadRequest, fmt.Sprintf("La herramienta con ID %d no existe", line.ToolID)
		}
		if !tool.Status {
			return nil, nil, nil, http.StatusConflict, fmt.Sprintf("La herramienta '%s' está inactiva", tool.Name)
		}
		if available := tool.AvailableAt(payload.OriginID); line.Quantity > available {
			return nil, nil, nil, http.StatusConflict, fmt.Sprintf("La cantidad solicitada de '%s' supera la disponible (%d > %d)", tool.Name, line.Quantity, available)
		}
		tools = append(tools, models.TransferTool{ToolID: tool.ID, Name: tool.Name, Quantity: line.Quantity})
	}

	parts := []models.TransferPart{}
	for _, line := range payload.VehicleParts {
		var part models.VehiclePart
		if err := h.DB.Collection("vehicle_parts").FindOne(ctx, bson.M{"_id": line.PartID}).Decode(&part); err != nil {
			return nil, nil, nil, http.StatusBadRequest, fmt.Sprintf("El repuesto con ID %d no existe", line.PartID)
		}
		if !part.Status {
			return nil, nil, nil, http.StatusConflict, fmt.Sprintf("El repuesto '%s' está inactivo", part.Name)
		}
		if available := part.AvailableAt(payload.OriginID); line.Quantity > available {
			return nil, nil, nil, http.StatusConflict, fmt.Sprintf("La cantidad solicitada de '%s' supera la disponible (%d > %d)", part.Name, line.Quantity, available)
		}
		parts = append(parts, models.TransferPart{PartID: part.ID, Name: part.Name, Quantity: line.Quantity})
	}

	vehicles := []models.TransferVehicle{}
	for _, vehicleID := range payload.VehicleIDs {
		var vehicle models.Vehicle
		if err := h.DB.Collection("vehicles").FindOne(ctx, bson.M{"_id": vehicleID}).Decode(&vehicle); err != nil {
			return nil, nil, nil, http.StatusBadRequest, fmt.Sprintf("El vehículo con ID %d no existe", vehicleID)
		}
		if !vehicle.Status {
			return nil, nil, nil, http.StatusConflict, fmt.Sprintf("El vehículo '%s' está inactivo", vehicle.Plate)
		}
		if vehicle.HeadquarterID != payload.OriginID {
			return nil, nil, nil, http.StatusConflict, fmt.Sprintf("El vehículo '%s' no se encuentra en la sede de origen", vehicle.Plate)
		}

		committedFilter := bson.M{
			"status":             models.TransferStatusPending,
			"vehicles.vehicleId": vehicleID,
		}
		if excludeID != 0 {
			committedFilter["_id"] = bson.M{"$ne": excludeID}
		}
		committed, err := h.DB.Collection("transfers").CountDocuments(ctx, committedFilter)
		if err != nil {
			return nil, nil, nil, http.StatusInternalServerError, "Failed to check vehicle commitments"
		}
		if committed > 0 {
			return nil, nil, nil, http.StatusConflict, fmt.Sprintf("El vehículo '%s' ya está incluido en otro traslado pendiente", vehicle.Plate)
		}

		vehicles = append(vehicles, models.TransferVehicle{VehicleID: vehicle.ID, Plate: vehicle.Plate})
	}

	return tools, parts, vehicles, 0, ""
}

// CreateTransfer persists a new PENDING transfer after full validation.
func (h *TransferHandler) CreateTransfer(c *gin.Context) {
	var payload TransferPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	ctx := context.Background()

	tools, parts, vehicles, status, msg := h.validateTransferPayload(ctx, payload, 0)
	if msg != "" {
		c.JSON(status, gin.H{"message": msg})
		return
	}

	id, err := database.NextSequence(ctx, h.DB, "transfers")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to allocate transfer id"})
		return
	}

	newTransfer := models.Transfer{
		ID:            id,
		ResponsibleID: payload.ResponsibleID,
		OriginID:      payload.OriginID,
		DestinationID: payload.DestinationID,
		TransferDate:  payload.TransferDate,
		Notes:         payload.Notes,
		Status:        models.TransferStatusPending,
		Tools:         tools,
		VehicleParts:  parts,
		Vehicles:      vehicles,
		CreatedBy:     c.GetInt64("user_id"),
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if _, err := h.DB.Collection("transfers").InsertOne(ctx, newTransfer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create transfer"})
		return
	}

	if h.Hub != nil {
		h.Hub.Broadcast(socket.TransferEvent{Type: "TRANSFER_CREATED", TransferID: id})
	}

	c.JSON(http.StatusCreated, newTransfer)
}

// UpdateTransfer replaces the draft of a still-PENDING transfer.
func (h *TransferHandler) UpdateTransfer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid transfer id"})
		return
	}

	var payload TransferPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	ctx := context.Background()

	var transfer models.Transfer
	if err := h.DB.Collection("transfers").FindOne(ctx, bson.M{"_id": id}).Decode(&transfer); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Traslado no encontrado"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve transfer"})
		}
		return
	}

	if !transfer.Mutable() {
		c.JSON(http.StatusConflict, gin.H{"message": "El traslado ya fue aceptado o cancelado y no puede modificarse"})
		return
	}

	tools, parts, vehicles, status, msg := h.validateTransferPayload(ctx, payload, id)
	if msg != "" {
		c.JSON(status, gin.H{"message": msg})
		return
	}

	if _, err := h.DB.Collection("transfers").UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"responsibleId": payload.ResponsibleID,
		"originId":      payload.OriginID,
		"destinationId": payload.DestinationID,
		"transferDate":  payload.TransferDate,
		"notes":         payload.Notes,
		"tools":         tools,
		"vehicleParts":  parts,
		"vehicles":      vehicles,
		"updatedAt":     time.Now(),
	}}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update transfer"})
		return
	}

	if h.Hub != nil {
		h.Hub.Broadcast(socket.TransferEvent{Type: "TRANSFER_UPDATED", TransferID: id})
	}

	c.JSON(http.StatusOK, gin.H{"message": "Traslado actualizado correctamente"})
}

// AcceptTransfer moves the stock and marks the transfer ACCEPTED. The
// server re-checks availability here; the dashboard's pre-flight is only a
// UX shortcut.
func (h *TransferHandler) AcceptTransfer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid transfer id"})
		return
	}

	ctx := context.Background()

	var transfer models.Transfer
	if err := h.DB.Collection("transfers").FindOne(ctx, bson.M{"_id": id}).Decode(&transfer); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Traslado no encontrado"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve transfer"})
		}
		return
	}

	if !transfer.CanTransition(models.TransferStatusAccepted) {
		c.JSON(http.StatusConflict, gin.H{"message": "El traslado ya fue aceptado o cancelado"})
		return
	}

	// Re-check every line against current state before touching stock.
	for _, line := range transfer.Tools {
		var tool models.Tool
		if err := h.DB.Collection("tools").FindOne(ctx, bson.M{"_id": line.ToolID}).Decode(&tool); err != nil {
			c.JSON(http.StatusConflict, gin.H{"message": fmt.Sprintf("La herramienta con ID %d no existe", line.ToolID)})
			return
		}
		if !tool.Status {
			c.JSON(http.StatusConflict, gin.H{"message": fmt.Sprintf("La herramienta '%s' está inactiva", tool.Name)})
			return
		}
		if available := tool.AvailableAt(transfer.OriginID); line.Quantity > available {
			c.JSON(http.StatusConflict, gin.H{"message": fmt.Sprintf("La cantidad solicitada de '%s' supera la disponible (%d > %d)", tool.Name, line.Quantity, available)})
			return
		}
	}
	for _, line := range transfer.VehicleParts {
		var part models.VehiclePart
		if err := h.DB.Collection("vehicle_parts").FindOne(ctx, bson.M{"_id": line.PartID}).Decode(&part); err != nil {
			c.JSON(http.StatusConflict, gin.H{"message": fmt.Sprintf("El repuesto con ID %d no existe", line.PartID)})
			return
		}
		if !part.Status {
			c.JSON(http.StatusConflict, gin.H{"message": fmt.Sprintf("El repuesto '%s' está inactivo", part.Name)})
			return
		}
		if available := part.AvailableAt(transfer.OriginID); line.Quantity > available {
			c.JSON(http.StatusConflict, gin.H{"message": fmt.Sprintf("La cantidad solicitada de '%s' supera la disponible (%d > %d)", part.Name, line.Quantity, available)})
			return
		}
	}
	for _, ref := range transfer.Vehicles {
		var vehicle models.Vehicle
		if err := h.DB.Collection("vehicles").FindOne(ctx, bson.M{"_id": ref.VehicleID}).Decode(&vehicle); err != nil {
			c.JSON(http.StatusConflict, gin.H{"message": fmt.Sprintf("El vehículo con ID %d no existe", ref.VehicleID)})
			return
		}
		if !vehicle.Status {
			c.JSON(http.StatusConflict, gin.H{"message": fmt.Sprintf("El vehículo '%s' está inactivo", vehicle.Plate)})
			return
		}
		if vehicle.HeadquarterID != transfer.OriginID {
			c.JSON(http.StatusConflict, gin.H{"message": fmt.Sprintf("El vehículo '%s' no se encuentra en la sede de origen", vehicle.Plate)})
			return
		}
	}

	// Move fungible stock: decrement origin, increment destination.
	for _, line := range transfer.Tools {
		var tool models.Tool
		if err := h.DB.Collection("tools").FindOne(ctx, bson.M{"_id": line.ToolID}).Decode(&tool); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve tool"})
			return
		}
		tool.AdjustStock(transfer.OriginID, -line.Quantity)
		tool.AdjustStock(transfer.DestinationID, line.Quantity)
		if _, err := h.DB.Collection("tools").UpdateOne(ctx, bson.M{"_id": tool.ID}, bson.M{"$set": bson.M{
			"stock":     tool.Stock,
			"updatedAt": time.Now(),
		}}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to move tool stock"})
			return
		}
	}
	for _, line := range transfer.VehicleParts {
		var part models.VehiclePart
		if err := h.DB.Collection("vehicle_parts").FindOne(ctx, bson.M{"_id": line.PartID}).Decode(&part); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve vehicle part"})
			return
		}
		part.AdjustStock(transfer.OriginID, -line.Quantity)
		part.AdjustStock(transfer.DestinationID, line.Quantity)
		if _, err := h.DB.Collection("vehicle_parts").UpdateOne(ctx, bson.M{"_id": part.ID}, bson.M{"$set": bson.M{
			"stock":     part.Stock,
			"updatedAt": time.Now(),
		}}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to move part stock"})
			return
		}
	}
	for _, ref := range transfer.Vehicles {
		if _, err := h.DB.Collection("vehicles").UpdateOne(ctx, bson.M{"_id": ref.VehicleID}, bson.M{"$set": bson.M{
			"headquarterId": transfer.DestinationID,
			"updatedAt":     time.Now(),
		}}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to relocate vehicle"})
			return
		}
	}

	if _, err := h.DB.Collection("transfers").UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"status":    models.TransferStatusAccepted,
		"updatedAt": time.Now(),
	}}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update transfer"})
		return
	}

	if h.Hub != nil {
		h.Hub.Broadcast(socket.TransferEvent{Type: "TRANSFER_ACCEPTED", TransferID: id})
	}

	c.JSON(http.StatusOK, gin.H{"message": "Traslado aceptado correctamente"})
}

// CancelTransfer marks a PENDING transfer CANCELLED. No stock moves.
func (h *TransferHandler) CancelTransfer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid transfer id"})
		return
	}

	ctx := context.Background()

	var transfer models.Transfer
	if err := h.DB.Collection("transfers").FindOne(ctx, bson.M{"_id": id}).Decode(&transfer); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Traslado no encontrado"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve transfer"})
		}
		return
	}

	if !transfer.CanTransition(models.TransferStatusCancelled) {
		c.JSON(http.StatusConflict, gin.H{"message": "El traslado ya fue aceptado o cancelado"})
		return
	}

	if _, err := h.DB.Collection("transfers").UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"status":    models.TransferStatusCancelled,
		"updatedAt": time.Now(),
	}}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update transfer"})
		return
	}

	if h.Hub != nil {
		h.Hub.Broadcast(socket.TransferEvent{Type: "TRANSFER_CANCELLED", TransferID: id})
	}

	c.JSON(http.StatusOK, gin.H{"message": "Traslado cancelado correctamente"})
}

func (h *TransferHandler) GetTransferByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid transfer id"})
		return
	}

	var transfer models.Transfer
	err = h.DB.Collection("transfers").FindOne(context.Background(), bson.M{"_id": id}).Decode(&transfer)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Traslado no encontrado"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve transfer"})
		}
		return
	}

	c.JSON(http.StatusOK, transfer)
}

// ListTransfers serves the paginated, sortable, filterable transfer table.
// page is 0-based; sort is "field,asc|desc".
func (h *TransferHandler) ListTransfers(c *gin.Context) {
	filter := bson.M{}

	if origin := c.Query("originId"); origin != "" {
		if id, err := strconv.ParseInt(origin, 10, 64); err == nil {
			filter["originId"] = id
		}
	}
	if destination := c.Query("destinationId"); destination != "" {
		if id, err := strconv.ParseInt(destination, 10, 64); err == nil {
			filter["destinationId"] = id
		}
	}
	if date := c.Query("transferDate"); date != "" {
		filter["transferDate"] = date
	}
	if ids := parseIDList(c.Query("toolIds")); len(ids) > 0 {
		filter["tools.toolId"] = bson.M{"$in": ids}
	}
	if ids := parseIDList(c.Query("partIds")); len(ids) > 0 {
		filter["vehicleParts.partId"] = bson.M{"$in": ids}
	}
	if ids := parseIDList(c.Query("vehicleIds")); len(ids) > 0 {
		filter["vehicles.vehicleId"] = bson.M{"$in": ids}
	}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}

	page, _ := strconv.ParseInt(c.DefaultQuery("page", "0"), 10, 64)
	size, _ := strconv.ParseInt(c.DefaultQuery("size", "10"), 10, 64)
	if page < 0 {
		page = 0
	}
	if size <= 0 || size > 100 {
		size = 10
	}

	sortField, sortDir := parseSort(c.DefaultQuery("sort", "createdAt,desc"))

	ctx := context.Background()
	collection := h.DB.Collection("transfers")

	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to count transfers"})
		return
	}

	findOptions := options.Find().
		SetSkip(page * size).
		SetLimit(size).
		SetSort(bson.D{{Key: sortField, Value: sortDir}})

	cursor, err := collection.Find(ctx, filter, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to query transfers"})
		return
	}
	defer cursor.Close(ctx)

	var transfers []models.Transfer
	if err = cursor.All(ctx, &transfers); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to decode transfers"})
		return
	}
	if transfers == nil {
		transfers = []models.Transfer{}
	}

	c.JSON(http.StatusOK, models.NewPage(transfers, total, page, size))
}

func parseIDList(raw string) []int64 {
	if raw == "" {
		return nil
	}
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		if id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

func parseSort(raw string) (string, int) {
	parts := strings.SplitN(raw, ",", 2)
	field, ok := transferSortFields[parts[0]]
	if !ok {
		field = "createdAt"
	}
	dir := -1
	if len(parts) == 2 && strings.EqualFold(parts[1], "asc") {
		dir = 1
	}
	return field, dir
}
