package client

// Payload converts the draft to the wire shape the backend expects:
// quantified lines become {toolId|partId, quantity} pairs and vehicles
// collapse to a bare id list.
func (d *TransferFormData) Payload() TransferPayload {
	p := TransferPayload{
		ResponsibleID: d.ResponsibleID,
		OriginID:      d.OriginID,
		DestinationID: d.DestinationID,
		TransferDate:  d.TransferDate,
		Notes:         d.Notes,
		Tools:         make([]TransferToolPayload, 0, len(d.Tools)),
		VehicleParts:  make([]TransferPartPayload, 0, len(d.Parts)),
		VehicleIDs:    make([]int64, 0, len(d.Vehicles)),
	}
	for _, line := range d.Tools {
		p.Tools = append(p.Tools, TransferToolPayload{ToolID: line.ID, Quantity: line.Quantity})
	}
	for _, line := range d.Parts {
		p.VehicleParts = append(p.VehicleParts, TransferPartPayload{PartID: line.ID, Quantity: line.Quantity})
	}
	p.VehicleIDs = append(p.VehicleIDs, d.Vehicles...)
	return p
}

// FormDataFromTransfer rebuilds an editable draft from a stored transfer,
// the inverse of Payload for every field the wizard edits.
func FormDataFromTransfer(t *Transfer) *TransferFormData {
	d := &TransferFormData{
		ID:            t.ID,
		ResponsibleID: t.ResponsibleID,
		OriginID:      t.OriginID,
		DestinationID: t.DestinationID,
		TransferDate:  t.TransferDate,
		Notes:         t.Notes,
		Tools:         make([]FormLine, 0, len(t.Tools)),
		Parts:         make([]FormLine, 0, len(t.VehicleParts)),
		Vehicles:      make([]int64, 0, len(t.Vehicles)),
	}
	for _, item := range t.Tools {
		d.Tools = append(d.Tools, FormLine{ID: item.ToolID, Name: item.Name, Quantity: item.Quantity})
	}
	for _, item := range t.VehicleParts {
		d.Parts = append(d.Parts, FormLine{ID: item.PartID, Name: item.Name, Quantity: item.Quantity})
	}
	for _, v := range t.Vehicles {
		d.Vehicles = append(d.Vehicles, v.VehicleID)
	}
	return d
}
