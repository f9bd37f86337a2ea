package client

import "time"

// FormLine is one quantified item row on the tools or parts step.
type FormLine struct {
	ID       int64
	Name     string
	Quantity int
}

// TransferFormData is the draft being assembled by the wizard. It maps
// one-to-one onto TransferPayload via Payload().
type TransferFormData struct {
	ID            int64
	ResponsibleID int64
	OriginID      int64
	DestinationID int64
	TransferDate  string
	Notes         string
	Tools         []FormLine
	Parts         []FormLine
	Vehicles      []int64
}

// Option is a selectable entry offered by the wizard, annotated with its
// current selectability so the UI can disable or highlight it.
type Option struct {
	ID    int64
	Label string
	Selectability
}

// TransferForm drives the four-step wizard over one draft: it owns the
// draft data, the current step, and the availability table scoped to the
// draft's origin.
type TransferForm struct {
	Data  TransferFormData
	Avail *Availability
	step  Step

	// onOriginChange refreshes the scoped lists; injected so tests can
	// observe origin transitions without a live backend.
	onOriginChange func(headquarterID int64)
}

// NewTransferForm starts a wizard session. A nil seed begins an empty
// draft dated today; a non-nil seed edits an existing transfer and
// refreshes availability for its origin immediately.
func NewTransferForm(avail *Availability, seed *TransferFormData, onOriginChange func(int64)) *TransferForm {
	f := &TransferForm{Avail: avail, onOriginChange: onOriginChange}
	if seed != nil {
		f.Data = *seed
	} else {
		f.Data.TransferDate = time.Now().Format("2006-01-02")
	}
	if f.Data.OriginID != 0 && f.onOriginChange != nil {
		f.onOriginChange(f.Data.OriginID)
	}
	return f
}

// Step returns the wizard's current page.
func (f *TransferForm) Step() Step { return f.step }

// SetOriginSite switches the origin and refreshes the scoped lists. If
// the destination now equals the origin it is cleared.
func (f *TransferForm) SetOriginSite(id int64) {
	f.Data.OriginID = id
	if f.Data.DestinationID == id {
		f.Data.DestinationID = 0
	}
	if f.onOriginChange != nil {
		f.onOriginChange(id)
	}
}

// SetDestinationSite rejects the current origin; any other site is set.
func (f *TransferForm) SetDestinationSite(id int64) bool {
	if id == f.Data.OriginID {
		return false
	}
	f.Data.DestinationID = id
	return true
}

// DestinationOptions filters the origin out of the site list.
func (f *TransferForm) DestinationOptions(sites []Headquarter) []Headquarter {
	out := make([]Headquarter, 0, len(sites))
	for _, s := range sites {
		if s.ID != f.Data.OriginID {
			out = append(out, s)
		}
	}
	return out
}

// AddTool appends a tool line unless the id is already selected.
func (f *TransferForm) AddTool(id int64, quantity int) bool {
	for _, line := range f.Data.Tools {
		if line.ID == id {
			return false
		}
	}
	f.Data.Tools = append(f.Data.Tools, FormLine{ID: id, Name: f.Avail.ToolDisplayName(id), Quantity: quantity})
	return true
}

func (f *TransferForm) RemoveTool(id int64) {
	f.Data.Tools = removeLine(f.Data.Tools, id)
}

func (f *TransferForm) AddPart(id int64, quantity int) bool {
	for _, line := range f.Data.Parts {
		if line.ID == id {
			return false
		}
	}
	f.Data.Parts = append(f.Data.Parts, FormLine{ID: id, Name: f.Avail.PartDisplayName(id), Quantity: quantity})
	return true
}

func (f *TransferForm) RemovePart(id int64) {
	f.Data.Parts = removeLine(f.Data.Parts, id)
}

func (f *TransferForm) AddVehicle(id int64) bool {
	for _, v := range f.Data.Vehicles {
		if v == id {
			return false
		}
	}
	f.Data.Vehicles = append(f.Data.Vehicles, id)
	return true
}

func (f *TransferForm) RemoveVehicle(id int64) {
	out := f.Data.Vehicles[:0]
	for _, v := range f.Data.Vehicles {
		if v != id {
			out = append(out, v)
		}
	}
	f.Data.Vehicles = out
}

func removeLine(lines []FormLine, id int64) []FormLine {
	out := lines[:0]
	for _, line := range lines {
		if line.ID != id {
			out = append(out, line)
		}
	}
	return out
}

// ToolOptions merges the origin-scoped list with any draft lines missing
// from it, so stale selections remain visible (and removable) with their
// blocking state attached.
func (f *TransferForm) ToolOptions() []Option {
	opts := make([]Option, 0, len(f.Avail.SiteTools))
	seen := make(map[int64]bool)
	for _, item := range f.Avail.SiteTools {
		seen[item.ID] = true
		opts = append(opts, Option{ID: item.ID, Label: item.Name, Selectability: f.Avail.ClassifyTool(item.ID)})
	}
	for _, line := range f.Data.Tools {
		if !seen[line.ID] {
			opts = append(opts, Option{ID: line.ID, Label: f.Avail.ToolDisplayName(line.ID), Selectability: f.Avail.ClassifyTool(line.ID)})
		}
	}
	return opts
}

func (f *TransferForm) PartOptions() []Option {
	opts := make([]Option, 0, len(f.Avail.SiteParts))
	seen := make(map[int64]bool)
	for _, item := range f.Avail.SiteParts {
		seen[item.ID] = true
		opts = append(opts, Option{ID: item.ID, Label: item.Name, Selectability: f.Avail.ClassifyPart(item.ID)})
	}
	for _, line := range f.Data.Parts {
		if !seen[line.ID] {
			opts = append(opts, Option{ID: line.ID, Label: f.Avail.PartDisplayName(line.ID), Selectability: f.Avail.ClassifyPart(line.ID)})
		}
	}
	return opts
}

func (f *TransferForm) VehicleOptions() []Option {
	opts := make([]Option, 0, len(f.Avail.SiteVehicles))
	seen := make(map[int64]bool)
	for _, v := range f.Avail.SiteVehicles {
		seen[v.ID] = true
		opts = append(opts, Option{ID: v.ID, Label: v.Plate, Selectability: f.Avail.ClassifyVehicle(v.ID)})
	}
	for _, id := range f.Data.Vehicles {
		if !seen[id] {
			opts = append(opts, Option{ID: id, Label: f.Avail.VehicleDisplayName(id), Selectability: f.Avail.ClassifyVehicle(id)})
		}
	}
	return opts
}

// AdvanceStep moves forward only when the current step's validation
// passes; it reports whether the step changed.
func (f *TransferForm) AdvanceStep() bool {
	if f.step >= StepVehicles {
		return false
	}
	if !CanAdvance(f.step, &f.Data, f.Avail) {
		return false
	}
	f.step++
	return true
}

// RetreatStep always moves back.
func (f *TransferForm) RetreatStep() bool {
	if f.step <= StepGeneral {
		return false
	}
	f.step--
	return true
}
