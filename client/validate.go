package client

import (
	"errors"
	"fmt"
)

// Step identifies a page of the transfer wizard.
type Step int

const (
	StepGeneral Step = iota
	StepTools
	StepParts
	StepVehicles
)

// ErrEmptySelection rejects a draft with no tools, parts or vehicles.
var ErrEmptySelection = errors.New("Debe seleccionar al menos un ítem para el traslado")

// InactiveToolError blocks a draft that still references an inactive tool.
type InactiveToolError struct {
	Name string
}

func (e *InactiveToolError) Error() string {
	return fmt.Sprintf("La herramienta '%s' está inactiva", e.Name)
}

// QuantityError blocks a line whose requested quantity exceeds the
// origin-scoped availability.
type QuantityError struct {
	Name      string
	Requested int
	Available int
}

func (e *QuantityError) Error() string {
	return fmt.Sprintf("La cantidad solicitada de '%s' supera la disponible (%d > %d)", e.Name, e.Requested, e.Available)
}

// CanAdvance reports whether the wizard may leave the given step. On the
// tools and vehicles steps only inactive items block; exhausted ones stay
// visible so the user can drop them. On the parts step a part missing from
// the scoped list, or listed with nothing available, blocks as well.
// Quantity overruns are caught at submit time.
func CanAdvance(step Step, form *TransferFormData, avail *Availability) bool {
	switch step {
	case StepTools:
		for _, line := range form.Tools {
			if avail.ClassifyTool(line.ID).State == Inactive {
				return false
			}
		}
	case StepParts:
		for _, line := range form.Parts {
			qty, ok := avail.ScopedPartAvailable(line.ID)
			if !ok || qty == 0 {
				return false
			}
		}
	case StepVehicles:
		for _, id := range form.Vehicles {
			if avail.ClassifyVehicle(id).State == Inactive {
				return false
			}
		}
	}
	return true
}

// CanSubmit runs the full pre-save validation and returns the first
// violation: empty selection, then inactive tools, then tool quantities,
// then part quantities. Requesting exactly the available quantity passes.
func CanSubmit(form *TransferFormData, avail *Availability) error {
	if len(form.Tools) == 0 && len(form.Parts) == 0 && len(form.Vehicles) == 0 {
		return ErrEmptySelection
	}
	for _, line := range form.Tools {
		if avail.ClassifyTool(line.ID).State == Inactive {
			return &InactiveToolError{Name: avail.ToolDisplayName(line.ID)}
		}
	}
	for _, line := range form.Tools {
		qty, _ := avail.ScopedToolAvailable(line.ID)
		if line.Quantity > qty {
			return &QuantityError{Name: avail.ToolDisplayName(line.ID), Requested: line.Quantity, Available: qty}
		}
	}
	for _, line := range form.Parts {
		qty, _ := avail.ScopedPartAvailable(line.ID)
		if line.Quantity > qty {
			return &QuantityError{Name: avail.PartDisplayName(line.ID), Requested: line.Quantity, Available: qty}
		}
	}
	return nil
}
