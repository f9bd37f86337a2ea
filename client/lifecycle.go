package client

import (
	"context"
	"errors"
)

// LifecycleController executes the save/accept/cancel actions of the
// transfer screen: it calls the backend, surfaces error messages through
// the Notifier and reloads the listing after a successful mutation.
type LifecycleController struct {
	Client    *Client
	Notifier  Notifier
	Reference *ReferenceData

	// Reload refreshes the transfer listing; wired to
	// ListController.ReloadNow by the screen.
	Reload func()
}

// Create saves a new draft. Validation problems reported by the backend
// are shown verbatim.
func (lc *LifecycleController) Create(ctx context.Context, form *TransferFormData) (*Transfer, error) {
	created, err := lc.Client.CreateTransfer(ctx, form.Payload())
	if err != nil {
		lc.notifyError(err)
		return nil, err
	}
	lc.reload()
	return created, nil
}

// Update saves changes to a pending transfer.
func (lc *LifecycleController) Update(ctx context.Context, form *TransferFormData) error {
	if err := lc.Client.UpdateTransfer(ctx, form.ID, form.Payload()); err != nil {
		lc.notifyError(err)
		return err
	}
	lc.reload()
	return nil
}

// Accept confirms a pending transfer. A local pre-flight over the full
// lists skips the request entirely when an item is already known to be
// inactive or without stock at the origin; the server still re-validates
// whatever does get through.
func (lc *LifecycleController) Accept(ctx context.Context, t *Transfer) error {
	if !lc.acceptable(t) {
		notify(lc.Notifier, ErrAcceptBlocked.Error())
		return ErrAcceptBlocked
	}
	if err := lc.Client.AcceptTransfer(ctx, t.ID); err != nil {
		lc.notifyError(err)
		return err
	}
	lc.reload()
	return nil
}

// Cancel marks a pending transfer cancelled. No pre-flight: cancelling
// never needs stock.
func (lc *LifecycleController) Cancel(ctx context.Context, t *Transfer) error {
	if err := lc.Client.CancelTransfer(ctx, t.ID); err != nil {
		lc.notifyError(err)
		return err
	}
	lc.reload()
	return nil
}

func (lc *LifecycleController) acceptable(t *Transfer) bool {
	if lc.Reference == nil {
		return true
	}
	for _, line := range t.Tools {
		tool, ok := lc.Reference.FindTool(line.ToolID)
		if !ok || !tool.Status || tool.AvailableAt(t.OriginID) < line.Quantity {
			return false
		}
	}
	for _, line := range t.VehicleParts {
		part, ok := lc.Reference.FindPart(line.PartID)
		if !ok || !part.Status || part.AvailableAt(t.OriginID) < line.Quantity {
			return false
		}
	}
	for _, item := range t.Vehicles {
		vehicle, ok := lc.Reference.FindVehicle(item.VehicleID)
		if !ok || !vehicle.Status || vehicle.HeadquarterID != t.OriginID {
			return false
		}
	}
	return true
}

func (lc *LifecycleController) notifyError(err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		notify(lc.Notifier, apiErr.Message)
		return
	}
	notify(lc.Notifier, err.Error())
}

func (lc *LifecycleController) reload() {
	if lc.Reload != nil {
		lc.Reload()
	}
}
