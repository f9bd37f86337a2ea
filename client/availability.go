package client

import (
	"context"
	"fmt"
)

// Notifier surfaces user-facing messages (errors and warnings) raised by
// the transfer screens.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(string)

func (f NotifierFunc) Notify(message string) { f(message) }

// SelectState classifies an item for the wizard's option lists and the
// validator: selectable, shown-but-exhausted, or inactive-and-blocking.
type SelectState int

const (
	// Selectable: active with stock at the origin site.
	Selectable SelectState = iota
	// Exhausted: active but nothing available at the origin site. Shown
	// disabled; does not block the tools/vehicles steps.
	Exhausted
	// Inactive: the item is flagged inactive (or unknown to the full
	// list). Rendered so it can be removed, but blocks progress and save.
	Inactive
)

// Selectability is the computed state of one item, consumed uniformly by
// option rendering and validation.
type Selectability struct {
	State     SelectState
	Available int
}

type itemInfo struct {
	name   string
	active bool
}

type vehicleInfo struct {
	plate  string
	active bool
}

// Availability is the canonical item table for one wizard session: the
// full-list name/status index plus the site-scoped lists for the current
// origin. The scoped lists are replaced wholesale on every origin change.
type Availability struct {
	toolInfo    map[int64]itemInfo
	partInfo    map[int64]itemInfo
	vehicleInfo map[int64]vehicleInfo

	SiteTools    []AvailableItem
	SiteParts    []AvailableItem
	SiteVehicles []AvailableVehicle
}

// NewAvailability indexes the full reference lists. The scoped lists start
// empty until the first origin is chosen.
func NewAvailability(ref *ReferenceData) *Availability {
	a := &Availability{
		toolInfo:    make(map[int64]itemInfo),
		partInfo:    make(map[int64]itemInfo),
		vehicleInfo: make(map[int64]vehicleInfo),
	}
	if ref == nil {
		return a
	}
	for _, t := range ref.Tools {
		a.toolInfo[t.ID] = itemInfo{name: t.Name, active: t.Status}
	}
	for _, p := range ref.Parts {
		a.partInfo[p.ID] = itemInfo{name: p.Name, active: p.Status}
	}
	for _, v := range ref.Vehicles {
		a.vehicleInfo[v.ID] = vehicleInfo{plate: v.Plate, active: v.Status}
	}
	return a
}

// RefreshSite replaces the three scoped lists with fresh queries for the
// given origin. A failed fetch leaves its list empty and raises a
// notification; the wizard then shows "no items available" for it.
func (a *Availability) RefreshSite(ctx context.Context, c *Client, notifier Notifier, headquarterID int64) {
	tools, err := c.AvailableTools(ctx, headquarterID)
	if err != nil {
		tools = nil
		notify(notifier, "No fue posible cargar las herramientas disponibles")
	}
	a.SiteTools = tools

	parts, err := c.AvailableVehicleParts(ctx, headquarterID)
	if err != nil {
		parts = nil
		notify(notifier, "No fue posible cargar los repuestos disponibles")
	}
	a.SiteParts = parts

	vehicles, err := c.AvailableVehicles(ctx, headquarterID)
	if err != nil {
		vehicles = nil
		notify(notifier, "No fue posible cargar los vehículos disponibles")
	}
	a.SiteVehicles = vehicles
}

func notify(n Notifier, message string) {
	if n != nil {
		n.Notify(message)
	}
}

// ScopedToolAvailable returns the origin-scoped quantity for the tool and
// whether the scoped list carries it at all.
func (a *Availability) ScopedToolAvailable(id int64) (int, bool) {
	for _, item := range a.SiteTools {
		if item.ID == id {
			return item.Available, true
		}
	}
	return 0, false
}

func (a *Availability) ScopedPartAvailable(id int64) (int, bool) {
	for _, item := range a.SiteParts {
		if item.ID == id {
			return item.Available, true
		}
	}
	return 0, false
}

func (a *Availability) scopedVehiclePresent(id int64) bool {
	for _, v := range a.SiteVehicles {
		if v.ID == id {
			return true
		}
	}
	return false
}

// ClassifyTool computes the selectability of a tool id. Items unknown to
// the full list are treated as inactive-blocking: they only appear on
// stale drafts and must be removed before the draft can proceed.
func (a *Availability) ClassifyTool(id int64) Selectability {
	info, known := a.toolInfo[id]
	if !known || !info.active {
		return Selectability{State: Inactive}
	}
	if qty, ok := a.ScopedToolAvailable(id); ok && qty > 0 {
		return Selectability{State: Selectable, Available: qty}
	}
	return Selectability{State: Exhausted}
}

func (a *Availability) ClassifyPart(id int64) Selectability {
	info, known := a.partInfo[id]
	if !known || !info.active {
		return Selectability{State: Inactive}
	}
	if qty, ok := a.ScopedPartAvailable(id); ok && qty > 0 {
		return Selectability{State: Selectable, Available: qty}
	}
	return Selectability{State: Exhausted}
}

func (a *Availability) ClassifyVehicle(id int64) Selectability {
	info, known := a.vehicleInfo[id]
	if !known || !info.active {
		return Selectability{State: Inactive}
	}
	if a.scopedVehiclePresent(id) {
		return Selectability{State: Selectable, Available: 1}
	}
	return Selectability{State: Exhausted}
}

// ToolDisplayName resolves a display name, synthesizing a placeholder for
// ids missing from the full list so stale drafts stay renderable.
func (a *Availability) ToolDisplayName(id int64) string {
	if info, ok := a.toolInfo[id]; ok {
		return info.name
	}
	return fmt.Sprintf("Herramienta ID: %d", id)
}

func (a *Availability) PartDisplayName(id int64) string {
	if info, ok := a.partInfo[id]; ok {
		return info.name
	}
	return fmt.Sprintf("Repuesto ID: %d", id)
}

func (a *Availability) VehicleDisplayName(id int64) string {
	if info, ok := a.vehicleInfo[id]; ok {
		return info.plate
	}
	return fmt.Sprintf("Vehículo ID: %d", id)
}
