package client

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ReferenceData is everything the transfer screens need up front: sites and
// users for the selectors, and the unscoped full item lists used to resolve
// names and active flags for items on existing drafts.
type ReferenceData struct {
	Sites    []Headquarter
	Users    []UserProfile
	Tools    []CatalogItem
	Parts    []CatalogItem
	Vehicles []CatalogVehicle
}

// LoadReferenceData runs the five independent fetches concurrently. Each
// goroutine fills its own slot, so there is no ordering dependency between
// them; the group wait is the single "reference data ready" gate.
func (c *Client) LoadReferenceData(ctx context.Context) (*ReferenceData, error) {
	ref := &ReferenceData{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sites, err := c.Headquarters(ctx)
		ref.Sites = sites
		return err
	})
	g.Go(func() error {
		users, err := c.Users(ctx)
		ref.Users = users
		return err
	})
	g.Go(func() error {
		tools, err := c.AllTools(ctx)
		ref.Tools = tools
		return err
	})
	g.Go(func() error {
		parts, err := c.AllVehicleParts(ctx)
		ref.Parts = parts
		return err
	})
	g.Go(func() error {
		vehicles, err := c.AllVehicles(ctx)
		ref.Vehicles = vehicles
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ref, nil
}

// FindTool returns the full-list entry for the id, if known.
func (r *ReferenceData) FindTool(id int64) (*CatalogItem, bool) {
	for i := range r.Tools {
		if r.Tools[i].ID == id {
			return &r.Tools[i], true
		}
	}
	return nil, false
}

func (r *ReferenceData) FindPart(id int64) (*CatalogItem, bool) {
	for i := range r.Parts {
		if r.Parts[i].ID == id {
			return &r.Parts[i], true
		}
	}
	return nil, false
}

func (r *ReferenceData) FindVehicle(id int64) (*CatalogVehicle, bool) {
	for i := range r.Vehicles {
		if r.Vehicles[i].ID == id {
			return &r.Vehicles[i], true
		}
	}
	return nil, false
}
