package client

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

// TransferFilter carries the listing criteria. Page is 1-based here and
// translated to the backend's 0-based paging in Query.
type TransferFilter struct {
	OriginID      int64
	DestinationID int64
	TransferDate  string
	ToolIDs       []int64
	PartIDs       []int64
	VehicleIDs    []int64
	Status        string
	Page          int
	Size          int
	SortField     string
	SortDesc      bool
}

// Query encodes the filter as listing query parameters. Zero-valued
// criteria are omitted.
func (f TransferFilter) Query() url.Values {
	q := url.Values{}
	if f.OriginID != 0 {
		q.Set("originId", strconv.FormatInt(f.OriginID, 10))
	}
	if f.DestinationID != 0 {
		q.Set("destinationId", strconv.FormatInt(f.DestinationID, 10))
	}
	if f.TransferDate != "" {
		q.Set("transferDate", f.TransferDate)
	}
	if len(f.ToolIDs) > 0 {
		q.Set("toolIds", joinIDs(f.ToolIDs))
	}
	if len(f.PartIDs) > 0 {
		q.Set("partIds", joinIDs(f.PartIDs))
	}
	if len(f.VehicleIDs) > 0 {
		q.Set("vehicleIds", joinIDs(f.VehicleIDs))
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	page := f.Page
	if page < 1 {
		page = 1
	}
	q.Set("page", strconv.Itoa(page-1))
	size := f.Size
	if size <= 0 {
		size = 10
	}
	q.Set("size", strconv.Itoa(size))
	if f.SortField != "" {
		dir := "asc"
		if f.SortDesc {
			dir = "desc"
		}
		q.Set("sort", f.SortField+","+dir)
	}
	return q
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

// TransferLister is the slice of the API the list controller needs.
type TransferLister interface {
	ListTransfers(ctx context.Context, filter TransferFilter) (*TransferPage, error)
}

const defaultDebounce = 500 * time.Millisecond

// ListController keeps the transfer listing in sync with its filter.
// Filter edits are debounced on the trailing edge so a burst of changes
// fires a single request with the final criteria.
type ListController struct {
	lister TransferLister

	mu     sync.Mutex
	filter TransferFilter
	timer  *time.Timer
	delay  time.Duration

	OnResult func(*TransferPage)
	OnError  func(error)
}

// NewListController builds a controller over the given lister. A zero
// delay selects the default debounce window.
func NewListController(lister TransferLister, delay time.Duration) *ListController {
	if delay <= 0 {
		delay = defaultDebounce
	}
	return &ListController{lister: lister, delay: delay}
}

// Filter returns a copy of the current criteria.
func (lc *ListController) Filter() TransferFilter {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.filter
}

// UpdateFilter replaces the criteria and schedules a reload after the
// debounce window. A pending reload is rescheduled, so only the last
// filter in a burst reaches the backend.
func (lc *ListController) UpdateFilter(filter TransferFilter) {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	lc.filter = filter
	if lc.timer != nil {
		lc.timer.Stop()
	}
	lc.timer = time.AfterFunc(lc.delay, lc.fire)
}

// ReloadNow cancels any pending debounce and fetches immediately with the
// current filter.
func (lc *ListController) ReloadNow() {
	lc.mu.Lock()
	if lc.timer != nil {
		lc.timer.Stop()
		lc.timer = nil
	}
	lc.mu.Unlock()
	lc.fire()
}

func (lc *ListController) fire() {
	lc.mu.Lock()
	filter := lc.filter
	lc.mu.Unlock()

	page, err := lc.lister.ListTransfers(context.Background(), filter)
	if err != nil {
		if lc.OnError != nil {
			lc.OnError(err)
		}
		return
	}
	if lc.OnResult != nil {
		lc.OnResult(page)
	}
}

// TransferActions lists which row actions apply to one transfer.
type TransferActions struct {
	Details bool
	Edit    bool
	Accept  bool
	Cancel  bool
}

// ActionsFor computes row actions from the transfer's status. Details is
// always offered; the mutating actions only while the transfer is still
// pending. Records without a status are treated as pending.
func ActionsFor(t *Transfer) TransferActions {
	pending := t.Status == "" || t.Status == StatusPending
	return TransferActions{Details: true, Edit: pending, Accept: pending, Cancel: pending}
}
