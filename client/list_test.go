package client

import (
	"context"
	"sync"
	"testing"
	"time"
)

type fakeLister struct {
	mu      sync.Mutex
	filters []TransferFilter
	page    *TransferPage
	err     error
}

func (f *fakeLister) ListTransfers(_ context.Context, filter TransferFilter) (*TransferPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filters = append(f.filters, filter)
	return f.page, f.err
}

func (f *fakeLister) calls() []TransferFilter {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]TransferFilter, len(f.filters))
	copy(out, f.filters)
	return out
}

func TestUpdateFilterDebouncesBursts(t *testing.T) {
	lister := &fakeLister{page: &TransferPage{}}
	lc := NewListController(lister, 30*time.Millisecond)

	done := make(chan struct{}, 1)
	lc.OnResult = func(*TransferPage) {
		select {
		case done <- struct{}{}:
		default:
		}
	}

	lc.UpdateFilter(TransferFilter{OriginID: 1})
	lc.UpdateFilter(TransferFilter{OriginID: 2})
	lc.UpdateFilter(TransferFilter{OriginID: 3})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("debounced reload never fired")
	}

	calls := lister.calls()
	if len(calls) != 1 {
		t.Fatalf("expected a single request for the burst, got %d", len(calls))
	}
	if calls[0].OriginID != 3 {
		t.Errorf("expected the last filter to win, got origin %d", calls[0].OriginID)
	}
}

func TestReloadNowSkipsDebounce(t *testing.T) {
	lister := &fakeLister{page: &TransferPage{}}
	lc := NewListController(lister, time.Hour)

	lc.UpdateFilter(TransferFilter{Status: StatusPending})
	lc.ReloadNow()

	calls := lister.calls()
	if len(calls) != 1 {
		t.Fatalf("expected one immediate request, got %d", len(calls))
	}
	if calls[0].Status != StatusPending {
		t.Errorf("expected current filter, got %+v", calls[0])
	}
}

func TestFilterQueryEncoding(t *testing.T) {
	f := TransferFilter{
		OriginID:     10,
		ToolIDs:      []int64{1, 2},
		Status:       StatusPending,
		Page:         3,
		Size:         25,
		SortField:    "transferDate",
		SortDesc:     true,
		TransferDate: "2026-02-14",
	}

	q := f.Query()
	if got := q.Get("page"); got != "2" {
		t.Errorf("page should be zero-based on the wire, got %q", got)
	}
	if got := q.Get("size"); got != "25" {
		t.Errorf("unexpected size %q", got)
	}
	if got := q.Get("toolIds"); got != "1,2" {
		t.Errorf("unexpected toolIds %q", got)
	}
	if got := q.Get("sort"); got != "transferDate,desc" {
		t.Errorf("unexpected sort %q", got)
	}
	if q.Get("destinationId") != "" {
		t.Error("zero-valued criteria must be omitted")
	}
}

func TestFilterQueryDefaults(t *testing.T) {
	q := TransferFilter{}.Query()
	if got := q.Get("page"); got != "0" {
		t.Errorf("default page should encode as 0, got %q", got)
	}
	if got := q.Get("size"); got != "10" {
		t.Errorf("default size should be 10, got %q", got)
	}
}

func TestActionsForStatus(t *testing.T) {
	cases := []struct {
		status  string
		mutable bool
	}{
		{"", true},
		{StatusPending, true},
		{StatusAccepted, false},
		{StatusCancelled, false},
	}
	for _, tc := range cases {
		got := ActionsFor(&Transfer{Status: tc.status})
		if !got.Details {
			t.Errorf("status %q: details must always be offered", tc.status)
		}
		if got.Edit != tc.mutable || got.Accept != tc.mutable || got.Cancel != tc.mutable {
			t.Errorf("status %q: expected mutable=%v, got %+v", tc.status, tc.mutable, got)
		}
	}
}
