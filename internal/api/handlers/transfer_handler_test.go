package handlers

import (
	"context"
	"net/http"
	"reflect"
	"strings"
	"testing"
)

// Notes validation runs before any database access, so a handler with no
// DB exercises it directly. The limit counts characters, not bytes.
func TestValidateTransferNotesLength(t *testing.T) {
	h := &TransferHandler{}
	base := TransferPayload{
		ResponsibleID: 1,
		OriginID:      10,
		DestinationID: 11,
		TransferDate:  "2026-02-14",
	}

	payload := base
	payload.Notes = strings.Repeat("ñ", 200)
	_, _, _, _, msg := h.validateTransferPayload(context.Background(), payload, 0)
	if msg == "Las observaciones no pueden superar los 200 caracteres" {
		t.Error("200 accented characters must pass the notes limit")
	}

	payload.Notes = strings.Repeat("ñ", 201)
	_, _, _, status, msg := h.validateTransferPayload(context.Background(), payload, 0)
	if msg != "Las observaciones no pueden superar los 200 caracteres" {
		t.Errorf("expected notes limit rejection, got %q", msg)
	}
	if status != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", status)
	}
}

func TestParseIDList(t *testing.T) {
	cases := []struct {
		raw  string
		want []int64
	}{
		{"", nil},
		{"1", []int64{1}},
		{"1,2,3", []int64{1, 2, 3}},
		{" 1 , 2 ", []int64{1, 2}},
		{"1,x,3", []int64{1, 3}},
	}
	for _, tc := range cases {
		if got := parseIDList(tc.raw); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("parseIDList(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestParseSort(t *testing.T) {
	cases := []struct {
		raw       string
		wantField string
		wantDir   int
	}{
		{"transferDate,asc", "transferDate", 1},
		{"transferDate,desc", "transferDate", -1},
		{"id,asc", "_id", 1},
		{"status", "status", -1},
		{"bogus,asc", "createdAt", 1},
		{"", "createdAt", -1},
	}
	for _, tc := range cases {
		field, dir := parseSort(tc.raw)
		if field != tc.wantField || dir != tc.wantDir {
			t.Errorf("parseSort(%q) = (%q, %d), want (%q, %d)", tc.raw, field, dir, tc.wantField, tc.wantDir)
		}
	}
}
