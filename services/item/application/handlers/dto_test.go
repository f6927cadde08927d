package handlers

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/ghuser/geoitems/services/item/domain/models"
)

func TestNewItemResponse_Nulls(t *testing.T) {
	item := &models.Item{
		ID:                     "507f1f77bcf86cd799439011",
		Name:                   "Item1",
		Postcode:               "12345",
		Latitude:               45,
		Longitude:              -70,
		DirectionFromReference: models.DirectionNE,
	}
	b, err := json.Marshal(NewItemResponse(item))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"id":"507f1f77bcf86cd799439011","name":"Item1","postcode":"12345","latitude":45,"longitude":-70,"directionFromReference":"NE","title":null,"users":[],"startDate":null}`
	if string(b) != want {
		t.Fatalf("got %s\nwant %s", b, want)
	}
}

func TestNewItemResponse_StartDateRFC3339UTC(t *testing.T) {
	start := time.Date(2025, 4, 1, 14, 30, 0, 0, time.FixedZone("CEST", 2*60*60))
	title := "Lamp"
	resp := NewItemResponse(&models.Item{StartDate: &start, Title: &title, Users: []string{"a"}})

	if resp.StartDate == nil || *resp.StartDate != "2025-04-01T12:30:00Z" {
		t.Fatalf("unexpected startDate %v", resp.StartDate)
	}
	if resp.Title == nil || *resp.Title != "Lamp" {
		t.Fatalf("unexpected title %v", resp.Title)
	}
}

func TestUpdateItemRequest_IgnoresUnknownKeys(t *testing.T) {
	var req UpdateItemRequest
	if err := json.Unmarshal([]byte(`{"postcode":"99999","latitude":1,"title":"x"}`), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	p := req.patch()
	if p.Name != nil || p.StartDate != nil || p.Users != nil {
		t.Fatalf("unexpected fields set: %+v", p)
	}
	if p.Title == nil || *p.Title != "x" {
		t.Fatalf("title not applied: %+v", p)
	}
}
