package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestItemKey(t *testing.T) {
	if got := ItemKey("507f1f77bcf86cd799439011"); got != "item:507f1f77bcf86cd799439011" {
		t.Fatalf("unexpected key: %q", got)
	}
}

func TestIsMiss(t *testing.T) {
	if !IsMiss(redis.Nil) {
		t.Error("redis.Nil must be a miss")
	}
	if IsMiss(errors.New("connection refused")) {
		t.Error("other errors must not be a miss")
	}
}

func sampleItem() *CachedItem {
	title := "Coffee"
	start := time.Date(2030, 1, 2, 3, 4, 5, 600, time.UTC)
	return &CachedItem{
		ID:                     "507f1f77bcf86cd799439011",
		Name:                   "Item1",
		Postcode:               "12345-6789",
		Latitude:               12.3456,
		Longitude:              -78.9012,
		DirectionFromReference: "SW",
		Title:                  &title,
		Users:                  []string{"Item1", "Bob"},
		StartDate:              &start,
		CreatedAt:              time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
	}
}

func TestEncodeDecode(t *testing.T) {
	want := sampleItem()
	fields, err := encodeItem(want)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	// Redis hands every field back as a string.
	vals := make(map[string]string, len(fields))
	for k, v := range fields {
		vals[k] = v.(string)
	}

	got, err := decodeItem(vals)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != want.ID || got.Name != want.Name || got.Postcode != want.Postcode {
		t.Errorf("identity fields differ: %+v", got)
	}
	if got.Latitude != want.Latitude || got.Longitude != want.Longitude {
		t.Errorf("coordinates differ: %v %v", got.Latitude, got.Longitude)
	}
	if got.DirectionFromReference != "SW" {
		t.Errorf("direction differs: %q", got.DirectionFromReference)
	}
	if got.Title == nil || *got.Title != "Coffee" {
		t.Errorf("title differs: %v", got.Title)
	}
	if len(got.Users) != 2 || got.Users[1] != "Bob" {
		t.Errorf("users differ: %v", got.Users)
	}
	if got.StartDate == nil || !got.StartDate.Equal(*want.StartDate) {
		t.Errorf("start date differs: %v", got.StartDate)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Errorf("created_at differs: %v", got.CreatedAt)
	}
}

func TestEncode_OmitsNilOptionals(t *testing.T) {
	item := sampleItem()
	item.Title = nil
	item.StartDate = nil

	fields, err := encodeItem(item)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, ok := fields["title"]; ok {
		t.Error("nil title must not be stored")
	}
	if _, ok := fields["start_date"]; ok {
		t.Error("nil start date must not be stored")
	}
}

func TestDecode_Corrupt(t *testing.T) {
	fields, _ := encodeItem(sampleItem())
	vals := make(map[string]string, len(fields))
	for k, v := range fields {
		vals[k] = v.(string)
	}
	vals["latitude"] = "north"

	if _, err := decodeItem(vals); err == nil {
		t.Fatal("expected error for corrupt latitude")
	}
}

func TestItemCacheIntegration(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set; skipping integration tests")
	}
	rc, err := NewRedisClient(context.Background(), newTestConfig(redisURL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer rc.Close() //nolint:errcheck

	ctx := context.Background()
	c := NewItemCache(rc)
	item := sampleItem()

	if err := c.Set(ctx, item); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := c.Get(ctx, item.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != item.Name {
		t.Errorf("unexpected name %q", got.Name)
	}

	if err := c.Delete(ctx, item.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.Get(ctx, item.ID); !IsMiss(err) {
		t.Fatalf("expected miss after delete, got %v", err)
	}
}
