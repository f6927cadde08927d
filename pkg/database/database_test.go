package database

import (
	"context"
	"os"
	"testing"

	"github.com/ghuser/geoitems/pkg/logger"
)

func TestNewPool_InvalidURL(t *testing.T) {
	_, err := NewPool(context.Background(), "://not-a-url", logger.Nop())
	if err == nil {
		t.Fatal("expected error for malformed url")
	}
}

// TestNewPool_Integration requires a running Postgres; set DATABASE_URL to enable.
func TestNewPool_Integration(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set; skipping integration test")
	}

	ctx := context.Background()
	d, err := NewPool(ctx, url, logger.Nop())
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	defer d.Close()

	if err := d.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	var one int
	if err := d.DB().QueryRowContext(ctx, `SELECT 1`).Scan(&one); err != nil {
		t.Fatalf("query through sql handle: %v", err)
	}
	if one != 1 {
		t.Fatalf("expected 1, got %d", one)
	}
}
