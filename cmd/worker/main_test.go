package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/ghuser/geoitems/pkg/app"
	"github.com/ghuser/geoitems/pkg/config"
	"github.com/ghuser/geoitems/pkg/logger"
	appsvcs "github.com/ghuser/geoitems/services/item/application/services"
	itemEvents "github.com/ghuser/geoitems/services/item/domain/events"
)

func TestHandleItemCreated_LogsEvent(t *testing.T) {
	var buf bytes.Buffer
	a := &app.Application{Config: &config.Config{}, Logger: logger.NewWriter(&buf, "info")}
	handler := handleItemCreated(a, appsvcs.New(a))

	payload, err := json.Marshal(itemEvents.ItemCreatedEvent{
		EventID:    uuid.New(),
		Version:    1,
		ItemID:     "507f1f77bcf86cd799439011",
		Name:       "Item1",
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	if err := handler(context.Background(), message.NewMessage("m-1", payload)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`"msg":"item created"`, `"item_id":"507f1f77bcf86cd799439011"`, `"name":"Item1"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s: %s", want, out)
		}
	}
}

func TestHandleItemCreated_DiscardsMalformedPayload(t *testing.T) {
	var buf bytes.Buffer
	a := &app.Application{Config: &config.Config{}, Logger: logger.NewWriter(&buf, "info")}
	handler := handleItemCreated(a, appsvcs.New(a))

	if err := handler(context.Background(), message.NewMessage("m-2", []byte("{"))); err != nil {
		t.Fatalf("malformed payload must not be retried, got %v", err)
	}
	if !strings.Contains(buf.String(), "discarding malformed item.created event") {
		t.Fatalf("expected warning, got %s", buf.String())
	}
}

func TestNewSubscriber_SQLNeedsDatabase(t *testing.T) {
	_, _, err := newSubscriber(&config.Config{NotifierBackend: config.NotifierSQL}, logger.Nop())
	if err == nil {
		t.Fatal("expected error without DATABASE_URL")
	}
}
