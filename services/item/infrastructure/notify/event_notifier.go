// Package notify emits the item.created signal. Delivery is best effort and
// at most once: publishing runs on its own goroutine, detached from the
// request's cancellation, and failures are logged and dropped.
package notify

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/ghuser/geoitems/pkg/events"
	"github.com/ghuser/geoitems/pkg/logger"
	domainevents "github.com/ghuser/geoitems/services/item/domain/events"
	"github.com/ghuser/geoitems/services/item/domain/models"
)

const (
	eventVersion   = 1
	publishTimeout = 5 * time.Second
)

// EventNotifier publishes ItemCreatedEvents through an events.Publisher.
type EventNotifier struct {
	pub   events.Publisher
	log   logger.Logger
	clock clockwork.Clock
	wg    sync.WaitGroup
}

// NewEventNotifier returns a notifier publishing through pub. A nil clock
// means the wall clock.
func NewEventNotifier(pub events.Publisher, log logger.Logger, clock clockwork.Clock) *EventNotifier {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &EventNotifier{pub: pub, log: log, clock: clock}
}

// NotifyCreated dispatches the event and returns immediately.
func (n *EventNotifier) NotifyCreated(ctx context.Context, id models.ItemID, name string) {
	ctx = context.WithoutCancel(ctx)
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				n.log.WarnContext(ctx, "item.created notification panicked", "item_id", id.String(), "panic", r)
			}
		}()

		if err := n.publish(ctx, id, name); err != nil {
			n.log.WarnContext(ctx, "item.created notification dropped", "item_id", id.String(), "error", err)
		}
	}()
}

// Wait blocks until every dispatched notification has finished.
func (n *EventNotifier) Wait() {
	n.wg.Wait()
}

func (n *EventNotifier) publish(ctx context.Context, id models.ItemID, name string) error {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	event := domainevents.ItemCreatedEvent{
		EventID:    uuid.New(),
		Version:    eventVersion,
		ItemID:     id.String(),
		Name:       name,
		OccurredAt: n.clock.Now().UTC(),
	}
	msg, err := events.NewJSONMessage(event, event.ItemID)
	if err != nil {
		return err
	}
	msg.Metadata.Set(events.MetaEventID, event.EventID.String())
	msg.Metadata.Set(events.MetaEventVersion, strconv.Itoa(eventVersion))

	if err := n.pub.Publish(ctx, domainevents.TopicItemCreated, msg); err != nil {
		return fmt.Errorf("publish %s: %w", domainevents.TopicItemCreated, err)
	}
	return nil
}
