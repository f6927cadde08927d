package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

func TestNewJSONMessage(t *testing.T) {
	msg, err := NewJSONMessage(map[string]string{"item_id": "abc"}, "abc")
	require.NoError(t, err)

	assert.NotEmpty(t, msg.UUID)
	assert.JSONEq(t, `{"item_id":"abc"}`, string(msg.Payload))
	assert.Equal(t, "abc", msg.Metadata.Get(MetaPartitionKey))
}

func TestNewJSONMessage_NoKey(t *testing.T) {
	msg, err := NewJSONMessage(struct{}{}, "")
	require.NoError(t, err)
	assert.Empty(t, msg.Metadata.Get(MetaPartitionKey))
}

func TestNewJSONMessage_Unmarshalable(t *testing.T) {
	_, err := NewJSONMessage(make(chan int), "")
	assert.Error(t, err)
}

func TestWrapPublisher_DeliversWithTrace(t *testing.T) {
	tp := setupTracer()
	defer tp.Shutdown(context.Background()) //nolint:errcheck

	pubsub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 1}, NewLoggerAdapter(nopLogger()))
	defer pubsub.Close() //nolint:errcheck

	ch, err := pubsub.Subscribe(context.Background(), "item.created")
	require.NoError(t, err)

	ctx, span := otel.Tracer("test").Start(context.Background(), "publish")
	defer span.End()

	msg, err := NewJSONMessage(map[string]string{"name": "x"}, "")
	require.NoError(t, err)
	require.NoError(t, WrapPublisher(pubsub).Publish(ctx, "item.created", msg))

	select {
	case got := <-ch:
		got.Ack()
		var payload map[string]string
		require.NoError(t, json.Unmarshal(got.Payload, &payload))
		assert.Equal(t, "x", payload["name"])

		restored := trace.SpanFromContext(extractTrace(context.Background(), got))
		assert.Equal(t, span.SpanContext().TraceID(), restored.SpanContext().TraceID())
	case <-time.After(time.Second):
		t.Fatal("message not delivered")
	}
}
