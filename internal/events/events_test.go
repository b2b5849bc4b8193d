package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsyncSinkDeliversEvents(t *testing.T) {
	var mu sync.Mutex
	var received []Event

	sink := NewAsyncSink(8, func(e Event) {
		mu.Lock()
		received = append(received, e)
		mu.Unlock()
	})

	ctx, cancel := context.WithCancel(context.Background())
	sink.Start(ctx)

	sink.Publish(New(EventMatchingCompleted, map[string]any{"brand_id": "b1"}))
	sink.Publish(New(EventFeedbackReceived, map[string]any{"match_id": "m1"}))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(received) == 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	sink.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 2)
	assert.Equal(t, EventMatchingCompleted, received[0].Name)
	assert.Equal(t, "b1", received[0].Payload["brand_id"])
	assert.NotEmpty(t, received[0].ID)
	assert.False(t, received[0].OccurredAt.IsZero())
}

func TestAsyncSinkDropsWhenBufferFull(t *testing.T) {
	// цикл доставки не запущен — буфер заполняется и лишние события отбрасываются
	sink := NewAsyncSink(2)

	sink.Publish(New(EventScoreCalculated, nil))
	sink.Publish(New(EventScoreCalculated, nil))
	sink.Publish(New(EventScoreCalculated, nil)) // не должно блокировать

	assert.Len(t, sink.ch, 2)
}

func TestNoopSink(t *testing.T) {
	var sink Sink = NoopSink{}
	sink.Publish(New(EventPortfolioOptimized, nil))
}
