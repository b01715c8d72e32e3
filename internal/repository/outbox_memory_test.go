package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryOutboxRepository_AppendAndFetch(t *testing.T) {
	repo := NewMemoryOutboxRepository()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Append(ctx, &OutboxEvent{
			AggregateID: "order-1",
			EventType:   "order.placed",
			Payload:     []byte(`{}`),
		}))
	}

	events, err := repo.GetUnprocessedEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, int64(1), events[0].ID)
	assert.False(t, events[0].CreatedAt.IsZero())
}

func TestMemoryOutboxRepository_LimitAndMark(t *testing.T) {
	repo := NewMemoryOutboxRepository()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Append(ctx, &OutboxEvent{AggregateID: "order-1", EventType: "order.placed"}))
	}

	batch, err := repo.GetUnprocessedEvents(ctx, 2)
	require.NoError(t, err)
	require.Len(t, batch, 2)

	require.NoError(t, repo.MarkEventAsProcessed(ctx, batch[0].ID))
	require.NoError(t, repo.MarkEventAsProcessed(ctx, batch[1].ID))

	rest, err := repo.GetUnprocessedEvents(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, rest, 3)
}
