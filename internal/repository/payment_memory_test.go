package repository

import (
	"context"
	"testing"

	"github.com/glaucomordente/fastfootapi-fiap-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryPaymentRepository_SaveAndGet(t *testing.T) {
	repo := NewMemoryPaymentRepository()
	ctx := context.Background()

	p, err := domain.NewPayment("s1", 37.80)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, p))

	byID, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, byID.ID)

	bySession, err := repo.GetBySession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, p.ID, bySession.ID)

	_, err = repo.GetByID(ctx, "ghost")
	assert.ErrorIs(t, err, ErrPaymentNotFound)

	_, err = repo.GetBySession(ctx, "ghost")
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestMemoryPaymentRepository_SessionTracksLatest(t *testing.T) {
	repo := NewMemoryPaymentRepository()
	ctx := context.Background()

	first, err := domain.NewPayment("s1", 10)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, first))

	second, err := domain.NewPayment("s1", 20)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, second))

	latest, err := repo.GetBySession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)

	// the first payment stays reachable by id
	old, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.InDelta(t, 10, old.Amount, 0.001)
}

func TestMemoryPaymentRepository_CopiesAreIsolated(t *testing.T) {
	repo := NewMemoryPaymentRepository()
	ctx := context.Background()

	p, err := domain.NewPayment("s1", 37.80)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	got.Status = domain.PaymentApproved

	again, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPending, again.Status)
}
