package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RiskSentinel/internal/model"
)

func TestMemoryStore_SeededOnCreate(t *testing.T) {
	s := NewMemoryStore()
	portfolios, err := s.ListPortfolios(context.Background())
	require.NoError(t, err)
	require.Len(t, portfolios, len(SeedPortfolios))
	assert.Equal(t, int64(1), portfolios[0].ID)
}

func TestMemoryStore_CRUD(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	created, err := s.CreatePortfolio(ctx, model.Portfolio{
		Name: "Scratch", Type: model.TypeMultiAsset,
		Positions: []model.Position{{Ticker: "SPY", Weight: 1, AssetClass: "equity"}},
	})
	require.NoError(t, err)

	got, err := s.GetPortfolio(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Scratch", got.Name)

	require.NoError(t, s.DeletePortfolio(ctx, created.ID))
	_, err = s.GetPortfolio(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.DeletePortfolio(ctx, created.ID), ErrNotFound)
}

func TestMemoryStore_SnapshotOrdering(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.SaveRiskSnapshot(ctx, RiskSnapshot{PortfolioID: 1, Var95: float64(i)}))
	}

	snaps, err := s.RecentSnapshots(ctx, 1, 3)
	require.NoError(t, err)
	require.Len(t, snaps, 3)
	assert.Equal(t, 4.0, snaps[0].Var95)
	assert.Equal(t, 3.0, snaps[1].Var95)
	assert.Equal(t, 2.0, snaps[2].Var95)
}
