package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RiskSentinel/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore_SeedsDefaultPortfolios(t *testing.T) {
	s := newTestStore(t)

	portfolios, err := s.ListPortfolios(context.Background())
	require.NoError(t, err)
	require.Len(t, portfolios, len(SeedPortfolios))

	for i, p := range portfolios {
		assert.Equal(t, SeedPortfolios[i].Name, p.Name)
		assert.Len(t, p.Positions, len(SeedPortfolios[i].Positions))
	}
}

func TestSQLiteStore_CreateAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreatePortfolio(ctx, model.Portfolio{
		Name:        "Custom",
		Type:        model.TypeEquity,
		Description: "test book",
		Positions: []model.Position{
			{Ticker: "AAPL", Name: "Apple", Weight: 0.5, AssetClass: "equity", Sector: "Technology"},
			{Ticker: model.CashTicker, Name: "Cash", Weight: 0.5, AssetClass: "cash"},
		},
	})
	require.NoError(t, err)
	assert.Positive(t, created.ID)

	got, err := s.GetPortfolio(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Custom", got.Name)
	assert.Equal(t, model.TypeEquity, got.Type)
	require.Len(t, got.Positions, 2)
	assert.Equal(t, "AAPL", got.Positions[0].Ticker)
	assert.Equal(t, "Technology", got.Positions[0].Sector)
}

func TestSQLiteStore_GetMissing(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetPortfolio(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStore_DeleteCascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreatePortfolio(ctx, model.Portfolio{
		Name: "Doomed", Type: model.TypeEquity,
		Positions: []model.Position{{Ticker: "SPY", Weight: 1, AssetClass: "equity"}},
	})
	require.NoError(t, err)
	require.NoError(t, s.SaveRiskSnapshot(ctx, RiskSnapshot{PortfolioID: created.ID, Var95: 1.5}))

	require.NoError(t, s.DeletePortfolio(ctx, created.ID))

	_, err = s.GetPortfolio(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	snaps, err := s.RecentSnapshots(ctx, created.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, snaps)

	assert.ErrorIs(t, s.DeletePortfolio(ctx, created.ID), ErrNotFound)
}

func TestSQLiteStore_SnapshotsNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	portfolios, err := s.ListPortfolios(ctx)
	require.NoError(t, err)
	id := portfolios[0].ID

	base := time.Now().Add(-3 * time.Hour)
	for i := 0; i < 3; i++ {
		require.NoError(t, s.SaveRiskSnapshot(ctx, RiskSnapshot{
			PortfolioID: id,
			Timestamp:   base.Add(time.Duration(i) * time.Hour),
			Var95:       float64(i),
		}))
	}

	snaps, err := s.RecentSnapshots(ctx, id, 2)
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, 2.0, snaps[0].Var95)
	assert.Equal(t, 1.0, snaps[1].Var95)
}
