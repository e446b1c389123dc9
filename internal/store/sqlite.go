package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"RiskSentinel/internal/model"
)

// SQLiteStore persists portfolios and risk snapshots to SQLite.
type SQLiteStore struct {
	db  *sql.DB
	mu  sync.Mutex
	log zerolog.Logger
}

// NewSQLiteStore opens (or creates) the database, runs migrations and
// seeds the default portfolios when the store is empty.
func NewSQLiteStore(dbPath string, log zerolog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	s := &SQLiteStore{db: db, log: log}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if err := s.seed(); err != nil {
		db.Close()
		return nil, fmt.Errorf("seed: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite store opened")
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS portfolios (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			name        TEXT NOT NULL,
			type        TEXT NOT NULL,
			description TEXT,
			created_at  INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS positions (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			portfolio_id INTEGER NOT NULL REFERENCES portfolios(id) ON DELETE CASCADE,
			ticker       TEXT NOT NULL,
			name         TEXT,
			weight       REAL NOT NULL,
			asset_class  TEXT,
			sector       TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_positions_portfolio ON positions(portfolio_id)`,

		`CREATE TABLE IF NOT EXISTS risk_snapshots (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			portfolio_id INTEGER NOT NULL REFERENCES portfolios(id) ON DELETE CASCADE,
			timestamp    INTEGER NOT NULL,
			volatility   REAL,
			var_95       REAL,
			cvar_95      REAL,
			sharpe       REAL,
			max_drawdown REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_portfolio_ts ON risk_snapshots(portfolio_id, timestamp)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

func (s *SQLiteStore) seed() error {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM portfolios`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, p := range SeedPortfolios {
		if _, err := s.CreatePortfolio(context.Background(), p); err != nil {
			return err
		}
	}
	s.log.Info().Int("portfolios", len(SeedPortfolios)).Msg("seeded default portfolios")
	return nil
}

func (s *SQLiteStore) ListPortfolios(ctx context.Context) ([]model.Portfolio, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, type, description FROM portfolios ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var portfolios []model.Portfolio
	for rows.Next() {
		var p model.Portfolio
		if err := rows.Scan(&p.ID, &p.Name, &p.Type, &p.Description); err != nil {
			return nil, err
		}
		portfolios = append(portfolios, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range portfolios {
		positions, err := s.positions(ctx, portfolios[i].ID)
		if err != nil {
			return nil, err
		}
		portfolios[i].Positions = positions
	}
	return portfolios, nil
}

func (s *SQLiteStore) GetPortfolio(ctx context.Context, id int64) (model.Portfolio, error) {
	var p model.Portfolio
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, type, description FROM portfolios WHERE id = ?`, id).
		Scan(&p.ID, &p.Name, &p.Type, &p.Description)
	if err == sql.ErrNoRows {
		return model.Portfolio{}, ErrNotFound
	}
	if err != nil {
		return model.Portfolio{}, err
	}
	p.Positions, err = s.positions(ctx, id)
	if err != nil {
		return model.Portfolio{}, err
	}
	return p, nil
}

func (s *SQLiteStore) positions(ctx context.Context, portfolioID int64) ([]model.Position, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT ticker, name, weight, asset_class, sector FROM positions
		 WHERE portfolio_id = ? ORDER BY id`, portfolioID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var positions []model.Position
	for rows.Next() {
		var pos model.Position
		if err := rows.Scan(&pos.Ticker, &pos.Name, &pos.Weight, &pos.AssetClass, &pos.Sector); err != nil {
			return nil, err
		}
		positions = append(positions, pos)
	}
	return positions, rows.Err()
}

func (s *SQLiteStore) CreatePortfolio(ctx context.Context, p model.Portfolio) (model.Portfolio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Portfolio{}, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO portfolios (name, type, description, created_at) VALUES (?,?,?,?)`,
		p.Name, p.Type, p.Description, time.Now().Unix())
	if err != nil {
		return model.Portfolio{}, err
	}
	p.ID, err = res.LastInsertId()
	if err != nil {
		return model.Portfolio{}, err
	}

	for _, pos := range p.Positions {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO positions (portfolio_id, ticker, name, weight, asset_class, sector)
			 VALUES (?,?,?,?,?,?)`,
			p.ID, pos.Ticker, pos.Name, pos.Weight, pos.AssetClass, pos.Sector); err != nil {
			return model.Portfolio{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return model.Portfolio{}, err
	}
	return p, nil
}

func (s *SQLiteStore) DeletePortfolio(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM portfolios WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) SaveRiskSnapshot(ctx context.Context, snap RiskSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := snap.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO risk_snapshots
		 (portfolio_id, timestamp, volatility, var_95, cvar_95, sharpe, max_drawdown)
		 VALUES (?,?,?,?,?,?,?)`,
		snap.PortfolioID, ts.Unix(), snap.Volatility, snap.Var95,
		snap.CVar95, snap.Sharpe, snap.MaxDrawdown)
	return err
}

func (s *SQLiteStore) RecentSnapshots(ctx context.Context, portfolioID int64, limit int) ([]RiskSnapshot, error) {
	if limit <= 0 {
		limit = 30
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, portfolio_id, timestamp, volatility, var_95, cvar_95, sharpe, max_drawdown
		 FROM risk_snapshots WHERE portfolio_id = ?
		 ORDER BY timestamp DESC LIMIT ?`, portfolioID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []RiskSnapshot
	for rows.Next() {
		var snap RiskSnapshot
		var ts int64
		if err := rows.Scan(&snap.ID, &snap.PortfolioID, &ts, &snap.Volatility,
			&snap.Var95, &snap.CVar95, &snap.Sharpe, &snap.MaxDrawdown); err != nil {
			return nil, err
		}
		snap.Timestamp = time.Unix(ts, 0)
		snapshots = append(snapshots, snap)
	}
	return snapshots, rows.Err()
}

func (s *SQLiteStore) Close() error {
	s.log.Info().Msg("closing sqlite store")
	return s.db.Close()
}
