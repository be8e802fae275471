package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/guttosm/marketpulse/internal/domain/models"
	pq "github.com/lib/pq"
)

// TradesRepository defines contract for DB operations.
type TradesRepository interface {
	InsertTradesBatch(sourceFile string, trades []models.TradeRecord) error
	ListTrades(ctx context.Context, startDate *time.Time, endDate *time.Time) ([]models.TradeRecord, error)
	HasIngestionForFile(filename string) (bool, error)
	UpsertIngestionLog(filename string, rowCount int, skipped int) error
	DeleteTradesByFile(filename string) error
	GetLastKnownIndex(ctx context.Context) (float64, bool, error)
	SaveLastKnownIndex(ctx context.Context, value float64) error
}

type tradesRepository struct {
	db *sql.DB
}

func NewTradesRepository(db *sql.DB) TradesRepository {
	return &tradesRepository{db: db}
}

// InsertTradesBatch inserts multiple trades into DB in a single transaction.
// Every row is tagged with sourceFile so a file can be re-ingested with --force.
func (r *tradesRepository) InsertTradesBatch(sourceFile string, trades []models.TradeRecord) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	// Small optimization for bulk load
	if _, err := tx.Exec(`SET LOCAL synchronous_commit = OFF`); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.Prepare(pq.CopyIn(
		"trades",
		"trade_time",
		"ticker",
		"price",
		"volume",
		"source_file",
	))
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for _, rec := range trades {
		if _, err := stmt.Exec(rec.Time, rec.Ticker, rec.Price, rec.Volume, sourceFile); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}

	if _, err := stmt.Exec(); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// ListTrades returns stored trades, optionally bounded by trade day (inclusive).
// Rows come back in insertion order so first-seen tie-breaking in the
// aggregator matches the order of the source files.
func (r *tradesRepository) ListTrades(ctx context.Context, startDate *time.Time, endDate *time.Time) ([]models.TradeRecord, error) {
	conditions := "TRUE"
	var args []interface{}
	if startDate != nil {
		args = append(args, *startDate)
		conditions += fmt.Sprintf(" AND trade_time >= $%d", len(args))
	}
	if endDate != nil {
		// end is a day; include all of it
		args = append(args, endDate.AddDate(0, 0, 1))
		conditions += fmt.Sprintf(" AND trade_time < $%d", len(args))
	}

	query := fmt.Sprintf(`
		SELECT trade_time, ticker, price, volume
		FROM trades
		WHERE %s
		ORDER BY id
	`, conditions)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.TradeRecord
	for rows.Next() {
		var rec models.TradeRecord
		if err := rows.Scan(&rec.Time, &rec.Ticker, &rec.Price, &rec.Volume); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// HasIngestionForFile checks if a file was already ingested.
func (r *tradesRepository) HasIngestionForFile(filename string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM ingestion_log WHERE filename = $1)`, filename).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// UpsertIngestionLog records (or updates) an ingestion entry for a file.
func (r *tradesRepository) UpsertIngestionLog(filename string, rowCount int, skipped int) error {
	_, err := r.db.Exec(`
		INSERT INTO ingestion_log (filename, row_count, skipped_count)
		VALUES ($1, $2, $3)
		ON CONFLICT (filename)
		DO UPDATE SET row_count = EXCLUDED.row_count,
					  skipped_count = EXCLUDED.skipped_count,
					  ingested_at = NOW()
	`, filename, rowCount, skipped)
	return err
}

// DeleteTradesByFile removes all trades loaded from filename.
func (r *tradesRepository) DeleteTradesByFile(filename string) error {
	_, err := r.db.Exec(`DELETE FROM trades WHERE source_file = $1`, filename)
	return err
}

// GetLastKnownIndex reads the persisted index value. The bool is false when
// no index has been saved yet.
func (r *tradesRepository) GetLastKnownIndex(ctx context.Context) (float64, bool, error) {
	var v float64
	err := r.db.QueryRowContext(ctx, `SELECT last_index FROM index_state WHERE id = 1`).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return v, true, nil
}

// SaveLastKnownIndex stores value as the single persisted index.
func (r *tradesRepository) SaveLastKnownIndex(ctx context.Context, value float64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO index_state (id, last_index)
		VALUES (1, $1)
		ON CONFLICT (id)
		DO UPDATE SET last_index = EXCLUDED.last_index,
					  updated_at = NOW()
	`, value)
	return err
}
