package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/session/domain"
	sessionout "github.com/niksy79/smart-scale-for-meat-dryer/internal/modules/session/port/out"

	_ "modernc.org/sqlite"
)

// SQLiteRecordProjector mirrors the current session's records into a
// queryable table. Each projection replaces the previous one: the device
// tracks a single run, so the table only ever holds the latest session.
type SQLiteRecordProjector struct {
	db *sql.DB
}

func NewSQLiteRecordProjector(dbPath string) (sessionout.RecordProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteRecordProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return projector, nil
}

func (p *SQLiteRecordProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS daily_records (
  session_id TEXT NOT NULL,
  day INTEGER NOT NULL,
  timestamp INTEGER NOT NULL,
  weight_g REAL NOT NULL,
  loss_percent REAL NOT NULL,
  day_change_g REAL NOT NULL,
  PRIMARY KEY (session_id, day)
);
`
	if _, err := p.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create daily_records table: %w", err)
	}
	return nil
}

func (p *SQLiteRecordProjector) Project(ctx context.Context, session domain.Session) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin projection: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM daily_records WHERE session_id <> ?`, session.ID); err != nil {
		return fmt.Errorf("prune stale sessions: %w", err)
	}
	const stmt = `
INSERT INTO daily_records (session_id, day, timestamp, weight_g, loss_percent, day_change_g)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(session_id, day) DO UPDATE SET
  timestamp=excluded.timestamp,
  weight_g=excluded.weight_g,
  loss_percent=excluded.loss_percent,
  day_change_g=excluded.day_change_g;
`
	for _, record := range session.Records {
		if _, err := tx.ExecContext(ctx, stmt,
			session.ID, record.Day, record.Timestamp, record.Weight, record.LossPercent, record.DayChange,
		); err != nil {
			return fmt.Errorf("upsert record day %d: %w", record.Day, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit projection: %w", err)
	}
	return nil
}

func (p *SQLiteRecordProjector) ListRecords(ctx context.Context, sessionID string) ([]domain.DailyRecord, error) {
	rows, err := p.db.QueryContext(ctx, `
SELECT day, timestamp, weight_g, loss_percent, day_change_g
FROM daily_records WHERE session_id = ? ORDER BY day`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []domain.DailyRecord
	for rows.Next() {
		var record domain.DailyRecord
		if err := rows.Scan(&record.Day, &record.Timestamp, &record.Weight, &record.LossPercent, &record.DayChange); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}
