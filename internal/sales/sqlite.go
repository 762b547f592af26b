package sales

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

// sqliteTimeLayout is fixed-width and UTC-only so that lexicographic
// comparison of stored timestamps matches chronological order.
const sqliteTimeLayout = "2006-01-02 15:04:05.000000000"

// SQLiteStorage implements Storage on a single SQLite file. Amounts are
// stored as decimal strings so no precision is lost in transit.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens (creating if needed) the database at path and
// migrates the schema. Use ":memory:" for an in-memory database.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite serializes writes anyway; a single connection avoids
	// SQLITE_BUSY churn between concurrent mutations.
	db.SetMaxOpenConns(1)

	s := &SQLiteStorage{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

func (s *SQLiteStorage) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sales (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		item TEXT NOT NULL,
		category TEXT NOT NULL,
		amount TEXT NOT NULL,
		quantity INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_sales_user ON sales(user_id);
	CREATE INDEX IF NOT EXISTS idx_sales_created ON sales(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStorage) Insert(ctx context.Context, draft Draft) (*Record, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO sales (user_id, item, category, amount, quantity, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		draft.UserID, draft.Item, string(draft.Category),
		draft.Amount.String(), draft.Quantity, now.Format(sqliteTimeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert record: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted id: %w", err)
	}

	return &Record{
		ID:        id,
		UserID:    draft.UserID,
		Item:      draft.Item,
		Category:  draft.Category,
		Amount:    draft.Amount,
		Quantity:  draft.Quantity,
		CreatedAt: now,
	}, nil
}

func (s *SQLiteStorage) ListAll(ctx context.Context) ([]*Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, item, category, amount, quantity, created_at
		 FROM sales ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (s *SQLiteStorage) ListBetween(ctx context.Context, start, end time.Time) ([]*Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, item, category, amount, quantity, created_at
		 FROM sales WHERE created_at >= ? AND created_at <= ? ORDER BY id ASC`,
		start.UTC().Format(sqliteTimeLayout), end.UTC().Format(sqliteTimeLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to list records by range: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (s *SQLiteStorage) DeleteLast(ctx context.Context, userID int64) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM sales WHERE id = (
		   SELECT id FROM sales WHERE user_id = ? ORDER BY id DESC LIMIT 1
		 )`, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete last record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}

func (s *SQLiteStorage) ResetAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sales`); err != nil {
		return fmt.Errorf("failed to reset ledger: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func scanRecords(rows *sql.Rows) ([]*Record, error) {
	records := make([]*Record, 0)
	for rows.Next() {
		var (
			r         Record
			category  string
			amount    string
			createdAt string
		)
		if err := rows.Scan(&r.ID, &r.UserID, &r.Item, &category, &amount, &r.Quantity, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		r.Category = Category(category)

		dec, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("corrupt amount %q for record %d: %w", amount, r.ID, err)
		}
		r.Amount = dec

		ts, err := time.ParseInLocation(sqliteTimeLayout, createdAt, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("corrupt timestamp %q for record %d: %w", createdAt, r.ID, err)
		}
		r.CreatedAt = ts

		records = append(records, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}
	return records, nil
}
