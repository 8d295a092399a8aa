// Package sqlite provides an in-memory SQLite implementation of the
// storage.Store interface.
//
// The database lives only as long as the process. It is held on a single
// connection, which both keeps the in-memory database alive and serializes
// every operation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/retailbill/internal/billing"
	"github.com/mmynk/retailbill/internal/models"
	"github.com/mmynk/retailbill/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// New creates a new in-memory SQLiteStore and runs migrations.
func New() (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db, now: time.Now}, nil
}

// Close closes the database connection, discarding every session.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateSession persists a new session.
func (s *SQLiteStore) CreateSession(ctx context.Context, session *models.Session) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if session.CreatedAt == 0 {
		session.CreatedAt = s.now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO sessions (id, created_at, expires_at) VALUES (?, ?, ?)",
		session.ID, session.CreatedAt, session.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// GetSession retrieves a live session by ID.
func (s *SQLiteStore) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	return s.liveSession(ctx, s.db, sessionID)
}

// GetBill rebuilds the session's bill from its stored items.
func (s *SQLiteStore) GetBill(ctx context.Context, sessionID string) (*billing.Bill, error) {
	if _, err := s.liveSession(ctx, s.db, sessionID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT name, unit_price, quantity FROM line_items WHERE session_id = ? ORDER BY position",
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	defer rows.Close()

	bill := billing.NewBill()
	for rows.Next() {
		var (
			name     string
			price    string
			quantity int
		)
		if err := rows.Scan(&name, &price, &quantity); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		item, err := decodeItem(name, price, quantity)
		if err != nil {
			return nil, fmt.Errorf("corrupt item in session %s: %w", sessionID, err)
		}
		bill.AddItem(item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	return bill, nil
}

// AppendItem adds item at the end of the session's bill.
func (s *SQLiteStore) AppendItem(ctx context.Context, sessionID string, item billing.LineItem) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := s.liveSession(ctx, tx, sessionID); err != nil {
		return 0, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO line_items (session_id, position, name, unit_price, quantity)
		 SELECT ?, COALESCE(MAX(position) + 1, 0), ?, ?, ? FROM line_items WHERE session_id = ?`,
		sessionID, item.Name(), item.UnitPrice().String(), item.Quantity(), sessionID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert item: %w", err)
	}

	var count int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM line_items WHERE session_id = ?", sessionID,
	).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return count, nil
}

// ResetBill deletes every item of the session's bill.
func (s *SQLiteStore) ResetBill(ctx context.Context, sessionID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := s.liveSession(ctx, tx, sessionID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM line_items WHERE session_id = ?", sessionID); err != nil {
		return fmt.Errorf("failed to delete items: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteExpired removes lapsed sessions; their items go with them.
func (s *SQLiteStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at <= ?", now.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted sessions: %w", err)
	}
	return n, nil
}

type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *SQLiteStore) liveSession(ctx context.Context, q rowQuerier, sessionID string) (*models.Session, error) {
	session := &models.Session{}
	err := q.QueryRowContext(ctx,
		"SELECT id, created_at, expires_at FROM sessions WHERE id = ?",
		sessionID,
	).Scan(&session.ID, &session.CreatedAt, &session.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", storage.ErrSessionNotFound, sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session.Expired(s.now().Unix()) {
		return nil, fmt.Errorf("%w: %s expired", storage.ErrSessionNotFound, sessionID)
	}
	return session, nil
}

func decodeItem(name, price string, quantity int) (billing.LineItem, error) {
	unitPrice, err := decimal.NewFromString(price)
	if err != nil {
		return billing.LineItem{}, fmt.Errorf("unit price %q: %w", price, err)
	}
	return billing.NewLineItem(name, unitPrice, quantity)
}
