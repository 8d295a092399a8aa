// Package storage provides abstractions for live billing session storage.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/mmynk/retailbill/internal/billing"
	"github.com/mmynk/retailbill/internal/models"
)

// ErrSessionNotFound is returned for unknown and expired sessions.
var ErrSessionNotFound = errors.New("session not found")

// Store defines the interface for session and bill storage operations.
// Each session owns exactly one bill; operations on one session never touch
// another.
type Store interface {
	// CreateSession persists a new session with an empty bill.
	// The session.ID and CreatedAt fields are populated by the store if unset.
	CreateSession(ctx context.Context, session *models.Session) error

	// GetSession retrieves a live session by its ID.
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)

	// GetBill rebuilds the session's bill with its items in insertion order.
	GetBill(ctx context.Context, sessionID string) (*billing.Bill, error)

	// AppendItem adds item to the end of the session's bill and returns the
	// new item count.
	AppendItem(ctx context.Context, sessionID string, item billing.LineItem) (int, error)

	// ResetBill removes every item from the session's bill.
	ResetBill(ctx context.Context, sessionID string) error

	// DeleteExpired removes sessions that lapsed before now and returns how
	// many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)

	// Close releases any resources held by the store.
	Close() error
}
