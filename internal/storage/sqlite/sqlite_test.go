package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/retailbill/internal/billing"
	"github.com/mmynk/retailbill/internal/models"
	"github.com/mmynk/retailbill/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New()
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newSession(t *testing.T, store *SQLiteStore) *models.Session {
	t.Helper()
	session := &models.Session{ExpiresAt: time.Now().Add(time.Hour).Unix()}
	if err := store.CreateSession(context.Background(), session); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	return session
}

func item(t *testing.T, name, price string, qty int) billing.LineItem {
	t.Helper()
	it, err := billing.NewLineItem(name, decimal.RequireFromString(price), qty)
	if err != nil {
		t.Fatalf("NewLineItem failed: %v", err)
	}
	return it
}

func TestSQLiteStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateSession generates ID and timestamp", func(t *testing.T) {
		session := newSession(t, store)
		if session.ID == "" {
			t.Error("Expected session ID to be generated")
		}
		if session.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}

		got, err := store.GetSession(ctx, session.ID)
		if err != nil {
			t.Fatalf("GetSession failed: %v", err)
		}
		if got.ExpiresAt != session.ExpiresAt {
			t.Errorf("ExpiresAt mismatch: got %d, want %d", got.ExpiresAt, session.ExpiresAt)
		}
	})

	t.Run("new session has an empty bill", func(t *testing.T) {
		session := newSession(t, store)
		bill, err := store.GetBill(ctx, session.ID)
		if err != nil {
			t.Fatalf("GetBill failed: %v", err)
		}
		if bill.Len() != 0 {
			t.Errorf("Expected 0 items, got %d", bill.Len())
		}
	})

	t.Run("AppendItem keeps insertion order and exact prices", func(t *testing.T) {
		session := newSession(t, store)
		items := []billing.LineItem{
			item(t, "Pen", "10.00", 3),
			item(t, "Notebook", "50.00", 2),
			item(t, "Clip", "0.05", 7),
		}
		for i, it := range items {
			count, err := store.AppendItem(ctx, session.ID, it)
			if err != nil {
				t.Fatalf("AppendItem failed: %v", err)
			}
			if count != i+1 {
				t.Errorf("Item count = %d, want %d", count, i+1)
			}
		}

		bill, err := store.GetBill(ctx, session.ID)
		if err != nil {
			t.Fatalf("GetBill failed: %v", err)
		}
		got := bill.Items()
		if len(got) != len(items) {
			t.Fatalf("Expected %d items, got %d", len(items), len(got))
		}
		for i := range items {
			if got[i].Name() != items[i].Name() {
				t.Errorf("Item %d name = %s, want %s", i, got[i].Name(), items[i].Name())
			}
			if !got[i].UnitPrice().Equal(items[i].UnitPrice()) {
				t.Errorf("Item %d price = %s, want %s", i, got[i].UnitPrice(), items[i].UnitPrice())
			}
			if got[i].Quantity() != items[i].Quantity() {
				t.Errorf("Item %d quantity = %d, want %d", i, got[i].Quantity(), items[i].Quantity())
			}
		}
		if net := bill.Compute().NetAmount.StringFixed(2); net != "123.18" {
			t.Errorf("Net amount = %s, want 123.18", net)
		}
	})

	t.Run("sessions do not share bills", func(t *testing.T) {
		a := newSession(t, store)
		b := newSession(t, store)
		if _, err := store.AppendItem(ctx, a.ID, item(t, "Pen", "10", 1)); err != nil {
			t.Fatalf("AppendItem failed: %v", err)
		}

		bill, err := store.GetBill(ctx, b.ID)
		if err != nil {
			t.Fatalf("GetBill failed: %v", err)
		}
		if bill.Len() != 0 {
			t.Errorf("Session b sees %d items from session a", bill.Len())
		}
	})

	t.Run("ResetBill clears items and restarts the count", func(t *testing.T) {
		session := newSession(t, store)
		store.AppendItem(ctx, session.ID, item(t, "Pen", "10", 1))
		store.AppendItem(ctx, session.ID, item(t, "Ink", "2", 1))

		if err := store.ResetBill(ctx, session.ID); err != nil {
			t.Fatalf("ResetBill failed: %v", err)
		}
		bill, err := store.GetBill(ctx, session.ID)
		if err != nil {
			t.Fatalf("GetBill failed: %v", err)
		}
		if bill.Len() != 0 {
			t.Errorf("Expected 0 items after reset, got %d", bill.Len())
		}

		count, err := store.AppendItem(ctx, session.ID, item(t, "Tape", "4", 1))
		if err != nil {
			t.Fatalf("AppendItem failed: %v", err)
		}
		if count != 1 {
			t.Errorf("Item count after reset = %d, want 1", count)
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		if _, err := store.GetBill(ctx, "nonexistent-id"); !errors.Is(err, storage.ErrSessionNotFound) {
			t.Errorf("GetBill error = %v, want ErrSessionNotFound", err)
		}
		if _, err := store.AppendItem(ctx, "nonexistent-id", item(t, "Pen", "1", 1)); !errors.Is(err, storage.ErrSessionNotFound) {
			t.Errorf("AppendItem error = %v, want ErrSessionNotFound", err)
		}
		if err := store.ResetBill(ctx, "nonexistent-id"); !errors.Is(err, storage.ErrSessionNotFound) {
			t.Errorf("ResetBill error = %v, want ErrSessionNotFound", err)
		}
	})
}

func TestExpiredSessions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	live := newSession(t, store)
	expired := &models.Session{ExpiresAt: time.Now().Add(-time.Minute).Unix()}
	if err := store.CreateSession(ctx, expired); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if _, err := store.AppendItem(ctx, live.ID, item(t, "Pen", "10", 1)); err != nil {
		t.Fatalf("AppendItem failed: %v", err)
	}

	if _, err := store.GetBill(ctx, expired.ID); !errors.Is(err, storage.ErrSessionNotFound) {
		t.Errorf("GetBill on expired session error = %v, want ErrSessionNotFound", err)
	}

	n, err := store.DeleteExpired(ctx, time.Now())
	if err != nil {
		t.Fatalf("DeleteExpired failed: %v", err)
	}
	if n != 1 {
		t.Errorf("DeleteExpired removed %d sessions, want 1", n)
	}

	// Moving the clock past the live session's expiry removes it and its items.
	store.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := store.GetSession(ctx, live.ID); !errors.Is(err, storage.ErrSessionNotFound) {
		t.Errorf("GetSession after expiry error = %v, want ErrSessionNotFound", err)
	}
	n, err = store.DeleteExpired(ctx, store.now())
	if err != nil {
		t.Fatalf("DeleteExpired failed: %v", err)
	}
	if n != 1 {
		t.Errorf("DeleteExpired removed %d sessions, want 1", n)
	}

	var orphans int
	if err := store.db.QueryRow("SELECT COUNT(*) FROM line_items").Scan(&orphans); err != nil {
		t.Fatalf("count items: %v", err)
	}
	if orphans != 0 {
		t.Errorf("Expected items to be deleted with their session, %d remain", orphans)
	}
}
