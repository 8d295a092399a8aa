package models

// Session is one client's exclusive hold on a bill.
type Session struct {
	// ID is the unique identifier for the session (UUID format).
	ID string

	// CreatedAt is the Unix timestamp when the session was started.
	CreatedAt int64

	// ExpiresAt is the Unix timestamp after which the session and its bill
	// are no longer reachable.
	ExpiresAt int64
}

// Expired reports whether the session has lapsed at unix time now.
func (s *Session) Expired(now int64) bool {
	return s.ExpiresAt <= now
}
