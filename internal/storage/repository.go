// ABOUTME: Repository interface for wellness log storage.
// ABOUTME: Defines the contract for entries, chat turns, and tip usage.
package storage

import (
	"github.com/harperreed/coach/internal/models"
)

// Repository defines the storage interface for coach data.
// Both the CSV and SQLite backends keep rows in append order.
type Repository interface {
	// Wellness log
	AppendEntry(e *models.Entry) error
	ListEntries(limit int) ([]*models.Entry, error)
	ClearEntries() error

	// Chat history
	AppendExchange(user, bot models.ChatTurn) error
	ListChat(limit int) ([]models.ChatTurn, error)
	ClearChat() error

	// Tip usage is write-only
	AppendTipUsage(u models.TipUsage) error

	// Lifecycle
	Close() error
}

// lastN returns the final n elements of s, or all of s when n <= 0.
func lastN[T any](s []T, n int) []T {
	if n <= 0 || n >= len(s) {
		return s
	}
	return s[len(s)-n:]
}
