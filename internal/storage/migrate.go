// ABOUTME: Data migration between coach storage backends.
// ABOUTME: Copies wellness entries and chat exchanges from source to destination.

package storage

import (
	"fmt"

	"github.com/harperreed/coach/internal/models"
)

// MigrateSummary holds counts of migrated rows.
type MigrateSummary struct {
	Entries   int
	Exchanges int
	// Skipped counts chat turns that could not be paired into an exchange.
	Skipped int
}

// MigrateData copies all entries and chat exchanges from src to dst, in
// order. The destination should be empty before calling this function.
// Tip usage is write-only and is not copied.
func MigrateData(src, dst Repository) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	entries, err := src.ListEntries(0)
	if err != nil {
		return nil, fmt.Errorf("list source entries: %w", err)
	}
	for _, e := range entries {
		if err := dst.AppendEntry(e); err != nil {
			return nil, fmt.Errorf("append entry %s: %w", e.Date, err)
		}
		summary.Entries++
	}

	turns, err := src.ListChat(0)
	if err != nil {
		return nil, fmt.Errorf("list source chat: %w", err)
	}
	for i := 0; i < len(turns); {
		if i+1 >= len(turns) || turns[i].Role != models.RoleUser || turns[i+1].Role != models.RoleBot {
			summary.Skipped++
			i++
			continue
		}
		if err := dst.AppendExchange(turns[i], turns[i+1]); err != nil {
			return nil, fmt.Errorf("append exchange at %s: %w", turns[i].Timestamp, err)
		}
		summary.Exchanges++
		i += 2
	}

	return summary, nil
}

// IsEmpty reports whether repo has no entries and no chat turns.
func IsEmpty(repo Repository) (bool, error) {
	entries, err := repo.ListEntries(1)
	if err != nil {
		return false, err
	}
	turns, err := repo.ListChat(1)
	if err != nil {
		return false, err
	}
	return len(entries) == 0 && len(turns) == 0, nil
}
