// ABOUTME: Entry, chat, and tip usage operations for SQLite storage.
// ABOUTME: Implements Repository interface methods for the DB backend.
package storage

import (
	"database/sql"
	"fmt"

	"github.com/harperreed/coach/internal/models"
)

// AppendEntry stores a new wellness log row.
func (d *DB) AppendEntry(e *models.Entry) error {
	query := `
		INSERT INTO entries (date, sleep_hours, meals, mood, steps)
		VALUES (?, ?, ?, ?, ?)
	`
	var sleep sql.NullFloat64
	if e.SleepHours != nil {
		sleep = sql.NullFloat64{Float64: *e.SleepHours, Valid: true}
	}
	var steps sql.NullInt64
	if e.Steps != nil {
		steps = sql.NullInt64{Int64: *e.Steps, Valid: true}
	}

	_, err := d.db.Exec(query, e.Date, sleep, e.Meals, e.Mood, steps)
	if err != nil {
		return fmt.Errorf("append entry: %w", err)
	}
	return nil
}

// ListEntries returns wellness rows in append order, or the last limit rows.
func (d *DB) ListEntries(limit int) ([]*models.Entry, error) {
	query := `SELECT date, sleep_hours, meals, mood, steps FROM entries ORDER BY id`
	var args []interface{}
	if limit > 0 {
		query = `
			SELECT date, sleep_hours, meals, mood, steps FROM (
				SELECT id, date, sleep_hours, meals, mood, steps
				FROM entries ORDER BY id DESC LIMIT ?
			) ORDER BY id
		`
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	entries := []*models.Entry{}
	for rows.Next() {
		var e models.Entry
		var sleep sql.NullFloat64
		var steps sql.NullInt64

		if err := rows.Scan(&e.Date, &sleep, &e.Meals, &e.Mood, &steps); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		if sleep.Valid {
			e.SleepHours = &sleep.Float64
		}
		if steps.Valid {
			e.Steps = &steps.Int64
		}
		entries = append(entries, &e)
	}

	return entries, rows.Err()
}

// ClearEntries deletes every wellness row.
func (d *DB) ClearEntries() error {
	if _, err := d.db.Exec("DELETE FROM entries"); err != nil {
		return fmt.Errorf("clear entries: %w", err)
	}
	return nil
}

// AppendExchange stores both turns of an exchange in one transaction.
func (d *DB) AppendExchange(user, bot models.ChatTurn) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("append exchange: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `INSERT INTO chat_turns (timestamp, role, message) VALUES (?, ?, ?)`
	for _, turn := range []models.ChatTurn{user, bot} {
		if _, err := tx.Exec(query, turn.Timestamp, string(turn.Role), turn.Message); err != nil {
			return fmt.Errorf("append exchange: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("append exchange: %w", err)
	}
	return nil
}

// ListChat returns chat turns in append order, or the last limit turns.
func (d *DB) ListChat(limit int) ([]models.ChatTurn, error) {
	query := `SELECT timestamp, role, message FROM chat_turns ORDER BY id`
	var args []interface{}
	if limit > 0 {
		query = `
			SELECT timestamp, role, message FROM (
				SELECT id, timestamp, role, message
				FROM chat_turns ORDER BY id DESC LIMIT ?
			) ORDER BY id
		`
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list chat: %w", err)
	}
	defer rows.Close()

	turns := []models.ChatTurn{}
	for rows.Next() {
		var turn models.ChatTurn
		var role string
		if err := rows.Scan(&turn.Timestamp, &role, &turn.Message); err != nil {
			return nil, fmt.Errorf("scan chat turn: %w", err)
		}
		turn.Role = models.Role(role)
		turns = append(turns, turn)
	}

	return turns, rows.Err()
}

// ClearChat deletes every chat turn.
func (d *DB) ClearChat() error {
	if _, err := d.db.Exec("DELETE FROM chat_turns"); err != nil {
		return fmt.Errorf("clear chat: %w", err)
	}
	return nil
}

// AppendTipUsage records that a tip was shown.
func (d *DB) AppendTipUsage(u models.TipUsage) error {
	query := `INSERT INTO tip_usage (timestamp, tip, category) VALUES (?, ?, ?)`
	if _, err := d.db.Exec(query, u.Timestamp, u.Text, u.Category); err != nil {
		return fmt.Errorf("append tip usage: %w", err)
	}
	return nil
}

