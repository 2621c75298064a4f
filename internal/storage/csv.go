// ABOUTME: Flat-file CSV backend for wellness data.
// ABOUTME: user_logs.csv has a header; chat and tip logs are headerless appends.
package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/harperreed/coach/internal/models"
)

const (
	entriesFile  = "user_logs.csv"
	chatFile     = "chat_history.csv"
	tipUsageFile = "tip_log.csv"
)

// CSVStore keeps each log in its own CSV file under dataDir.
type CSVStore struct {
	dataDir string
}

// Compile-time check that CSVStore implements Repository.
var _ Repository = (*CSVStore)(nil)

// NewCSVStore creates a CSV-backed store rooted at dataDir.
func NewCSVStore(dataDir string) (*CSVStore, error) {
	if err := os.MkdirAll(dataDir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &CSVStore{dataDir: dataDir}, nil
}

// Close releases resources. For CSVStore this is a no-op.
func (s *CSVStore) Close() error {
	return nil
}

// EntriesPath returns the path of the wellness log file.
func (s *CSVStore) EntriesPath() string {
	return filepath.Join(s.dataDir, entriesFile)
}

// ChatPath returns the path of the chat history file.
func (s *CSVStore) ChatPath() string {
	return filepath.Join(s.dataDir, chatFile)
}

// TipUsagePath returns the path of the tip usage log.
func (s *CSVStore) TipUsagePath() string {
	return filepath.Join(s.dataDir, tipUsageFile)
}

// AppendEntry appends one row to the wellness log, writing the header first
// when the file is absent or empty.
func (s *CSVStore) AppendEntry(e *models.Entry) error {
	path := s.EntriesPath()
	needHeader, err := isEmptyOrMissing(path)
	if err != nil {
		return fmt.Errorf("append entry: %w", err)
	}

	var records [][]string
	if needHeader {
		records = append(records, models.EntryColumns)
	}
	records = append(records, e.Record())

	if err := appendRecords(path, records); err != nil {
		return fmt.Errorf("append entry: %w", err)
	}
	return nil
}

// ListEntries reads the wellness log in file order. A missing file is an
// empty log.
func (s *CSVStore) ListEntries(limit int) ([]*models.Entry, error) {
	records, err := readRecords(s.EntriesPath())
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	if len(records) == 0 {
		return []*models.Entry{}, nil
	}

	cols := columnIndex(records[0])
	entries := make([]*models.Entry, 0, len(records)-1)
	for _, rec := range records[1:] {
		entries = append(entries, models.ParseEntry(
			field(rec, cols, "date"),
			field(rec, cols, "sleep_hours"),
			field(rec, cols, "meals"),
			field(rec, cols, "mood"),
			field(rec, cols, "steps"),
		))
	}
	return lastN(entries, limit), nil
}

// ClearEntries replaces the wellness log with a header-only file.
func (s *CSVStore) ClearEntries() error {
	f, err := os.OpenFile(s.EntriesPath(), os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("clear entries: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(models.EntryColumns); err != nil {
		_ = f.Close()
		return fmt.Errorf("clear entries: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("clear entries: %w", err)
	}
	return f.Close()
}

// AppendExchange appends the user and bot turns of one exchange.
func (s *CSVStore) AppendExchange(user, bot models.ChatTurn) error {
	if err := appendRecords(s.ChatPath(), [][]string{user.Record(), bot.Record()}); err != nil {
		return fmt.Errorf("append exchange: %w", err)
	}
	return nil
}

// ListChat reads chat turns in file order. A missing file is an empty history.
func (s *CSVStore) ListChat(limit int) ([]models.ChatTurn, error) {
	records, err := readRecords(s.ChatPath())
	if err != nil {
		return nil, fmt.Errorf("list chat: %w", err)
	}

	turns := make([]models.ChatTurn, 0, len(records))
	for _, rec := range records {
		if len(rec) < 3 {
			continue
		}
		turns = append(turns, models.ChatTurn{
			Timestamp: rec[0],
			Role:      models.Role(rec[1]),
			Message:   rec[2],
		})
	}
	return lastN(turns, limit), nil
}

// ClearChat removes the chat history file.
func (s *CSVStore) ClearChat() error {
	if err := os.Remove(s.ChatPath()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear chat: %w", err)
	}
	return nil
}

// AppendTipUsage appends one row to the tip usage log.
func (s *CSVStore) AppendTipUsage(u models.TipUsage) error {
	if err := appendRecords(s.TipUsagePath(), [][]string{u.Record()}); err != nil {
		return fmt.Errorf("append tip usage: %w", err)
	}
	return nil
}

func appendRecords(path string, records [][]string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func readRecords(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var records [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func isEmptyOrMissing(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return true, nil
		}
		return false, err
	}
	return info.Size() == 0, nil
}

func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	return cols
}

func field(rec []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return rec[i]
}
