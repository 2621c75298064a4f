// ABOUTME: Loads tip reference data from a CSV file.
// ABOUTME: Expects tip and category columns; header names are case-insensitive.
package tips

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/harperreed/coach/internal/models"
)

// ErrMissingColumn is returned when the tips file lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// LoadCSV reads tips from path. Unlike the log stores, a missing tips file
// is an error.
func LoadCSV(path string) ([]models.Tip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tips file: %w", err)
	}
	defer f.Close()

	return ReadCSV(f)
}

// ReadCSV parses tips from r. The first record is the header.
func ReadCSV(r io.Reader) ([]models.Tip, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("read tips header: %w: tip", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("read tips header: %w", err)
	}

	tipCol, catCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "tip":
			tipCol = i
		case "category":
			catCol = i
		}
	}
	if tipCol < 0 {
		return nil, fmt.Errorf("%w: tip", ErrMissingColumn)
	}
	if catCol < 0 {
		return nil, fmt.Errorf("%w: category", ErrMissingColumn)
	}

	var tips []models.Tip
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read tips: %w", err)
		}

		tip := models.Tip{Text: cell(rec, tipCol), Category: cell(rec, catCol)}
		if tip.Text == "" {
			continue
		}
		tips = append(tips, tip)
	}

	return tips, nil
}

func cell(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}
