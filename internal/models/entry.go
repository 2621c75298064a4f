// ABOUTME: Entry model and Mood enum for the daily wellness log.
// ABOUTME: One row per day: date, sleep hours, meals, mood, steps.
package models

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the format used for entry dates written by the tool.
const DateLayout = "2006-01-02"

// EntryColumns is the fixed column order of the wellness log.
var EntryColumns = []string{"date", "sleep_hours", "meals", "mood", "steps"}

// Mood is a self-reported mood label.
type Mood string

const (
	MoodHappy     Mood = "Happy"
	MoodStressed  Mood = "Stressed"
	MoodTired     Mood = "Tired"
	MoodEnergetic Mood = "Energetic"
	MoodSad       Mood = "Sad"
)

// AllMoods lists the selectable moods in display order.
var AllMoods = []Mood{MoodHappy, MoodStressed, MoodTired, MoodEnergetic, MoodSad}

// ParseMood matches s against AllMoods ignoring case.
func ParseMood(s string) (Mood, bool) {
	s = strings.TrimSpace(s)
	for _, m := range AllMoods {
		if strings.EqualFold(string(m), s) {
			return m, true
		}
	}
	return "", false
}

// Entry is one day's self-reported health metrics.
// Nil numeric fields mark a missing or unparsable value.
type Entry struct {
	Date       string   `json:"date" yaml:"date"`
	SleepHours *float64 `json:"sleep_hours" yaml:"sleep_hours"`
	Meals      string   `json:"meals" yaml:"meals"`
	Mood       string   `json:"mood" yaml:"mood"`
	Steps      *int64   `json:"steps" yaml:"steps"`
}

// NewEntry creates an Entry dated on the given day.
func NewEntry(day time.Time, sleepHours float64, meals string, mood Mood, steps int64) *Entry {
	return &Entry{
		Date:       day.Format(DateLayout),
		SleepHours: &sleepHours,
		Meals:      meals,
		Mood:       string(mood),
		Steps:      &steps,
	}
}

// ParseEntry builds an Entry from raw text fields. Numbers that fail to
// parse become nil instead of an error.
func ParseEntry(date, sleepHours, meals, mood, steps string) *Entry {
	return &Entry{
		Date:       strings.TrimSpace(date),
		SleepHours: ParseFloat(sleepHours),
		Meals:      meals,
		Mood:       mood,
		Steps:      ParseInt(steps),
	}
}

// MaxSleepHours is the most sleep a single day can report.
const MaxSleepHours = 24

// ErrInvalidEntry is wrapped by every ValidateEntry failure.
var ErrInvalidEntry = errors.New("invalid entry")

// ValidateEntry checks the numeric fields of a new entry. Missing values
// are allowed; present ones must be finite, sleep within 0 to
// MaxSleepHours, and steps non-negative.
func ValidateEntry(e *Entry) error {
	if e.SleepHours != nil {
		v := *e.SleepHours
		if !isFinite(v) || v < 0 || v > MaxSleepHours {
			return fmt.Errorf("%w: sleep hours must be between 0 and %d, got %v", ErrInvalidEntry, MaxSleepHours, v)
		}
	}
	if e.Steps != nil && *e.Steps < 0 {
		return fmt.Errorf("%w: steps cannot be negative, got %d", ErrInvalidEntry, *e.Steps)
	}
	return nil
}

// ParsedDate returns the entry date as a time if it is in a known layout.
func (e *Entry) ParsedDate() (time.Time, bool) {
	return ParseDate(e.Date)
}

// SleepText formats SleepHours for storage, empty when missing.
func (e *Entry) SleepText() string {
	if e.SleepHours == nil {
		return ""
	}
	return strconv.FormatFloat(*e.SleepHours, 'f', -1, 64)
}

// StepsText formats Steps for storage, empty when missing.
func (e *Entry) StepsText() string {
	if e.Steps == nil {
		return ""
	}
	return strconv.FormatInt(*e.Steps, 10)
}

// Record returns the entry as text fields in EntryColumns order.
func (e *Entry) Record() []string {
	return []string{e.Date, e.SleepText(), e.Meals, e.Mood, e.StepsText()}
}

// ParseFloat returns nil for empty, non-numeric, or non-finite input.
func ParseFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !isFinite(v) {
		return nil
	}
	return &v
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ParseInt returns nil for empty or non-numeric input. Whole floats such
// as "8000.0" are accepted.
func ParseInt(s string) *int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &v
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || !isFinite(f) || f != float64(int64(f)) {
		return nil
	}
	v := int64(f)
	return &v
}

var dateLayouts = []string{
	DateLayout,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
}

// ParseDate parses s with any of the accepted date layouts.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
