// ABOUTME: Tests for the CSV backend's on-disk format.
// ABOUTME: Verifies headers, column order, and tolerance of hand-edited files.
package storage

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/coach/internal/models"
)

func TestCSVEntriesFileFormat(t *testing.T) {
	s, err := NewCSVStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewCSVStore failed: %v", err)
	}

	day := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	if err := s.AppendEntry(models.NewEntry(day, 7.5, "eggs", models.MoodHappy, 9000)); err != nil {
		t.Fatalf("AppendEntry failed: %v", err)
	}
	if err := s.AppendEntry(models.NewEntry(day.AddDate(0, 0, 1), 6, "rice", models.MoodSad, 300)); err != nil {
		t.Fatalf("AppendEntry failed: %v", err)
	}

	data, err := os.ReadFile(s.EntriesPath())
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}

	want := "date,sleep_hours,meals,mood,steps\n" +
		"2025-04-01,7.5,eggs,Happy,9000\n" +
		"2025-04-02,6,rice,Sad,300\n"
	if string(data) != want {
		t.Errorf("file contents:\n%s\nwant:\n%s", data, want)
	}
}

func TestCSVClearWritesHeaderOnly(t *testing.T) {
	s, _ := NewCSVStore(t.TempDir())
	_ = s.AppendEntry(models.ParseEntry("2025-04-01", "7", "", "Happy", "10"))

	if err := s.ClearEntries(); err != nil {
		t.Fatalf("ClearEntries failed: %v", err)
	}

	data, err := os.ReadFile(s.EntriesPath())
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "date,sleep_hours,meals,mood,steps\n" {
		t.Errorf("Expected header only, got %q", data)
	}
}

func TestCSVListEntriesToleratesMalformedRows(t *testing.T) {
	s, _ := NewCSVStore(t.TempDir())

	content := "date,sleep_hours,meals,mood,steps\n" +
		"not-a-date,seven,toast,Happy,many\n" +
		"2025-04-02,8\n" +
		"2025-04-03,nan,eggs,Happy,NaN\n"
	if err := os.WriteFile(s.EntriesPath(), []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	got, err := s.ListEntries(0)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(got))
	}
	if got[0].Date != "not-a-date" || got[0].SleepHours != nil || got[0].Steps != nil {
		t.Errorf("malformed row parsed as %+v", got[0])
	}
	if got[1].SleepHours == nil || *got[1].SleepHours != 8 || got[1].Mood != "" {
		t.Errorf("short row parsed as %+v", got[1])
	}
	if got[2].SleepHours != nil || got[2].Steps != nil {
		t.Errorf("nan cells should load as missing, got %+v", got[2])
	}
}

func TestCSVNaNCellsExportAsJSON(t *testing.T) {
	s, _ := NewCSVStore(t.TempDir())
	content := "date,sleep_hours,meals,mood,steps\n2025-01-01,nan,eggs,Happy,100\n"
	if err := os.WriteFile(s.EntriesPath(), []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := ExportJSON(s)
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}
	if !strings.Contains(string(data), `"sleep_hours": null`) {
		t.Errorf("Expected null sleep_hours, got:\n%s", data)
	}
}

func TestCSVReordedHeaderColumns(t *testing.T) {
	s, _ := NewCSVStore(t.TempDir())

	content := "mood,date,steps,sleep_hours,meals\nTired,2025-04-03,500,5.5,soup\n"
	if err := os.WriteFile(s.EntriesPath(), []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	got, err := s.ListEntries(0)
	if err != nil {
		t.Fatalf("ListEntries failed: %v", err)
	}
	if len(got) != 1 || got[0].Mood != "Tired" || got[0].Date != "2025-04-03" || *got[0].SleepHours != 5.5 {
		t.Errorf("unexpected entry %+v", got[0])
	}
}

func TestCSVChatFileHasNoHeader(t *testing.T) {
	s, _ := NewCSVStore(t.TempDir())
	u, b := models.NewExchange(time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC), "hi", "hello")
	if err := s.AppendExchange(u, b); err != nil {
		t.Fatalf("AppendExchange failed: %v", err)
	}

	data, _ := os.ReadFile(s.ChatPath())
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d: %q", len(lines), data)
	}
	if lines[0] != "2025-01-01 08:00:00,user,hi" {
		t.Errorf("first line = %q", lines[0])
	}
}

func TestCSVClearChatRemovesFile(t *testing.T) {
	s, _ := NewCSVStore(t.TempDir())
	u, b := models.NewExchange(time.Now(), "hi", "hello")
	_ = s.AppendExchange(u, b)

	if err := s.ClearChat(); err != nil {
		t.Fatalf("ClearChat failed: %v", err)
	}
	if _, err := os.Stat(s.ChatPath()); !os.IsNotExist(err) {
		t.Errorf("Expected chat file removed, stat err = %v", err)
	}
}

func TestCSVTipUsageAppendsOneRowPerCall(t *testing.T) {
	s, _ := NewCSVStore(t.TempDir())
	tip := models.Tip{Text: "Walk after meals, daily.", Category: "Exercise"}

	for i := 0; i < 5; i++ {
		if err := s.AppendTipUsage(models.NewTipUsage(time.Now(), tip)); err != nil {
			t.Fatalf("AppendTipUsage failed: %v", err)
		}
	}

	records, err := readRecords(s.TipUsagePath())
	if err != nil {
		t.Fatalf("readRecords failed: %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("Expected 5 usage rows, got %d", len(records))
	}
	if records[0][1] != tip.Text || records[0][2] != "Exercise" {
		t.Errorf("usage row = %v", records[0])
	}
}
