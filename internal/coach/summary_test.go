// ABOUTME: Tests for log summaries.
// ABOUTME: Missing values are excluded from averages.
package coach

import (
	"math"
	"testing"

	"github.com/harperreed/coach/internal/models"
)

func TestSummarize(t *testing.T) {
	rows := []*models.Entry{
		models.ParseEntry("2025-01-01", "6", "", "Happy", "1000"),
		models.ParseEntry("2025-01-02", "8", "", "happy", ""),
		models.ParseEntry("2025-01-03", "", "", "Sad", "3000"),
	}

	s := Summarize(rows)

	if s.AvgSleep == nil || math.Abs(*s.AvgSleep-7) > 1e-9 {
		t.Errorf("AvgSleep = %v, want 7", s.AvgSleep)
	}
	if s.AvgSteps == nil || math.Abs(*s.AvgSteps-2000) > 1e-9 {
		t.Errorf("AvgSteps = %v, want 2000", s.AvgSteps)
	}
	if s.MoodCounts["Happy"] != 1 || s.MoodCounts["happy"] != 1 || s.MoodCounts["Sad"] != 1 {
		t.Errorf("MoodCounts = %v", s.MoodCounts)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.AvgSleep != nil || s.AvgSteps != nil || len(s.MoodCounts) != 0 {
		t.Errorf("empty summary = %+v", s)
	}
}
