// ABOUTME: Summarizes the recent wellness log for the dashboard view.
// ABOUTME: Averages skip missing values; moods are counted by label.
package coach

import "github.com/harperreed/coach/internal/models"

// Summary describes the window of rows the coach sees.
type Summary struct {
	Rows       []*models.Entry `json:"rows"`
	AvgSleep   *float64        `json:"avg_sleep_hours"`
	AvgSteps   *float64        `json:"avg_steps"`
	MoodCounts map[string]int  `json:"mood_counts"`
}

// Summarize reports on the last ContextRows rows.
func Summarize(rows []*models.Entry) Summary {
	if len(rows) > ContextRows {
		rows = rows[len(rows)-ContextRows:]
	}

	s := Summary{Rows: rows, MoodCounts: make(map[string]int)}

	var sleepSum, stepsSum float64
	var sleepN, stepsN int
	for _, e := range rows {
		if e.SleepHours != nil {
			sleepSum += *e.SleepHours
			sleepN++
		}
		if e.Steps != nil {
			stepsSum += float64(*e.Steps)
			stepsN++
		}
		if e.Mood != "" {
			s.MoodCounts[e.Mood]++
		}
	}

	if sleepN > 0 {
		avg := sleepSum / float64(sleepN)
		s.AvgSleep = &avg
	}
	if stepsN > 0 {
		avg := stepsSum / float64(stepsN)
		s.AvgSteps = &avg
	}
	return s
}
