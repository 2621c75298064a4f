// ABOUTME: Tip and TipUsage models for daily health advice.
// ABOUTME: Tips are read-only reference data; usage is append-only.
package models

import (
	"fmt"
	"time"
)

// Tip categories offered by the built-in tip list.
const (
	CategoryHydration    = "Hydration"
	CategoryNutrition    = "Nutrition"
	CategoryExercise     = "Exercise"
	CategorySleep        = "Sleep"
	CategoryMentalHealth = "Mental Health"
)

// DefaultUsageCategory is recorded when a tip has no category.
const DefaultUsageCategory = "General"

// Tip is a short piece of advice tagged with a category.
type Tip struct {
	Text     string `json:"tip" yaml:"tip"`
	Category string `json:"category" yaml:"category"`
}

// PlaceholderTip is returned when no tip matches the requested category.
func PlaceholderTip(category string) Tip {
	return Tip{
		Text:     fmt.Sprintf("No tips available for the category '%s'.", category),
		Category: category,
	}
}

// TipUsage records that a tip was shown.
type TipUsage struct {
	Timestamp string
	Text      string
	Category  string
}

// NewTipUsage stamps a usage record for tip at the given time.
func NewTipUsage(at time.Time, tip Tip) TipUsage {
	category := tip.Category
	if category == "" {
		category = DefaultUsageCategory
	}
	return TipUsage{
		Timestamp: at.Format(TimestampLayout),
		Text:      tip.Text,
		Category:  category,
	}
}

// Record returns the usage as text fields: timestamp, tip, category.
func (u TipUsage) Record() []string {
	return []string{u.Timestamp, u.Text, u.Category}
}
