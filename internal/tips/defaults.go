// ABOUTME: Built-in wellness tips used when no tips file is configured.
// ABOUTME: One tip per category.
package tips

import "github.com/harperreed/coach/internal/models"

// DefaultTips returns a fresh copy of the built-in tip list.
func DefaultTips() []models.Tip {
	return []models.Tip{
		{Text: "Drink at least 8 glasses of water daily to stay hydrated.", Category: models.CategoryHydration},
		{Text: "Include fruits and vegetables in every meal.", Category: models.CategoryNutrition},
		{Text: "Get at least 7-8 hours of sleep each night.", Category: models.CategorySleep},
		{Text: "Take short walks after meals to aid digestion.", Category: models.CategoryExercise},
		{Text: "Practice mindfulness or meditation for 10 minutes daily.", Category: models.CategoryMentalHealth},
	}
}
