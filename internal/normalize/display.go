package normalize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/franckalain/nutritionguard/internal/locale"
	"github.com/franckalain/nutritionguard/internal/models"
)

// Display is the flattened view rendered by the web UI.
// It is always derived from an AnalysisRecord and never stored.
type Display struct {
	FoodName    string           `json:"foodName"`
	Description string           `json:"description"`
	Nutrition   DisplayNutrition `json:"nutrition"`
	HealthTips  []string         `json:"healthTips"`
}

// DisplayNutrition holds human-readable nutrition values with units
type DisplayNutrition struct {
	Calories string `json:"calories"`
	Protein  string `json:"protein"`
	Carbs    string `json:"carbs"`
	Fat      string `json:"fat"`
	Fiber    string `json:"fiber"`
	Sodium   string `json:"sodium"`
}

// Project derives the display view of rec.
func Project(rec models.AnalysisRecord, c locale.Catalog) Display {
	d := Display{
		FoodName:    c.NonFoodName,
		Description: rec.Summary,
		Nutrition: DisplayNutrition{
			Calories: withUnit(rec.Nutrition.CaloriesKcal, c.CaloriesFormat, c.Unknown),
			Protein:  withUnit(rec.Nutrition.Macros.ProteinG, c.GramsFormat, c.Unknown),
			Carbs:    withUnit(rec.Nutrition.Macros.CarbG, c.GramsFormat, c.Unknown),
			Fat:      withUnit(rec.Nutrition.Macros.FatG, c.GramsFormat, c.Unknown),
			Fiber:    c.Unknown,
			Sodium:   withUnit(sodiumMg(rec.Nutrition.Micros), c.MilligramsFormat, c.Unknown),
		},
	}

	if rec.Guard.IsFood {
		d.FoodName = c.FoodFallbackName
		if len(rec.Ingredients) > 0 && strings.TrimSpace(rec.Ingredients[0]) != "" {
			d.FoodName = rec.Ingredients[0]
		}
	}

	tips := make([]string, 0, len(rec.PortionAssumptions)+len(rec.Uncertainties))
	tips = append(tips, rec.PortionAssumptions...)
	tips = append(tips, rec.Uncertainties...)
	if len(tips) == 0 {
		tips = append(tips, c.DefaultTip)
	}
	d.HealthTips = tips

	return d
}

func withUnit(v *float64, format, unknown string) string {
	if v == nil {
		return unknown
	}
	return fmt.Sprintf(format, strconv.FormatFloat(*v, 'f', -1, 64))
}

func sodiumMg(micros []models.Micro) *float64 {
	for _, m := range micros {
		if m.Name != nil && m.AmountMg != nil && strings.EqualFold(strings.TrimSpace(*m.Name), "sodium") {
			return m.AmountMg
		}
	}
	return nil
}
