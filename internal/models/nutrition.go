package models

// NutritionRecord holds the nutrition facts estimated for a single photo.
// Every number is a pointer: nil means unknown, 0 is a real value.
type NutritionRecord struct {
	CaloriesKcal  *float64      `json:"calories_kcal"`
	Macros        Macros        `json:"macros"`
	MacroSplitPct MacroSplitPct `json:"macro_split_pct"`
	Micros        []Micro       `json:"micros"`
}

// Macros holds macronutrient amounts in grams
type Macros struct {
	CarbG    *float64 `json:"carb_g"`
	ProteinG *float64 `json:"protein_g"`
	FatG     *float64 `json:"fat_g"`
}

// MacroSplitPct holds the share of energy per macronutrient as free text, e.g. "45-55%".
// An empty string means unknown.
type MacroSplitPct struct {
	Carb    string `json:"carb"`
	Protein string `json:"protein"`
	Fat     string `json:"fat"`
}

// Micro is a single micronutrient entry, measured in mg or IU
type Micro struct {
	Name     *string  `json:"name"`
	AmountMg *float64 `json:"amount_mg"`
	AmountIU *float64 `json:"amount_iu"`
}

// EmptyNutrition returns a record with every value unknown.
func EmptyNutrition() NutritionRecord {
	return NutritionRecord{Micros: []Micro{}}
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}

// String returns a pointer to s.
func String(s string) *string {
	return &s
}
