package models

// ImagePayload is what a client submits for analysis
type ImagePayload struct {
	Image       string // base64 encoded image bytes
	Instruction string // optional user instruction
}

// GuardResult is the model's verdict on whether the photo can be analyzed at all
type GuardResult struct {
	IsFood      bool     `json:"is_food"`
	Issues      []string `json:"issues"`
	UserMessage string   `json:"user_message"`
}

// AnalysisRecord is the canonical result of one analysis.
// All fields are always present once a record leaves the normalizer.
type AnalysisRecord struct {
	Guard              GuardResult     `json:"guard"`
	Summary            string          `json:"summary"`
	Nutrition          NutritionRecord `json:"nutrition"`
	Ingredients        []string        `json:"ingredients"`
	PortionAssumptions []string        `json:"portion_assumptions"`
	Uncertainties      []string        `json:"uncertainties"`
	Confidence         float64         `json:"confidence"`
	Disclaimer         string          `json:"disclaimer"`
}

// NotAnalyzable builds a record for a photo that was never estimated.
func NotAnalyzable(issue, message, disclaimer string) AnalysisRecord {
	return AnalysisRecord{
		Guard: GuardResult{
			IsFood:      false,
			Issues:      []string{issue},
			UserMessage: message,
		},
		Nutrition:          EmptyNutrition(),
		Ingredients:        []string{},
		PortionAssumptions: []string{},
		Uncertainties:      []string{},
		Confidence:         0,
		Disclaimer:         disclaimer,
	}
}
