package normalize

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franckalain/nutritionguard/internal/locale"
	"github.com/franckalain/nutritionguard/internal/models"
)

const fullResponse = `{
	"guard": {"is_food": true, "issues": [], "user_message": ""},
	"summary": "Grilled chicken leg with rice and greens.",
	"nutrition": {
		"calories_kcal": 700,
		"macros": {"carb_g": 65, "protein_g": 37.5, "fat_g": 0},
		"macro_split_pct": {"carb": "35-40%", "protein": "20-25%", "fat": "35-40%"},
		"micros": [
			{"name": "Sodium", "amount_mg": 1350},
			{"name": "Vitamin A", "amount_iu": 800}
		]
	},
	"ingredients": ["grilled chicken leg", "white rice", "bok choy"],
	"portion_assumptions": ["rice about 250 g"],
	"uncertainties": ["sauce oil content unclear"],
	"confidence": 0.72,
	"disclaimer": "estimate only"
}`

func newTestNormalizer() *Normalizer {
	return New(locale.Lookup("en"))
}

func TestNormalizeDirect(t *testing.T) {
	res := newTestNormalizer().Normalize(fullResponse)
	require.Equal(t, BranchDirect, res.Branch)

	rec := res.Record
	assert.True(t, rec.Guard.IsFood)
	assert.Equal(t, []string{}, rec.Guard.Issues)
	assert.Equal(t, "Grilled chicken leg with rice and greens.", rec.Summary)
	require.NotNil(t, rec.Nutrition.CaloriesKcal)
	assert.Equal(t, 700.0, *rec.Nutrition.CaloriesKcal)
	require.NotNil(t, rec.Nutrition.Macros.FatG)
	assert.Equal(t, 0.0, *rec.Nutrition.Macros.FatG)
	assert.Equal(t, 37.5, *rec.Nutrition.Macros.ProteinG)
	assert.Equal(t, "35-40%", rec.Nutrition.MacroSplitPct.Carb)
	require.Len(t, rec.Nutrition.Micros, 2)
	assert.Equal(t, "Sodium", *rec.Nutrition.Micros[0].Name)
	assert.Equal(t, 1350.0, *rec.Nutrition.Micros[0].AmountMg)
	assert.Nil(t, rec.Nutrition.Micros[0].AmountIU)
	assert.Equal(t, 800.0, *rec.Nutrition.Micros[1].AmountIU)
	assert.Equal(t, []string{"grilled chicken leg", "white rice", "bok choy"}, rec.Ingredients)
	assert.Equal(t, []string{"rice about 250 g"}, rec.PortionAssumptions)
	assert.Equal(t, []string{"sauce oil content unclear"}, rec.Uncertainties)
	assert.Equal(t, 0.72, rec.Confidence)
	assert.Equal(t, "estimate only", rec.Disclaimer)
}

func TestNormalizeFencedScenario(t *testing.T) {
	raw := "Sure! ```json\n{\"guard\":{\"is_food\":true},\"confidence\":0.8}\n```"

	res := newTestNormalizer().Normalize(raw)
	require.Equal(t, BranchCleaned, res.Branch)

	rec := res.Record
	assert.True(t, rec.Guard.IsFood)
	assert.Equal(t, []string{}, rec.Guard.Issues)
	assert.Equal(t, 0.8, rec.Confidence)
	assert.Equal(t, "", rec.Summary)
	assert.Nil(t, rec.Nutrition.CaloriesKcal)
	assert.Equal(t, []models.Micro{}, rec.Nutrition.Micros)
	assert.Equal(t, []string{}, rec.Ingredients)
	assert.Equal(t, locale.Lookup("en").Disclaimer, rec.Disclaimer)
}

func TestNormalizeCleanedMatchesDirect(t *testing.T) {
	n := newTestNormalizer()
	direct := n.Normalize(fullResponse)

	wrappers := []string{
		"```json\n" + fullResponse + "\n```",
		"```JSON " + fullResponse + "```",
		"```\n" + fullResponse + "\n```\nHope this helps!",
		"Here is the analysis:\n" + fullResponse,
	}
	for _, raw := range wrappers {
		res := n.Normalize(raw)
		assert.Equal(t, BranchCleaned, res.Branch)
		assert.Equal(t, direct.Record, res.Record)
	}
}

func TestNormalizeUnparseable(t *testing.T) {
	inputs := []string{
		"",
		"I cannot help with that.",
		"} backwards {",
		"{not json at all}",
		`{"guard": {"is_food": true}`,
		"null",
		"[1, 2, 3]",
		`"just a string"`,
	}

	n := newTestNormalizer()
	for _, raw := range inputs {
		t.Run(raw, func(t *testing.T) {
			res := n.Normalize(raw)
			assert.Equal(t, BranchUnparseable, res.Branch)

			rec := res.Record
			assert.False(t, rec.Guard.IsFood)
			assert.Equal(t, []string{"model output was not valid structured data"}, rec.Guard.Issues)
			assert.NotEmpty(t, rec.Guard.UserMessage)
			assert.Equal(t, 0.0, rec.Confidence)
			assert.Nil(t, rec.Nutrition.CaloriesKcal)
			assert.Equal(t, locale.Lookup("en").Disclaimer, rec.Disclaimer)
		})
	}
}

func TestNormalizeArrayWrappingObject(t *testing.T) {
	res := newTestNormalizer().Normalize(`[{"guard": {"is_food": true}, "confidence": 0.5}]`)
	assert.Equal(t, BranchCleaned, res.Branch)
	assert.True(t, res.Record.Guard.IsFood)
	assert.Equal(t, 0.5, res.Record.Confidence)
}

func TestNormalizeMissingGuard(t *testing.T) {
	res := newTestNormalizer().Normalize(`{"summary": "rice"}`)
	require.Equal(t, BranchDirect, res.Branch)

	assert.False(t, res.Record.Guard.IsFood)
	assert.Equal(t, []string{"response format incomplete"}, res.Record.Guard.Issues)
	assert.NotEmpty(t, res.Record.Guard.UserMessage)
	assert.Equal(t, "rice", res.Record.Summary)
}

func TestNormalizeUntrustedTypes(t *testing.T) {
	raw := `{
		"guard": {"is_food": "true", "issues": "image blurry", "user_message": 42},
		"summary": ["not", "a", "string"],
		"nutrition": {
			"calories_kcal": "650",
			"macros": {"carb_g": "lots", "protein_g": null, "fat_g": 12},
			"macro_split_pct": "half",
			"micros": [
				"Sodium 1200mg",
				{"name": 7, "amount_mg": "300"},
				{"name": null, "amount_iu": null}
			]
		},
		"ingredients": ["rice", 3, null, "egg"],
		"portion_assumptions": {"rice": "200 g"},
		"uncertainties": null,
		"confidence": 3.5,
		"disclaimer": ""
	}`

	rec := newTestNormalizer().Normalize(raw).Record
	assert.True(t, rec.Guard.IsFood)
	assert.Equal(t, []string{"image blurry"}, rec.Guard.Issues)
	assert.Equal(t, "", rec.Guard.UserMessage)
	assert.Equal(t, "", rec.Summary)
	require.NotNil(t, rec.Nutrition.CaloriesKcal)
	assert.Equal(t, 650.0, *rec.Nutrition.CaloriesKcal)
	assert.Nil(t, rec.Nutrition.Macros.CarbG)
	assert.Nil(t, rec.Nutrition.Macros.ProteinG)
	assert.Equal(t, 12.0, *rec.Nutrition.Macros.FatG)
	assert.Equal(t, models.MacroSplitPct{}, rec.Nutrition.MacroSplitPct)
	require.Len(t, rec.Nutrition.Micros, 2)
	assert.Nil(t, rec.Nutrition.Micros[0].Name)
	assert.Equal(t, 300.0, *rec.Nutrition.Micros[0].AmountMg)
	assert.Nil(t, rec.Nutrition.Micros[1].AmountIU)
	assert.Equal(t, []string{"rice", "egg"}, rec.Ingredients)
	assert.Equal(t, []string{}, rec.PortionAssumptions)
	assert.Equal(t, []string{}, rec.Uncertainties)
	assert.Equal(t, 1.0, rec.Confidence)
	assert.Equal(t, locale.Lookup("en").Disclaimer, rec.Disclaimer)
}

func TestNormalizeConfidenceBounds(t *testing.T) {
	n := newTestNormalizer()
	assert.Equal(t, 0.0, n.Normalize(`{"confidence": -0.2}`).Record.Confidence)
	assert.Equal(t, 0.0, n.Normalize(`{"confidence": "high"}`).Record.Confidence)
	assert.Equal(t, 0.4, n.Normalize(`{"confidence": "0.4"}`).Record.Confidence)
	assert.Equal(t, 0.0, n.Normalize(`{"confidence": "NaN"}`).Record.Confidence)
}

func TestNormalizeNegativeZeroConfidence(t *testing.T) {
	for _, raw := range []string{`{"confidence": -0}`, `{"confidence": "-0"}`} {
		rec := newTestNormalizer().Normalize(raw).Record
		assert.False(t, math.Signbit(rec.Confidence), raw)

		encoded, err := json.Marshal(rec)
		require.NoError(t, err)
		assert.Contains(t, string(encoded), `"confidence":0,`)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	n := newTestNormalizer()
	inputs := []string{
		fullResponse,
		`{}`,
		`{"guard": {"is_food": true}, "nutrition": {"micros": [{"name": "Iron"}]}}`,
		"not json",
	}

	for _, raw := range inputs {
		first := n.Normalize(raw).Record

		encoded, err := json.Marshal(first)
		require.NoError(t, err)

		second := n.Normalize(string(encoded))
		assert.Equal(t, BranchDirect, second.Branch)
		assert.Equal(t, first, second.Record)
	}
}

func TestNormalizeSerializesAllFields(t *testing.T) {
	rec := newTestNormalizer().Normalize(`{}`).Record

	encoded, err := json.Marshal(rec)
	require.NoError(t, err)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(encoded, &generic))
	for _, key := range []string{"guard", "summary", "nutrition", "ingredients", "portion_assumptions", "uncertainties", "confidence", "disclaimer"} {
		assert.Contains(t, generic, key)
	}
	assert.Equal(t, []any{}, generic["ingredients"])

	nutrition := generic["nutrition"].(map[string]any)
	assert.Nil(t, nutrition["calories_kcal"])
	assert.Contains(t, nutrition, "calories_kcal")
	assert.Equal(t, []any{}, nutrition["micros"])
}

func TestClean(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{raw: "```json\n{\"a\":1}\n```", want: `{"a":1}`, ok: true},
		{raw: "prefix {\"a\":{\"b\":2}} suffix", want: `{"a":{"b":2}}`, ok: true},
		{raw: "no braces", ok: false},
		{raw: "} {", ok: false},
		{raw: "{", ok: false},
	}

	for _, tt := range tests {
		got, ok := Clean(tt.raw)
		assert.Equal(t, tt.ok, ok, tt.raw)
		if tt.ok {
			assert.Equal(t, tt.want, got)
		}
	}
}
