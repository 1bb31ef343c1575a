package analysis

import (
	"github.com/franckalain/nutritionguard/internal/locale"
	"github.com/franckalain/nutritionguard/internal/models"
)

type sample struct {
	summary     string
	ingredients []string
	portions    []string
	notes       []string
	calories    float64
	carbG       float64
	proteinG    float64
	fatG        float64
	sodiumMg    float64
	split       models.MacroSplitPct
}

var samplesByTag = map[string][]sample{
	"en": {
		{
			summary: "This looks like a typical grilled chicken bento with a grilled chicken leg, white rice and vegetable sides. " +
				"The overall balance is reasonable, but keep an eye on sodium and the share of vegetables.",
			ingredients: []string{"grilled chicken leg", "white rice", "vegetable sides"},
			portions:    []string{"white rice about 250-300 g", "grilled chicken leg about 150-200 g", "moderate cooking oil"},
			notes: []string{
				"Protein is ample, roughly 60-70% of an adult's daily need",
				"Sodium is on the high side; people with high blood pressure should take care",
				"Ask for more vegetables and less rice to raise fiber intake",
			},
			calories: 700,
			carbG:    65,
			proteinG: 38,
			fatG:     28,
			sodiumMg: 1350,
			split:    models.MacroSplitPct{Carb: "35-40%", Protein: "20-25%", Fat: "35-40%"},
		},
		{
			summary: "This is a nutrient-dense mixed vegetable salad, rich in phytonutrients, vitamins and minerals. " +
				"The variety of colors suggests good nutrient diversity.",
			ingredients: []string{"mixed leafy greens", "cherry tomatoes", "nuts", "olive oil dressing"},
			portions:    []string{"mixed vegetables about 200-250 g", "nuts about 10-15 g", "dressing about 1 tablespoon"},
			notes: []string{
				"Dietary fiber is excellent and supports gut health and stable blood sugar",
				"Add a quality protein such as a boiled egg or chicken breast for satiety",
			},
			calories: 175,
			carbG:    18,
			proteinG: 10,
			fatG:     10,
			sodiumMg: 400,
			split:    models.MacroSplitPct{Carb: "35-45%", Protein: "20-25%", Fat: "35-45%"},
		},
	},
	"zh-TW": {
		{
			summary:     "這是一份典型的台式烤雞便當，包含烤雞腿、白米飯和蔬菜配菜。整體營養組成相對均衡，但需要注意鈉含量和蔬菜比例。",
			ingredients: []string{"烤雞腿", "白米飯", "蔬菜配菜"},
			portions:    []string{"白飯約250–300 g", "烤雞腿約150–200 g", "烹調油中等"},
			notes: []string{
				"【營養師建議】蛋白質含量充足，符合成人每日需求的60-70%",
				"【注意事項】鈉含量偏高，高血壓患者應謹慎食用，建議搭配大量水分",
				"【改善建議】可要求增加蔬菜份量，減少白飯，提升膳食纖維攝取",
			},
			calories: 700,
			carbG:    65,
			proteinG: 38,
			fatG:     28,
			sodiumMg: 1350,
			split:    models.MacroSplitPct{Carb: "35-40%", Protein: "20-25%", Fat: "35-40%"},
		},
		{
			summary:     "這是一份營養密度高的綜合蔬菜沙拉，富含多種植化素、維生素和礦物質。顏色豐富表示營養素多樣性佳。",
			ingredients: []string{"綜合生菜", "小番茄", "堅果", "橄欖油醬汁"},
			portions:    []string{"綜合蔬菜約200–250 g", "堅果約10–15 g", "醬汁約1湯匙"},
			notes: []string{
				"【營養師推薦】膳食纖維含量優秀，有助腸道健康和血糖穩定",
				"【搭配建議】可添加優質蛋白質如水煮蛋、雞胸肉增加飽足感",
			},
			calories: 175,
			carbG:    18,
			proteinG: 10,
			fatG:     10,
			sodiumMg: 400,
			split:    models.MacroSplitPct{Carb: "35-45%", Protein: "20-25%", Fat: "35-45%"},
		},
	},
}

// Samples returns freshly built example records for the catalog's language.
// They carry the sample disclaimer and are never the result of a model call.
func Samples(c locale.Catalog) []models.AnalysisRecord {
	set, ok := samplesByTag[c.Tag]
	if !ok {
		set = samplesByTag[locale.DefaultTag]
	}

	out := make([]models.AnalysisRecord, 0, len(set))
	for _, s := range set {
		out = append(out, s.record(c.SampleDisclaimer))
	}
	return out
}

func (s sample) record(disclaimer string) models.AnalysisRecord {
	return models.AnalysisRecord{
		Guard: models.GuardResult{
			IsFood: true,
			Issues: []string{},
		},
		Summary: s.summary,
		Nutrition: models.NutritionRecord{
			CaloriesKcal: models.Float(s.calories),
			Macros: models.Macros{
				CarbG:    models.Float(s.carbG),
				ProteinG: models.Float(s.proteinG),
				FatG:     models.Float(s.fatG),
			},
			MacroSplitPct: s.split,
			Micros: []models.Micro{
				{Name: models.String("Sodium"), AmountMg: models.Float(s.sodiumMg)},
			},
		},
		Ingredients:        append([]string{}, s.ingredients...),
		PortionAssumptions: append([]string{}, s.portions...),
		Uncertainties:      append([]string{}, s.notes...),
		Confidence:         0,
		Disclaimer:         disclaimer,
	}
}
