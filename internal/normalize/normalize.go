package normalize

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/franckalain/nutritionguard/internal/locale"
	"github.com/franckalain/nutritionguard/internal/models"
)

// Branch names the step of the fallback chain that produced a record
type Branch string

const (
	BranchDirect      Branch = "direct"
	BranchCleaned     Branch = "cleaned"
	BranchUnparseable Branch = "unparseable"
)

var (
	jsonFence = regexp.MustCompile("(?i)```json\\s*")
	anyFence  = regexp.MustCompile("```\\s*")
)

// Result is a normalized record together with the branch that produced it
type Result struct {
	Record models.AnalysisRecord
	Branch Branch
}

// Normalizer turns raw model output into analysis records
type Normalizer struct {
	catalog locale.Catalog
}

// New creates a normalizer that fills defaults from the given catalog.
func New(catalog locale.Catalog) *Normalizer {
	return &Normalizer{catalog: catalog}
}

// Normalize always returns a complete record, whatever the model sent back.
func (n *Normalizer) Normalize(raw string) Result {
	if doc, ok := parseObject(raw); ok {
		return Result{Record: n.complete(doc), Branch: BranchDirect}
	}

	if cleaned, ok := Clean(raw); ok {
		if doc, ok := parseObject(cleaned); ok {
			return Result{Record: n.complete(doc), Branch: BranchCleaned}
		}
	}

	return Result{Record: n.Unparseable(), Branch: BranchUnparseable}
}

// Unparseable is the record returned when no JSON object could be recovered.
func (n *Normalizer) Unparseable() models.AnalysisRecord {
	return models.NotAnalyzable(n.catalog.Unparseable.Issue, n.catalog.Unparseable.Message, n.catalog.Disclaimer)
}

// Clean strips markdown code fences and returns the text between the first '{'
// and the last '}'. ok is false when there is no such pair.
func Clean(raw string) (string, bool) {
	cleaned := jsonFence.ReplaceAllString(raw, "")
	cleaned = anyFence.ReplaceAllString(cleaned, "")

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end <= start {
		return "", false
	}
	return cleaned[start : end+1], true
}

func parseObject(text string) (map[string]json.RawMessage, bool) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &doc); err != nil || doc == nil {
		return nil, false
	}
	return doc, true
}

func (n *Normalizer) complete(doc map[string]json.RawMessage) models.AnalysisRecord {
	rec := models.AnalysisRecord{
		Summary:            stringField(doc["summary"]),
		Ingredients:        stringList(doc["ingredients"]),
		PortionAssumptions: stringList(doc["portion_assumptions"]),
		Uncertainties:      stringList(doc["uncertainties"]),
		Confidence:         confidence(doc["confidence"]),
		Disclaimer:         stringField(doc["disclaimer"]),
	}

	if guard, ok := object(doc["guard"]); ok {
		rec.Guard = models.GuardResult{
			IsFood:      boolField(guard["is_food"]),
			Issues:      stringList(guard["issues"]),
			UserMessage: stringField(guard["user_message"]),
		}
	} else {
		rec.Guard = models.GuardResult{
			IsFood:      false,
			Issues:      []string{n.catalog.IncompleteResult.Issue},
			UserMessage: n.catalog.IncompleteResult.Message,
		}
	}

	rec.Nutrition = nutrition(doc["nutrition"])

	if rec.Disclaimer == "" {
		rec.Disclaimer = n.catalog.Disclaimer
	}
	return rec
}

func nutrition(raw json.RawMessage) models.NutritionRecord {
	out := models.EmptyNutrition()
	obj, ok := object(raw)
	if !ok {
		return out
	}

	out.CaloriesKcal = number(obj["calories_kcal"])

	if macros, ok := object(obj["macros"]); ok {
		out.Macros = models.Macros{
			CarbG:    number(macros["carb_g"]),
			ProteinG: number(macros["protein_g"]),
			FatG:     number(macros["fat_g"]),
		}
	}

	if split, ok := object(obj["macro_split_pct"]); ok {
		out.MacroSplitPct = models.MacroSplitPct{
			Carb:    stringField(split["carb"]),
			Protein: stringField(split["protein"]),
			Fat:     stringField(split["fat"]),
		}
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(obj["micros"], &entries); err == nil {
		for _, entry := range entries {
			m, ok := object(entry)
			if !ok {
				continue
			}
			micro := models.Micro{
				AmountMg: number(m["amount_mg"]),
				AmountIU: number(m["amount_iu"]),
			}
			if name, ok := str(m["name"]); ok {
				micro.Name = &name
			}
			out.Micros = append(out.Micros, micro)
		}
	}
	return out
}

func confidence(raw json.RawMessage) float64 {
	v := number(raw)
	switch {
	case v == nil:
		return 0
	case *v <= 0:
		return 0 // also drops -0
	case *v > 1:
		return 1
	default:
		return *v
	}
}
