package intake

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franckalain/nutritionguard/internal/locale"
)

func newTestValidator() *Validator {
	return NewValidator(0, 0, locale.Lookup("en"))
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name   string
		image  string
		reason Reason
		issue  string
	}{
		{name: "empty", image: "", reason: ReasonMissing, issue: "no image uploaded"},
		{name: "49 chars", image: strings.Repeat("A", 49), reason: ReasonMissing, issue: "no image uploaded"},
		{name: "data url prefix", image: "data:image/jpeg;base64," + strings.Repeat("A", 2000), reason: ReasonEncoding, issue: "invalid image encoding"},
		{name: "whitespace", image: strings.Repeat("A", 1000) + " " + strings.Repeat("A", 1000), reason: ReasonEncoding, issue: "invalid image encoding"},
		{name: "too much padding", image: strings.Repeat("A", 2000) + "===", reason: ReasonEncoding, issue: "invalid image encoding"},
		{name: "too small", image: strings.Repeat("A", 1364), reason: ReasonTooSmall, issue: "image too small / likely invalid"},
		{name: "50 chars still too small", image: strings.Repeat("A", 50), reason: ReasonTooSmall, issue: "image too small / likely invalid"},
		{name: "too large", image: strings.Repeat("A", 6990508), reason: ReasonTooLarge, issue: "image too large"},
	}

	v := newTestValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rej := v.Check(tt.image)
			require.NotNil(t, rej)
			assert.Equal(t, tt.reason, rej.Reason)

			rec := rej.Record("disclaimer")
			assert.False(t, rec.Guard.IsFood)
			assert.Equal(t, []string{tt.issue}, rec.Guard.Issues)
			assert.NotEmpty(t, rec.Guard.UserMessage)
			assert.Equal(t, 0.0, rec.Confidence)
			assert.Nil(t, rec.Nutrition.CaloriesKcal)
			assert.Nil(t, rec.Nutrition.Macros.CarbG)
			assert.NotNil(t, rec.Nutrition.Micros)
			assert.Empty(t, rec.Nutrition.Micros)
			assert.NotNil(t, rec.Ingredients)
			assert.Equal(t, "disclaimer", rec.Disclaimer)
		})
	}
}

func TestCheckAccepts(t *testing.T) {
	v := newTestValidator()

	// 1366 chars estimates the smallest size above 1KB
	assert.Nil(t, v.Check(strings.Repeat("A", 1366)))
	assert.Nil(t, v.Check(strings.Repeat("A", 4096)+"=="))
	assert.Nil(t, v.Check(strings.Repeat("+/", 2000)))
	// just under 5MB
	assert.Nil(t, v.Check(strings.Repeat("A", 6990506)))
}

func TestCheckCustomBounds(t *testing.T) {
	v := NewValidator(10, 100, locale.Lookup("en"))

	assert.Nil(t, v.Check(strings.Repeat("A", 60)))
	rej := v.Check(strings.Repeat("A", 200))
	require.NotNil(t, rej)
	assert.Equal(t, ReasonTooLarge, rej.Reason)
}

func TestCheckLocalized(t *testing.T) {
	v := NewValidator(0, 0, locale.Lookup("zh-TW"))
	rej := v.Check("")
	require.NotNil(t, rej)
	assert.Equal(t, "未上傳圖片", rej.Notice.Issue)
}

func TestEstimateSize(t *testing.T) {
	assert.Equal(t, 0.0, EstimateSize(""))
	assert.Equal(t, 3.0, EstimateSize("AAAA"))
	assert.Equal(t, 1023.75, EstimateSize(strings.Repeat("A", 1365)))
}
