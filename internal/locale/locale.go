package locale

import "strings"

// Notice pairs a short issue tag with the advisory shown to the user
type Notice struct {
	Issue   string
	Message string
}

// Catalog holds every user-facing string for one language
type Catalog struct {
	Tag      string
	Language string // language name used in the model instructions

	Disclaimer       string
	SampleDisclaimer string // attached to canned records served while the model is unavailable
	DefaultPrompt    string
	NoImage          Notice
	InvalidEncoding  Notice
	TooLarge         Notice
	TooSmall         Notice
	Unparseable      Notice
	IncompleteResult Notice

	// Display labels
	FoodFallbackName string
	NonFoodName      string
	Unknown          string
	CaloriesFormat   string
	GramsFormat      string
	MilligramsFormat string
	DefaultTip       string

	// Failure text for transport errors
	AnalysisFailed string
	ServiceHealthy string
}

const DefaultTag = "en"

var english = Catalog{
	Tag:              "en",
	Language:         "English",
	Disclaimer:       "This is an image-based estimate for reference only and is not medical advice.",
	SampleDisclaimer: "The analysis service is temporarily over capacity. This is an example result, not an analysis of your photo.",
	DefaultPrompt: "Please analyze this photo. If it is not a food image or cannot be read, report it in guard " +
		"with a short reminder; if it is a food image, return the complete JSON described by the system instructions.",
	NoImage: Notice{
		Issue:   "no image uploaded",
		Message: "No image was received. Please upload a photo of a food or a meal.",
	},
	InvalidEncoding: Notice{
		Issue:   "invalid image encoding",
		Message: "The image format is not valid. Please upload a valid image file again.",
	},
	TooLarge: Notice{
		Issue:   "image too large",
		Message: "The image file is too large (over 5MB). Please compress it and upload it again.",
	},
	TooSmall: Notice{
		Issue:   "image too small / likely invalid",
		Message: "The image file is too small and may not be a valid image. Please upload it again.",
	},
	Unparseable: Notice{
		Issue:   "model output was not valid structured data",
		Message: "The service is busy or the analysis failed. Please try again later, or upload a clearer photo of the food.",
	},
	IncompleteResult: Notice{
		Issue:   "response format incomplete",
		Message: "The analysis result is incomplete. Please upload the photo again.",
	},
	FoodFallbackName: "AI-identified food",
	NonFoodName:      "Non-food image",
	Unknown:          "unknown",
	CaloriesFormat:   "about %s kcal",
	GramsFormat:      "%s g",
	MilligramsFormat: "%s mg",
	DefaultTip:       "Eat a balanced diet with moderate amounts of every nutrient.",
	AnalysisFailed:   "Analysis failed, please try again later",
	ServiceHealthy:   "Clinical dietitian AI assistant is running",
}

var traditionalChinese = Catalog{
	Tag:              "zh-TW",
	Language:         "Traditional Chinese (繁體中文)",
	Disclaimer:       "此為影像估算，僅供參考，非醫療建議。",
	SampleDisclaimer: "分析服務暫時無法使用，以下為示範結果，並非您照片的分析。",
	DefaultPrompt:    "請分析這張照片。若不是食物影像或無法判讀，請在 guard 中回報並提供中文提醒；若是食物影像，請依系統指示回傳完整 JSON。",
	NoImage: Notice{
		Issue:   "未上傳圖片",
		Message: "尚未收到圖片，請上傳一張食物或餐點的照片。",
	},
	InvalidEncoding: Notice{
		Issue:   "圖片格式錯誤",
		Message: "圖片格式不正確，請重新上傳有效的圖片檔案。",
	},
	TooLarge: Notice{
		Issue:   "圖片檔案過大",
		Message: "圖片檔案太大（超過5MB），請壓縮後重新上傳。",
	},
	TooSmall: Notice{
		Issue:   "圖片檔案過小",
		Message: "圖片檔案太小，可能不是有效的圖片，請重新上傳。",
	},
	Unparseable: Notice{
		Issue:   "模型輸出非合法 JSON",
		Message: "系統忙碌或分析失敗，請稍後再試，或換一張更清晰的食物照片。",
	},
	IncompleteResult: Notice{
		Issue:   "回應格式不完整",
		Message: "分析結果不完整，請重新上傳照片。",
	},
	FoodFallbackName: "AI 識別的食物",
	NonFoodName:      "非食物影像",
	Unknown:          "未知",
	CaloriesFormat:   "約 %s 大卡",
	GramsFormat:      "%s 公克",
	MilligramsFormat: "%s 毫克",
	DefaultTip:       "建議均衡飲食，適量攝取各種營養素",
	AnalysisFailed:   "分析失敗，請稍後再試",
	ServiceHealthy:   "臨床營養師 AI 助手運行正常",
}

var catalogs = map[string]Catalog{
	"en":    english,
	"zh-tw": traditionalChinese,
}

// Lookup returns the catalog for tag, falling back to English for unknown tags.
func Lookup(tag string) Catalog {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(tag), "_", "-"))
	if c, ok := catalogs[key]; ok {
		return c
	}
	return english
}

// Supported reports whether tag names a known catalog.
func Supported(tag string) bool {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(tag), "_", "-"))
	_, ok := catalogs[key]
	return ok
}
