package media

import "strings"

var languageCodes = map[string]string{
	"japanese":   "ja",
	"english":    "en",
	"chinese":    "zh",
	"korean":     "ko",
	"vietnamese": "vi",
	"french":     "fr",
	"german":     "de",
	"spanish":    "es",
	"portuguese": "pt",
	"russian":    "ru",
	"italian":    "it",
	"auto":       "auto",
}

// languageCode maps a language name to its whisper code. Codes and unknown
// names pass through unchanged.
func languageCode(language string) string {
	if code, ok := languageCodes[strings.ToLower(strings.TrimSpace(language))]; ok {
		return code
	}
	return language
}
