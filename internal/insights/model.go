package insights

import "os"

// Gemini model IDs used for room analysis. Flash-tier models are the default:
// room classification is a high-volume, low-reasoning task.
const (
	ModelGemini3FlashPreview = "gemini-3-flash-preview"
	ModelGemini25Flash       = "gemini-2.5-flash"
	ModelGemini25FlashLite   = "gemini-2.5-flash-lite"
	ModelGemini25Pro         = "gemini-2.5-pro"
)

// DefaultModelName is the default Gemini model to use.
// Can be overridden via GEMINI_MODEL environment variable.
const DefaultModelName = ModelGemini3FlashPreview

// GetModelName returns the Gemini model to use, resolved from:
//  1. GEMINI_MODEL environment variable (if set)
//  2. Default: gemini-3-flash-preview
func GetModelName() string {
	if env := os.Getenv("GEMINI_MODEL"); env != "" {
		return env
	}
	return DefaultModelName
}
