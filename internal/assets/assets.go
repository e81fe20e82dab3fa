// Package assets provides embedded static assets for the application.
//
// Prompt templates are stored as text files under prompts/ and embedded at
// compile time, keeping prompt wording reviewable outside of Go source.
package assets

import (
	_ "embed"
)

// RoomAnalysisSystemPrompt instructs the vision model to classify each listing
// photo (room type, visible features, condition, marketing appeal) and to
// nominate a hero candidate. The response contract is a single JSON object.
//
//go:embed prompts/room-analysis-system.txt
var RoomAnalysisSystemPrompt string
