package insights

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"github.com/homecanvas/listing-media-engine/internal/assets"
	"github.com/homecanvas/listing-media-engine/internal/jsonutil"
	"github.com/homecanvas/listing-media-engine/internal/metrics"
)

// GeminiAnalyzer implements Analyzer against the Gemini API.
type GeminiAnalyzer struct {
	client *genai.Client
	model  string
}

var _ Analyzer = (*GeminiAnalyzer)(nil)

// NewGeminiClient creates a Gemini API client from an API key.
func NewGeminiClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return client, nil
}

// NewGeminiAnalyzer creates a room analyzer backed by the given Gemini client.
// Model resolution follows GetModelName (GEMINI_MODEL override, flash default).
func NewGeminiAnalyzer(client *genai.Client) *GeminiAnalyzer {
	return &GeminiAnalyzer{client: client, model: GetModelName()}
}

// Analyze sends thumbnails of every photo to Gemini and parses the returned
// room analyses. Photos are thumbnailed one at a time; a photo that cannot be
// thumbnailed is still sent as a metadata-only entry so the rooms array stays
// aligned with the input.
func (a *GeminiAnalyzer) Analyze(ctx context.Context, photos [][]byte) (*PhotoInsights, error) {
	log.Info().
		Int("total_photos", len(photos)).
		Str("model", a.model).
		Msg("Starting room analysis with Gemini")

	if len(photos) == 0 {
		return nil, fmt.Errorf("no photos to analyze")
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: assets.RoomAnalysisSystemPrompt}},
		},
	}

	var parts []*genai.Part
	for i, photo := range photos {
		parts = append(parts, &genai.Part{Text: buildPhotoHeader(i, photo)})

		thumbData, mimeType, err := encodeThumbnail(photo)
		if err != nil {
			log.Warn().Err(err).Int("index", i).Msg("Failed to thumbnail photo, sending metadata only")
			continue
		}

		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				MIMEType: mimeType,
				Data:     thumbData,
			},
		})
	}

	parts = append(parts, &genai.Part{
		Text: fmt.Sprintf("Analyze all %d photos above and respond with the JSON object.", len(photos)),
	})

	contents := []*genai.Content{{Role: "user", Parts: parts}}
	geminiStart := time.Now()
	resp, err := a.client.Models.GenerateContent(ctx, a.model, contents, config)
	geminiElapsed := time.Since(geminiStart)

	m := metrics.New().
		Dimension("Operation", "roomAnalysis").
		Duration("GeminiApiLatencyMs", geminiElapsed).
		Count("GeminiApiCalls")
	if err != nil {
		m.Count("GeminiApiErrors")
	}
	if resp != nil && resp.UsageMetadata != nil {
		m.Metric("GeminiInputTokens", float64(resp.UsageMetadata.PromptTokenCount), metrics.UnitCount)
		m.Metric("GeminiOutputTokens", float64(resp.UsageMetadata.CandidatesTokenCount), metrics.UnitCount)
	}
	m.Flush()

	if err != nil {
		log.Error().Err(err).Msg("Failed to generate room analysis from Gemini")
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}
	if resp == nil {
		return nil, fmt.Errorf("received empty response from Gemini API")
	}

	result, err := parseAnalysisResponse(resp.Text(), len(photos))
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("rooms", len(result.Rooms)).
		Bool("has_hero_candidate", result.HeroCandidate != nil).
		Msg("Room analysis complete")

	return result, nil
}

// buildPhotoHeader renders the "Photo N" metadata block preceding each image part.
func buildPhotoHeader(index int, photo []byte) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Photo %d\n", index))
	if meta := ExtractCaptureContext(photo).FormatPromptLines(); meta != "" {
		sb.WriteString(meta)
	}
	return sb.String()
}

// parseAnalysisResponse extracts the JSON payload and normalizes it:
// room types canonicalized, appeal clamped to [0, 10], hero candidate index
// validated against the photo count.
func parseAnalysisResponse(response string, photoCount int) (*PhotoInsights, error) {
	result, err := jsonutil.ParseJSON[PhotoInsights](response)
	if err != nil {
		log.Error().Err(err).Int("response_length", len(response)).Msg("Failed to parse room analysis response")
		return nil, fmt.Errorf("room analysis response: %w", err)
	}
	if len(result.Rooms) == 0 {
		return nil, fmt.Errorf("empty room analysis (no rooms returned for %d photos)", photoCount)
	}

	for i := range result.Rooms {
		result.Rooms[i].Type = ParseRoomType(string(result.Rooms[i].Type))
		if result.Rooms[i].Appeal < 0 {
			result.Rooms[i].Appeal = 0
		}
		if result.Rooms[i].Appeal > 10 {
			result.Rooms[i].Appeal = 10
		}
	}

	if hc := result.HeroCandidate; hc != nil && (hc.Index < 0 || hc.Index >= photoCount) {
		log.Warn().Int("index", hc.Index).Int("photo_count", photoCount).
			Msg("Hero candidate index out of range, discarding")
		result.HeroCandidate = nil
	}

	if len(result.Rooms) != photoCount {
		// Kept rather than rejected: the selector falls back to quality-only
		// mode on a length mismatch, which is the safe degradation.
		log.Warn().
			Int("rooms", len(result.Rooms)).
			Int("photos", photoCount).
			Msg("Room analysis count does not match photo count")
	}

	return &result, nil
}
