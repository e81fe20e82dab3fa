package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/homecanvas/listing-media-engine/internal/auth"
	"github.com/homecanvas/listing-media-engine/internal/bundle"
	"github.com/homecanvas/listing-media-engine/internal/cli"
	"github.com/homecanvas/listing-media-engine/internal/heroselect"
	"github.com/homecanvas/listing-media-engine/internal/insights"
	"github.com/homecanvas/listing-media-engine/internal/logging"
	"github.com/homecanvas/listing-media-engine/internal/pipeline"
	"github.com/homecanvas/listing-media-engine/internal/storage"
	"github.com/homecanvas/listing-media-engine/internal/variants"
)

// CLI flags
var (
	directoryFlag    string
	propertyTypeFlag string
	preferredRoom    string
	noAIFlag         bool
	skipVariantsFlag bool
	outDirFlag       string
	bundleFlag       string
	listingIDFlag    string
	s3BucketFlag     string

	statusFlag        string
	priceFlag         string
	bedBathFlag       string
	openHouseDateFlag string
	openHouseTimeFlag string
	soldPriceFlag     string
	agentNameFlag     string
	agentPhoneFlag    string
	brokerageFlag     string
	styleFlag         string
)

// rootCmd is the main Cobra command for the CLI.
var rootCmd = &cobra.Command{
	Use:   "listing-hero [photos...]",
	Short: "Hero photo selection and marketing variants for listing photos",
	Long: `Listing Hero picks the strongest lead photo from a listing shoot and renders
it into every marketing placement: social feeds, stories, email headers, the
website hero slot, and print flyers.

Photos come from a directory (--directory) or as file arguments. With a
GEMINI_API_KEY set, room-level vision analysis drives the choice; without one
(or with --no-ai) selection falls back to pixel quality and shoot-order
heuristics.

Examples:
  listing-hero --directory ./shoot --property-type "luxury waterfront"
  listing-hero photos/*.jpg --status just_listed --price "$485,000" --bed-bath "3 bd / 2 ba"
  listing-hero -d ./shoot --no-ai --out ./renditions --bundle renditions.zip
  listing-hero -d ./shoot --s3-bucket listing-media --listing-id mls-4417322`,
	Run: runMain,
}

func init() {
	rootCmd.Flags().StringVarP(&directoryFlag, "directory", "d", "", "Directory containing listing photos")
	rootCmd.Flags().StringVarP(&propertyTypeFlag, "property-type", "p", "", "Property segment hint (e.g. 'luxury', 'condo', 'waterfront')")
	rootCmd.Flags().StringVar(&preferredRoom, "preferred-room", "", "Bias selection toward this room type (e.g. 'exterior', 'kitchen')")
	rootCmd.Flags().BoolVar(&noAIFlag, "no-ai", false, "Skip vision analysis even when GEMINI_API_KEY is set")
	rootCmd.Flags().BoolVar(&skipVariantsFlag, "skip-variants", false, "Report the hero decision without rendering variants")
	rootCmd.Flags().StringVarP(&outDirFlag, "out", "o", "", "Directory to write variant JPEGs into")
	rootCmd.Flags().StringVar(&bundleFlag, "bundle", "", "Path to write a ZIP of all variants")
	rootCmd.Flags().StringVar(&listingIDFlag, "listing-id", "", "Listing identifier used for S3 keys and bundle names")
	rootCmd.Flags().StringVar(&s3BucketFlag, "s3-bucket", "", "Publish variants to this S3 bucket and print presigned links")

	rootCmd.Flags().StringVar(&statusFlag, "status", "", "Listing status overlay: just_listed, open_house, price_reduced, pending, sold, coming_soon")
	rootCmd.Flags().StringVar(&priceFlag, "price", "", "List price shown on the overlay")
	rootCmd.Flags().StringVar(&bedBathFlag, "bed-bath", "", "Bed/bath line shown on the overlay (e.g. '3 bd / 2 ba')")
	rootCmd.Flags().StringVar(&openHouseDateFlag, "open-house-date", "", "Open house date for the open_house overlay")
	rootCmd.Flags().StringVar(&openHouseTimeFlag, "open-house-time", "", "Open house time for the open_house overlay")
	rootCmd.Flags().StringVar(&soldPriceFlag, "sold-price", "", "Final price for the sold overlay")
	rootCmd.Flags().StringVar(&agentNameFlag, "agent-name", "", "Agent name for the branding badge")
	rootCmd.Flags().StringVar(&agentPhoneFlag, "agent-phone", "", "Agent phone for the branding badge")
	rootCmd.Flags().StringVar(&brokerageFlag, "brokerage", "", "Brokerage name for the branding badge")
	rootCmd.Flags().StringVar(&styleFlag, "style", "", "Overlay accent style (e.g. 'minimal')")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runMain(cmd *cobra.Command, args []string) {
	logging.Init()
	ctx := context.Background()

	dir := directoryFlag
	if dir == "" && len(args) == 0 {
		dir = cli.PromptForDirectory()
	}
	if dir != "" {
		dir = cli.ValidateAndResolveDirectory(dir)
	}

	photos, names, err := loadPhotos(dir, args)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load photos")
	}
	if len(photos) == 0 {
		log.Fatal().Msg("No photos found; pass files or --directory")
	}
	log.Info().Int("photos", len(photos)).Msg("Photos loaded")

	overlay, err := overlayFromFlags()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid overlay options")
	}

	opts := pipeline.Options{
		PropertyType: propertyTypeFlag,
		Overlay:      overlay,
		SkipVariants: skipVariantsFlag,
	}
	if preferredRoom != "" {
		opts.Preferences = &heroselect.Preferences{PreferredRoom: insights.ParseRoomType(preferredRoom)}
	}

	result, err := pipeline.New(buildAnalyzer(ctx)).Process(ctx, photos, opts)
	if err != nil {
		log.Fatal().Err(err).Msg("Hero processing failed")
	}

	printSelection(result, names)

	if outDirFlag != "" {
		writeVariants(outDirFlag, result.Variants)
	}
	if bundleFlag != "" {
		writeBundle(bundleFlag, result.Variants)
	}
	if s3BucketFlag != "" {
		publishVariants(ctx, s3BucketFlag, result.Variants)
	}
}

// buildAnalyzer returns a Gemini-backed analyzer, or nil when analysis is
// disabled or unconfigured.
func buildAnalyzer(ctx context.Context) insights.Analyzer {
	if noAIFlag {
		return nil
	}
	apiKey, err := auth.GetAPIKey()
	if err != nil {
		log.Info().Msg("No Gemini API key available, selecting on quality alone")
		return nil
	}

	client, err := insights.NewGeminiClient(ctx, apiKey)
	if err != nil {
		log.Warn().Err(err).Msg("Gemini client unavailable, selecting on quality alone")
		return nil
	}
	return insights.NewGeminiAnalyzer(client)
}

// loadPhotos reads photo buffers from explicit file arguments and/or a
// directory scan, in deterministic name order.
func loadPhotos(dir string, files []string) ([][]byte, []string, error) {
	paths := append([]string(nil), files...)

	if dir != "" {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			ext := strings.ToLower(filepath.Ext(e.Name()))
			switch ext {
			case ".jpg", ".jpeg", ".png", ".webp":
				paths = append(paths, filepath.Join(dir, e.Name()))
			}
		}
	}

	sort.Strings(paths)

	photos := make([][]byte, 0, len(paths))
	names := make([]string, 0, len(paths))
	for _, p := range paths {
		buf, err := os.ReadFile(p)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read %s: %w", p, err)
		}
		photos = append(photos, buf)
		names = append(names, filepath.Base(p))
	}
	return photos, names, nil
}

// overlayFromFlags builds OverlayOptions from the CLI flags, or nil when no
// overlay was requested.
func overlayFromFlags() (*variants.OverlayOptions, error) {
	if statusFlag == "" && agentNameFlag == "" && agentPhoneFlag == "" && brokerageFlag == "" {
		return nil, nil
	}

	opts := &variants.OverlayOptions{
		Price:         priceFlag,
		BedBath:       bedBathFlag,
		OpenHouseDate: openHouseDateFlag,
		OpenHouseTime: openHouseTimeFlag,
		SoldPrice:     soldPriceFlag,
		AgentName:     agentNameFlag,
		AgentPhone:    agentPhoneFlag,
		Brokerage:     brokerageFlag,
		Style:         styleFlag,
	}
	if statusFlag != "" {
		status, err := variants.ParseStatus(statusFlag)
		if err != nil {
			return nil, err
		}
		opts.Status = status
	}
	return opts, nil
}

func printSelection(result *pipeline.Result, names []string) {
	fmt.Printf("\nSelected hero: #%d (%s)\n", result.SelectedIndex, names[result.SelectedIndex])
	fmt.Printf("  Reason:     %s\n", result.Reason)
	fmt.Printf("  Confidence: %.0f%%\n", result.Confidence*100)
	fmt.Printf("  Method:     %s\n\n", result.Selection.Metadata.AnalysisMethod)

	if len(result.Selection.Alternatives) > 0 {
		fmt.Println("Alternatives:")
		for _, alt := range result.Selection.Alternatives {
			fmt.Printf("  #%d (%s) — %s\n", alt.Index, names[alt.Index], alt.Reason)
		}
		fmt.Println()
	}

	if out, err := json.MarshalIndent(result.Selection, "", "  "); err == nil {
		log.Debug().RawJSON("selection", out).Msg("Full selection result")
	}
}

func writeVariants(dir string, vars []variants.Variant) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", dir).Msg("Failed to create output directory")
	}
	for _, v := range vars {
		path := filepath.Join(dir, v.Name+".jpg")
		if err := os.WriteFile(path, v.Buffer, 0o644); err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("Failed to write variant")
		}
		fmt.Printf("Wrote %s (%s)\n", path, v.Description)
	}
}

func writeBundle(path string, vars []variants.Variant) {
	f, err := os.Create(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Failed to create bundle")
	}
	defer f.Close()

	prefix := listingIDFlag
	if prefix == "" {
		prefix = "listing"
	}
	if err := bundle.Write(f, prefix, vars); err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Failed to write bundle")
	}
	fmt.Printf("Wrote %s (%d variants)\n", path, len(vars))
}

func publishVariants(ctx context.Context, bucket string, vars []variants.Variant) {
	if listingIDFlag == "" {
		log.Fatal().Msg("--listing-id is required with --s3-bucket")
	}

	publisher, err := storage.NewPublisher(ctx, bucket)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize S3 publisher")
	}

	published, err := publisher.Publish(ctx, listingIDFlag, vars)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to publish variants")
	}

	fmt.Println("Published variants:")
	for _, p := range published {
		fmt.Printf("  %s: %s\n", p.Name, p.URL)
	}
}
