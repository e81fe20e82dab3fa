package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/homecanvas/listing-media-engine/internal/auth"
	"github.com/homecanvas/listing-media-engine/internal/cli"
	"github.com/homecanvas/listing-media-engine/internal/insights"
	"github.com/homecanvas/listing-media-engine/internal/logging"
	"github.com/homecanvas/listing-media-engine/internal/storage"
)

// CLI flags
var (
	portFlag int
	noAIFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "listing-web",
	Short: "HTTP API for hero selection and marketing variants",
	Long: `Listing Web exposes the hero pipeline over HTTP for the listing tools that
can't shell out to the CLI. Upload a photo set, get back the hero decision and
a set of platform renditions served from an in-memory session.

Examples:
  listing-web
  listing-web --port 9090
  listing-web --no-ai`,
	Run: runMain,
}

func init() {
	rootCmd.Flags().IntVar(&portFlag, "port", 8080, "Port to listen on")
	rootCmd.Flags().BoolVar(&noAIFlag, "no-ai", false, "Skip vision analysis even when GEMINI_API_KEY is set")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runMain(cmd *cobra.Command, args []string) {
	logging.InitJSON()

	var analyzer insights.Analyzer
	if !noAIFlag {
		if apiKey, err := auth.GetAPIKey(); err == nil {
			ctx := context.Background()
			client, err := insights.NewGeminiClient(ctx, apiKey)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to create Gemini client")
			}
			if err := auth.ValidateAPIKey(ctx, client); err != nil {
				cli.HandleValidationError(err)
			}
			analyzer = insights.NewGeminiAnalyzer(client)
			log.Info().Msg("Vision analysis enabled")
		} else {
			log.Info().Msg("No Gemini API key available, selecting on quality alone")
		}
	}

	var publisher *storage.Publisher
	if bucket := os.Getenv("LISTING_MEDIA_BUCKET"); bucket != "" {
		pub, err := storage.NewPublisher(context.Background(), bucket)
		if err != nil {
			log.Fatal().Err(err).Str("bucket", bucket).Msg("Failed to configure S3 publication")
		}
		publisher = pub
		log.Info().Str("bucket", bucket).Msg("S3 publication enabled")
	}

	srv := newServer(analyzer, publisher)
	handler := withLogging(withSecurityHeaders(srv.routes()))

	httpSrv := &http.Server{
		Addr:         fmt.Sprintf(":%d", portFlag),
		Handler:      handler,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 300 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info().Msg("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		httpSrv.Shutdown(ctx)
	}()

	log.Info().Int("port", portFlag).Msg("Starting listing-web")

	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Server failed")
	}
}

// --- Middleware ---

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		if strings.HasPrefix(r.URL.Path, "/api/") {
			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Dur("duration", time.Since(start)).
				Msg("API request")
		}
	})
}

func withSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}
