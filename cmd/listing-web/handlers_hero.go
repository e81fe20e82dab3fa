package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/homecanvas/listing-media-engine/internal/bundle"
	"github.com/homecanvas/listing-media-engine/internal/heroselect"
	"github.com/homecanvas/listing-media-engine/internal/insights"
	"github.com/homecanvas/listing-media-engine/internal/pipeline"
	"github.com/homecanvas/listing-media-engine/internal/storage"
	"github.com/homecanvas/listing-media-engine/internal/variants"
)

// maxUploadBytes bounds one request's photo payload. A listing shoot tops out
// around 40 photos at a few MB each.
const maxUploadBytes = 256 << 20

type server struct {
	analyzer  insights.Analyzer
	publisher *storage.Publisher
	sessions  *sessionStore
}

func newServer(analyzer insights.Analyzer, publisher *storage.Publisher) *server {
	return &server{
		analyzer:  analyzer,
		publisher: publisher,
		sessions:  newSessionStore(),
	}
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/hero/select", s.handleSelect)
	mux.HandleFunc("POST /api/hero/process", s.handleProcess)
	mux.HandleFunc("GET /api/variants/{session}/{file}", s.handleVariant)
	mux.HandleFunc("GET /healthz", handleHealthz)
	return mux
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// heroRequest is the parsed multipart form shared by both hero endpoints.
type heroRequest struct {
	photos   [][]byte
	insights *insights.PhotoInsights

	propertyType string
	prefs        *heroselect.Preferences
	listingID    string
	overlay      *variants.OverlayOptions
}

// parseHeroRequest reads the photo files and option fields from a multipart
// form. An "insights" field carrying PhotoInsights JSON lets callers that
// already ran vision analysis skip the model call.
func parseHeroRequest(r *http.Request) (*heroRequest, error) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, fmt.Errorf("failed to parse multipart form: %w", err)
	}

	files := r.MultipartForm.File["photos"]
	if len(files) == 0 {
		return nil, fmt.Errorf("no photos uploaded")
	}

	photos := make([][]byte, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open uploaded photo %s: %w", fh.Filename, err)
		}
		buf, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read uploaded photo %s: %w", fh.Filename, err)
		}
		photos = append(photos, buf)
	}

	req := &heroRequest{
		photos:       photos,
		propertyType: r.FormValue("propertyType"),
		listingID:    r.FormValue("listingId"),
	}

	if raw := r.FormValue("insights"); raw != "" {
		var ins insights.PhotoInsights
		if err := json.Unmarshal([]byte(raw), &ins); err != nil {
			return nil, fmt.Errorf("invalid insights payload: %w", err)
		}
		req.insights = &ins
	}

	if room := r.FormValue("preferredRoom"); room != "" {
		req.prefs = &heroselect.Preferences{PreferredRoom: insights.ParseRoomType(room)}
	}

	overlay, err := overlayFromForm(r)
	if err != nil {
		return nil, err
	}
	req.overlay = overlay

	return req, nil
}

func overlayFromForm(r *http.Request) (*variants.OverlayOptions, error) {
	status := r.FormValue("status")
	agentName := r.FormValue("agentName")
	agentPhone := r.FormValue("agentPhone")
	brokerage := r.FormValue("brokerage")
	if status == "" && agentName == "" && agentPhone == "" && brokerage == "" {
		return nil, nil
	}

	opts := &variants.OverlayOptions{
		Price:         r.FormValue("price"),
		BedBath:       r.FormValue("bedBath"),
		OpenHouseDate: r.FormValue("openHouseDate"),
		OpenHouseTime: r.FormValue("openHouseTime"),
		SoldPrice:     r.FormValue("soldPrice"),
		AgentName:     agentName,
		AgentPhone:    agentPhone,
		Brokerage:     brokerage,
		Style:         r.FormValue("style"),
	}
	if status != "" {
		parsed, err := variants.ParseStatus(status)
		if err != nil {
			return nil, err
		}
		opts.Status = parsed
	}
	return opts, nil
}

// handleSelect runs hero selection only and returns the ranked decision.
// Insights supplied in the form take precedence over the server's analyzer.
func (s *server) handleSelect(w http.ResponseWriter, r *http.Request) {
	req, err := parseHeroRequest(r)
	if err != nil {
		httpError(w, http.StatusBadRequest, err.Error())
		return
	}

	ins := req.insights
	if ins == nil && s.analyzer != nil {
		analyzed, err := s.analyzer.Analyze(r.Context(), req.photos)
		if err != nil {
			log.Warn().Err(err).Msg("Vision analysis failed, selecting on quality alone")
		} else {
			ins = analyzed
		}
	}

	result := heroselect.New().SelectOptimalHero(r.Context(), req.photos, ins, req.propertyType, req.prefs)
	respondJSON(w, http.StatusOK, result)
}

// variantLink describes one generated rendition plus its download path.
type variantLink struct {
	Name                string `json:"name"`
	Width               int    `json:"width"`
	Height              int    `json:"height"`
	PlatformDisplayName string `json:"platformDisplayName"`
	Description         string `json:"description"`
	URL                 string `json:"url"`
}

type processResponse struct {
	SessionID string                     `json:"sessionId"`
	Selection *heroselect.Result         `json:"selection"`
	Variants  []variantLink              `json:"variants"`
	BundleURL string                     `json:"bundleUrl"`
	Published []storage.PublishedVariant `json:"published,omitempty"`
}

// handleProcess runs the full pipeline and parks the renditions in a session
// for download.
func (s *server) handleProcess(w http.ResponseWriter, r *http.Request) {
	req, err := parseHeroRequest(r)
	if err != nil {
		httpError(w, http.StatusBadRequest, err.Error())
		return
	}

	p := pipeline.New(s.analyzer)
	opts := pipeline.Options{
		PropertyType: req.propertyType,
		Preferences:  req.prefs,
		Overlay:      req.overlay,
	}

	var result *pipeline.Result
	if req.insights != nil {
		// Pre-supplied insights bypass the analyzer: select first, then
		// render from the chosen original.
		selection := heroselect.New().SelectOptimalHero(r.Context(), req.photos, req.insights, req.propertyType, req.prefs)
		result = &pipeline.Result{
			Original:      req.photos[selection.SelectedIndex],
			SelectedIndex: selection.SelectedIndex,
			Reason:        selection.Reason,
			Confidence:    selection.Confidence,
			Selection:     selection,
			Insights:      req.insights,
		}
		result.Variants = variants.NewGenerator().GenerateHeroVariants(result.Original, req.overlay)
	} else {
		result, err = p.Process(r.Context(), req.photos, opts)
		if err != nil {
			httpError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	sess := s.sessions.add(req.listingID, result.Variants)

	links := make([]variantLink, 0, len(result.Variants))
	for _, v := range result.Variants {
		links = append(links, variantLink{
			Name:                v.Name,
			Width:               v.Width,
			Height:              v.Height,
			PlatformDisplayName: v.PlatformDisplayName,
			Description:         v.Description,
			URL:                 fmt.Sprintf("/api/variants/%s/%s.jpg", sess.id, v.Name),
		})
	}

	resp := processResponse{
		SessionID: sess.id,
		Selection: result.Selection,
		Variants:  links,
		BundleURL: fmt.Sprintf("/api/variants/%s/bundle.zip", sess.id),
	}

	// Publication is best-effort: local session links still work when S3
	// does not.
	if s.publisher != nil {
		listingID := req.listingID
		if listingID == "" {
			listingID = sess.id
		}
		published, err := s.publisher.Publish(r.Context(), listingID, result.Variants)
		if err != nil {
			log.Warn().Err(err).Msg("S3 publication failed, returning session links only")
		} else {
			resp.Published = published
		}
	}

	respondJSON(w, http.StatusOK, resp)
}

// handleVariant serves one rendition, or the whole set as bundle.zip.
func (s *server) handleVariant(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessions.get(r.PathValue("session"))
	if !ok {
		httpError(w, http.StatusNotFound, "session not found or expired")
		return
	}

	file := r.PathValue("file")
	if file == "bundle.zip" {
		prefix := sess.listingID
		if prefix == "" {
			prefix = "listing"
		}
		w.Header().Set("Content-Type", "application/zip")
		w.Header().Set("Content-Disposition", `attachment; filename="`+prefix+`-variants.zip"`)
		if err := bundle.Write(w, prefix, sess.variants); err != nil {
			log.Error().Err(err).Msg("Bundle write failed")
		}
		return
	}

	name := file
	if len(name) > 4 && name[len(name)-4:] == ".jpg" {
		name = name[:len(name)-4]
	}
	v, ok := sess.variant(name)
	if !ok {
		httpError(w, http.StatusNotFound, "variant not found")
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(v.Buffer)))
	w.Write(v.Buffer)
}
