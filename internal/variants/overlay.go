package variants

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Status is a listing's marketing state. The vocabulary is a closed set;
// ParseStatus rejects anything outside it.
type Status string

const (
	StatusJustListed   Status = "just_listed"
	StatusOpenHouse    Status = "open_house"
	StatusPriceReduced Status = "price_reduced"
	StatusPending      Status = "pending"
	StatusSold         Status = "sold"
	StatusComingSoon   Status = "coming_soon"
)

var knownStatuses = map[Status]bool{
	StatusJustListed:   true,
	StatusOpenHouse:    true,
	StatusPriceReduced: true,
	StatusPending:      true,
	StatusSold:         true,
	StatusComingSoon:   true,
}

// ParseStatus normalizes a raw status string against the closed vocabulary.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !knownStatuses[s] {
		return "", fmt.Errorf("unknown listing status %q", raw)
	}
	return s, nil
}

// OverlayOptions describes the text overlay composited onto each variant.
// A nil options value means no overlay at all.
type OverlayOptions struct {
	Status        Status
	Price         string
	BedBath       string
	OpenHouseDate string
	OpenHouseTime string
	SoldPrice     string

	AgentName  string
	AgentPhone string
	Brokerage  string

	// Style selects an accent palette. Unknown values fall back to the
	// default palette rather than failing the render.
	Style string
}

// hasAgentBadge reports whether any branding field is set.
func (o *OverlayOptions) hasAgentBadge() bool {
	return o.AgentName != "" || o.AgentPhone != "" || o.Brokerage != ""
}

// headline returns the banner's main line and optional detail line for the
// status. Each status is a mutually exclusive template.
func (o *OverlayOptions) headline() (string, string) {
	switch o.Status {
	case StatusJustListed:
		return "JUST LISTED", joinNonEmpty(o.Price, o.BedBath)
	case StatusOpenHouse:
		return "OPEN HOUSE", joinNonEmpty(o.OpenHouseDate, o.OpenHouseTime)
	case StatusPriceReduced:
		return "PRICE REDUCED", o.Price
	case StatusPending:
		return "PENDING", ""
	case StatusSold:
		return "SOLD", o.SoldPrice
	case StatusComingSoon:
		return "COMING SOON", ""
	}
	return "", ""
}

func joinNonEmpty(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "  ·  ")
}

// Accent colors per status. Sold and pending read as "off the market";
// the rest read as "act now".
var statusAccents = map[Status]color.RGBA{
	StatusJustListed:   {R: 0x2e, G: 0x8b, B: 0x57, A: 0xff},
	StatusOpenHouse:    {R: 0x1e, G: 0x6f, B: 0xba, A: 0xff},
	StatusPriceReduced: {R: 0xd9, G: 0x6c, B: 0x06, A: 0xff},
	StatusPending:      {R: 0xb8, G: 0x86, B: 0x0b, A: 0xff},
	StatusSold:         {R: 0xb0, G: 0x2e, B: 0x2e, A: 0xff},
	StatusComingSoon:   {R: 0x6a, G: 0x3d, B: 0x9a, A: 0xff},
}

var styleAccents = map[string]map[Status]color.RGBA{
	"minimal": {
		StatusJustListed:   {R: 0x22, G: 0x22, B: 0x22, A: 0xff},
		StatusOpenHouse:    {R: 0x22, G: 0x22, B: 0x22, A: 0xff},
		StatusPriceReduced: {R: 0x22, G: 0x22, B: 0x22, A: 0xff},
		StatusPending:      {R: 0x22, G: 0x22, B: 0x22, A: 0xff},
		StatusSold:         {R: 0x22, G: 0x22, B: 0x22, A: 0xff},
		StatusComingSoon:   {R: 0x22, G: 0x22, B: 0x22, A: 0xff},
	},
}

func accentFor(style string, status Status) color.RGBA {
	if palette, ok := styleAccents[strings.ToLower(style)]; ok {
		if c, ok := palette[status]; ok {
			return c
		}
	}
	if c, ok := statusAccents[status]; ok {
		return c
	}
	return color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff}
}

// Fonts are parsed once per process; faces are cheap and built per render
// because size scales with the platform.
var (
	fontOnce    sync.Once
	fontRegular *opentype.Font
	fontBold    *opentype.Font
	fontErr     error
)

func loadFonts() error {
	fontOnce.Do(func() {
		fontRegular, fontErr = opentype.Parse(goregular.TTF)
		if fontErr != nil {
			fontErr = fmt.Errorf("failed to parse regular font: %w", fontErr)
			return
		}
		fontBold, fontErr = opentype.Parse(gobold.TTF)
		if fontErr != nil {
			fontErr = fmt.Errorf("failed to parse bold font: %w", fontErr)
		}
	})
	return fontErr
}

func newFace(f *opentype.Font, sizePx float64) (font.Face, error) {
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// renderOverlay builds the platform-sized overlay layer: a status banner
// across the bottom and, when branding fields are present, an agent badge in
// the top-right corner. Font sizes and padding scale with platform width so
// the 600px email rendition stays as legible as the print flyer.
func renderOverlay(spec PlatformSpec, opts *OverlayOptions) (image.Image, error) {
	if err := loadFonts(); err != nil {
		return nil, err
	}

	layer := image.NewRGBA(image.Rect(0, 0, spec.Width, spec.Height))

	headlineSize := float64(spec.Width) * 0.055
	if headlineSize < 18 {
		headlineSize = 18
	}
	detailSize := headlineSize * 0.55
	badgeSize := headlineSize * 0.42
	pad := spec.Width / 30

	headlineFace, err := newFace(fontBold, headlineSize)
	if err != nil {
		return nil, fmt.Errorf("failed to build headline face: %w", err)
	}
	defer headlineFace.Close()
	detailFace, err := newFace(fontRegular, detailSize)
	if err != nil {
		return nil, fmt.Errorf("failed to build detail face: %w", err)
	}
	defer detailFace.Close()

	headline, detail := opts.headline()
	if headline != "" {
		drawBanner(layer, spec, opts, headline, detail, headlineFace, detailFace, pad)
	}

	if opts.hasAgentBadge() {
		badgeFace, err := newFace(fontRegular, badgeSize)
		if err != nil {
			return nil, fmt.Errorf("failed to build badge face: %w", err)
		}
		defer badgeFace.Close()
		drawAgentBadge(layer, spec, opts, badgeFace, pad)
	}

	return layer, nil
}

// drawBanner fills a translucent strip across the bottom of the layer with
// the status accent color and centers the headline and detail lines in it.
func drawBanner(layer *image.RGBA, spec PlatformSpec, opts *OverlayOptions, headline, detail string, headlineFace, detailFace font.Face, pad int) {
	bannerHeight := spec.Height / 5
	if detail == "" {
		bannerHeight = spec.Height / 7
	}
	top := spec.Height - bannerHeight

	accent := accentFor(opts.Style, opts.Status)
	accent.A = 0xd9
	draw.Draw(layer, image.Rect(0, top, spec.Width, spec.Height), image.NewUniform(accent), image.Point{}, draw.Src)

	white := image.NewUniform(color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})

	headlineMetrics := headlineFace.Metrics()
	baseline := top + pad + headlineMetrics.Ascent.Ceil()
	drawCenteredText(layer, headlineFace, white, headline, spec.Width, baseline)

	if detail != "" {
		detailMetrics := detailFace.Metrics()
		detailBaseline := baseline + headlineMetrics.Descent.Ceil() + pad/2 + detailMetrics.Ascent.Ceil()
		drawCenteredText(layer, detailFace, white, detail, spec.Width, detailBaseline)
	}
}

// drawAgentBadge renders the branding lines on a translucent dark box in the
// top-right corner.
func drawAgentBadge(layer *image.RGBA, spec PlatformSpec, opts *OverlayOptions, face font.Face, pad int) {
	lines := make([]string, 0, 3)
	for _, l := range []string{opts.AgentName, opts.AgentPhone, opts.Brokerage} {
		if l != "" {
			lines = append(lines, l)
		}
	}

	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()
	inset := pad / 2

	maxWidth := 0
	drawer := &font.Drawer{Face: face}
	for _, l := range lines {
		if w := drawer.MeasureString(l).Ceil(); w > maxWidth {
			maxWidth = w
		}
	}

	boxWidth := maxWidth + 2*inset
	boxHeight := lineHeight*len(lines) + 2*inset
	boxLeft := spec.Width - pad - boxWidth
	if boxLeft < 0 {
		boxLeft = 0
	}
	box := image.Rect(boxLeft, pad, spec.Width-pad, pad+boxHeight)

	dark := color.RGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xb3}
	draw.Draw(layer, box, image.NewUniform(dark), image.Point{}, draw.Src)

	white := image.NewUniform(color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	baseline := box.Min.Y + inset + metrics.Ascent.Ceil()
	for _, l := range lines {
		d := &font.Drawer{
			Dst:  layer,
			Src:  white,
			Face: face,
			Dot:  fixed.P(box.Min.X+inset, baseline),
		}
		d.DrawString(l)
		baseline += lineHeight
	}
}

func drawCenteredText(dst *image.RGBA, face font.Face, src image.Image, text string, width, baseline int) {
	d := &font.Drawer{Dst: dst, Src: src, Face: face}
	textWidth := d.MeasureString(text).Ceil()
	x := (width - textWidth) / 2
	if x < 0 {
		x = 0
	}
	d.Dot = fixed.P(x, baseline)
	d.DrawString(text)
}
