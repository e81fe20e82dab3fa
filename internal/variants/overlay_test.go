package variants

import (
	"testing"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		raw     string
		want    Status
		wantErr bool
	}{
		{"just_listed", StatusJustListed, false},
		{"SOLD", StatusSold, false},
		{"  open_house ", StatusOpenHouse, false},
		{"for_sale", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseStatus(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStatus(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseStatus(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestOverlayHeadlines(t *testing.T) {
	tests := []struct {
		name         string
		opts         OverlayOptions
		wantHeadline string
		wantDetail   string
	}{
		{
			"just listed with price and beds",
			OverlayOptions{Status: StatusJustListed, Price: "$485,000", BedBath: "3 bd · 2 ba"},
			"JUST LISTED", "$485,000  ·  3 bd · 2 ba",
		},
		{
			"open house with schedule",
			OverlayOptions{Status: StatusOpenHouse, OpenHouseDate: "Sat, Jun 14", OpenHouseTime: "1-4 PM"},
			"OPEN HOUSE", "Sat, Jun 14  ·  1-4 PM",
		},
		{
			"price reduced",
			OverlayOptions{Status: StatusPriceReduced, Price: "$449,000"},
			"PRICE REDUCED", "$449,000",
		},
		{
			"pending has no detail line",
			OverlayOptions{Status: StatusPending, Price: "$485,000"},
			"PENDING", "",
		},
		{
			"sold with sold price",
			OverlayOptions{Status: StatusSold, SoldPrice: "$492,000"},
			"SOLD", "$492,000",
		},
		{
			"coming soon",
			OverlayOptions{Status: StatusComingSoon},
			"COMING SOON", "",
		},
		{
			"just listed with missing fields drops them",
			OverlayOptions{Status: StatusJustListed, BedBath: "3 bd · 2 ba"},
			"JUST LISTED", "3 bd · 2 ba",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headline, detail := tt.opts.headline()
			if headline != tt.wantHeadline {
				t.Errorf("headline = %q, want %q", headline, tt.wantHeadline)
			}
			if detail != tt.wantDetail {
				t.Errorf("detail = %q, want %q", detail, tt.wantDetail)
			}
		})
	}
}

func TestRenderOverlay_BannerAndBadge(t *testing.T) {
	spec := PlatformSpec{Name: "web", Width: 1920, Height: 1080, DisplayName: "Website Hero"}

	layer, err := renderOverlay(spec, testOverlayOptions())
	if err != nil {
		t.Fatalf("renderOverlay() error = %v", err)
	}

	bounds := layer.Bounds()
	if bounds.Dx() != spec.Width || bounds.Dy() != spec.Height {
		t.Fatalf("layer size = %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), spec.Width, spec.Height)
	}

	// The banner strip covers the bottom of the layer.
	if _, _, _, a := layer.At(spec.Width/2, spec.Height-10).RGBA(); a == 0 {
		t.Error("bottom banner area is fully transparent")
	}
	// The middle of the frame stays clear so the photo shows through.
	if _, _, _, a := layer.At(spec.Width/2, spec.Height/2).RGBA(); a != 0 {
		t.Error("frame center is not transparent")
	}
	// The agent badge occupies the top-right corner.
	if _, _, _, a := layer.At(spec.Width-spec.Width/30-5, spec.Width/30+5).RGBA(); a == 0 {
		t.Error("agent badge area is fully transparent")
	}
}

func TestRenderOverlay_NoBadgeWithoutBranding(t *testing.T) {
	spec := PlatformSpec{Name: "email", Width: 600, Height: 400, DisplayName: "Email Header"}
	opts := &OverlayOptions{Status: StatusComingSoon}

	layer, err := renderOverlay(spec, opts)
	if err != nil {
		t.Fatalf("renderOverlay() error = %v", err)
	}

	if _, _, _, a := layer.At(spec.Width-spec.Width/30-5, spec.Width/30+5).RGBA(); a != 0 {
		t.Error("badge area painted despite no branding fields")
	}
}

func TestAccentFor_UnknownFallsBack(t *testing.T) {
	got := accentFor("brutalist", StatusSold)
	if got != statusAccents[StatusSold] {
		t.Errorf("unknown style accent = %v, want status default %v", got, statusAccents[StatusSold])
	}
}

func TestRenderOverlay_ScalesWithPlatform(t *testing.T) {
	// Smallest and largest catalog entries must both render without error.
	for _, spec := range []PlatformSpec{DefaultPlatforms[3], DefaultPlatforms[5]} {
		if _, err := renderOverlay(spec, testOverlayOptions()); err != nil {
			t.Errorf("renderOverlay(%s) error = %v", spec.Name, err)
		}
	}
}
