// Package variants renders the chosen hero photo into one rendition per
// marketing platform: cover-fit crops at each platform's exact dimensions,
// optionally composited with a listing-status overlay and agent badge.
package variants

// PlatformSpec describes one target rendition. The catalog is fixed package
// data: supporting a new placement means a new entry, not new code.
type PlatformSpec struct {
	Name        string
	Width       int
	Height      int
	DisplayName string
}

// DefaultPlatforms is the shipped rendition catalog. Order is significant:
// generated variants follow catalog order, and a failed platform is simply
// absent rather than reordering the rest.
var DefaultPlatforms = []PlatformSpec{
	{Name: "facebook", Width: 1200, Height: 630, DisplayName: "Facebook Feed"},
	{Name: "instagram", Width: 1080, Height: 1080, DisplayName: "Instagram Post"},
	{Name: "story", Width: 1080, Height: 1920, DisplayName: "Instagram/Facebook Story"},
	{Name: "email", Width: 600, Height: 400, DisplayName: "Email Header"},
	{Name: "web", Width: 1920, Height: 1080, DisplayName: "Website Hero"},
	{Name: "print", Width: 2550, Height: 3300, DisplayName: "Print Flyer"},
}
