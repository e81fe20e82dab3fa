package insights

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/evanoberholster/imagemeta"
)

// CaptureContext is the EXIF context extracted from a photo buffer and folded
// into the room-analysis prompt. Capture time helps the model distinguish
// twilight exteriors from underexposed interiors; camera info hints at
// professional versus phone photography.
type CaptureContext struct {
	DateTaken   time.Time
	HasDate     bool
	CameraMake  string
	CameraModel string
}

// ExtractCaptureContext reads EXIF metadata from an in-memory photo.
// imagemeta only reads the metadata segments, not the full pixel data,
// so this stays cheap even for print-resolution photos.
// A photo without usable EXIF returns an empty context, not an error.
func ExtractCaptureContext(photo []byte) CaptureContext {
	exifData, err := imagemeta.Decode(bytes.NewReader(photo))
	if err != nil {
		return CaptureContext{}
	}

	cc := CaptureContext{
		CameraMake:  strings.TrimSpace(exifData.Make),
		CameraModel: strings.TrimSpace(exifData.Model),
	}

	// Priority: DateTimeOriginal > CreateDate > ModifyDate
	switch {
	case !exifData.DateTimeOriginal().IsZero():
		cc.DateTaken = exifData.DateTimeOriginal()
		cc.HasDate = true
	case !exifData.CreateDate().IsZero():
		cc.DateTaken = exifData.CreateDate()
		cc.HasDate = true
	case !exifData.ModifyDate().IsZero():
		cc.DateTaken = exifData.ModifyDate()
		cc.HasDate = true
	}

	return cc
}

// FormatPromptLines renders the capture context as prompt metadata lines.
// Returns an empty string when nothing useful was extracted.
func (cc CaptureContext) FormatPromptLines() string {
	var sb strings.Builder
	if cc.HasDate {
		sb.WriteString(fmt.Sprintf("- Taken: %s\n", cc.DateTaken.Format("Monday, January 2, 2006 at 3:04 PM")))
	}
	if cc.CameraMake != "" || cc.CameraModel != "" {
		sb.WriteString(fmt.Sprintf("- Camera: %s %s\n", cc.CameraMake, cc.CameraModel))
	}
	return sb.String()
}
