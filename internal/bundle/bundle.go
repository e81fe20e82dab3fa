// Package bundle writes a variant set as a single downloadable ZIP.
package bundle

import (
	"archive/zip"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/homecanvas/listing-media-engine/internal/variants"
)

// zipMethodZstd is the ZIP compression method ID for Zstandard (APPNOTE 6.3.7).
// Registered in init() with zstd level 12 (SpeedBestCompression in
// klauspost/compress).
const zipMethodZstd uint16 = 93

func init() {
	zip.RegisterCompressor(zipMethodZstd, func(w io.Writer) (io.WriteCloser, error) {
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(12)))
	})
}

// Write streams every variant into a ZIP on w, one entry per variant named
// <prefix>_<platform>.jpg. JPEG payloads barely compress, but method 93 keeps
// the archive format consistent with the rest of our download surface, and
// readers without zstd support are not a concern for agent tooling.
func Write(w io.Writer, prefix string, vars []variants.Variant) error {
	zw := zip.NewWriter(w)

	now := time.Now()
	for _, v := range vars {
		header := &zip.FileHeader{
			Name:     entryName(prefix, v.Name),
			Method:   zipMethodZstd,
			Modified: now,
		}
		entry, err := zw.CreateHeader(header)
		if err != nil {
			return fmt.Errorf("failed to create zip entry for %s: %w", v.Name, err)
		}
		if _, err := entry.Write(v.Buffer); err != nil {
			return fmt.Errorf("failed to write zip entry for %s: %w", v.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finalize zip: %w", err)
	}
	return nil
}

// entryName builds a filesystem-safe entry name from the listing prefix and
// platform name.
func entryName(prefix, platform string) string {
	cleaned := sanitize(prefix)
	if cleaned == "" {
		cleaned = "listing"
	}
	return cleaned + "_" + sanitize(platform) + ".jpg"
}

func sanitize(s string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		case r == ' ':
			b.WriteRune('-')
		}
	}
	return b.String()
}
