package cloudinary

import (
	"fmt"
	"strings"
)

// uploadMarker separates the host/account prefix from the asset path in a
// delivery URL. Transformation tokens are inserted right after it.
const uploadMarker = "/upload/"

const deliveryHost = "res.cloudinary.com"

// TransformOptions selects the on-the-fly transformation the CDN applies
// when serving an asset. Zero values mean "not requested"; Quality 0
// means auto.
type TransformOptions struct {
	Width   int
	Height  int
	Quality int
	Format  string // "auto" | "webp" | "jpg" | "png"
	Crop    string // "fill" | "scale" | "fit" | "thumb"
}

// Transform inserts a transformation segment into a delivery URL. URLs
// that do not belong to the media host are returned unchanged, as are
// URLs where the upload marker does not occur exactly once.
func Transform(rawURL string, opts TransformOptions) string {
	if !strings.Contains(rawURL, deliveryHost) {
		return rawURL
	}
	if strings.Count(rawURL, uploadMarker) != 1 {
		return rawURL
	}

	crop := opts.Crop
	if crop == "" {
		crop = "fill"
	}

	var tokens []string
	switch {
	case opts.Width > 0 && opts.Height > 0:
		tokens = append(tokens, fmt.Sprintf("c_%s,w_%d,h_%d", crop, opts.Width, opts.Height))
	case opts.Width > 0:
		tokens = append(tokens, fmt.Sprintf("c_%s,w_%d", crop, opts.Width))
	case opts.Height > 0:
		tokens = append(tokens, fmt.Sprintf("c_%s,h_%d", crop, opts.Height))
	}
	if opts.Quality > 0 {
		tokens = append(tokens, fmt.Sprintf("q_%d", opts.Quality))
	}
	if opts.Format != "" && opts.Format != "auto" {
		tokens = append(tokens, "f_"+opts.Format)
	}

	if len(tokens) == 0 {
		return rawURL
	}

	return strings.Replace(rawURL, uploadMarker, uploadMarker+strings.Join(tokens, "/")+"/", 1)
}

// Thumbnail is the small square used in tables and grids.
func Thumbnail(rawURL string) string {
	return Transform(rawURL, TransformOptions{Width: 150, Height: 150, Crop: "thumb", Quality: 80})
}

// Medium is the card-sized rendition for listing pages.
func Medium(rawURL string) string {
	return Transform(rawURL, TransformOptions{Width: 400, Height: 300, Crop: "fill", Quality: 85})
}

// Large is the detail-page rendition.
func Large(rawURL string) string {
	return Transform(rawURL, TransformOptions{Width: 800, Height: 600, Crop: "fill", Quality: 90})
}

// Optimized re-encodes the asset as webp at its original dimensions.
func Optimized(rawURL string) string {
	return Transform(rawURL, TransformOptions{Format: "webp", Quality: 85})
}
