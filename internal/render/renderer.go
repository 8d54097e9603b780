package render

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/recipecard/internal/domain"
)

// Format names an export format handled by a Renderer.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatPNG  Format = "png"
	FormatHTML Format = "html"
)

// Page sizes understood by the document renderers.
const (
	PageA4     = "A4"
	PageLetter = "Letter"
)

// Config controls page geometry and raster quality for every renderer.
type Config struct {
	PageSize     string
	MarginMM     float64
	Scale        float64
	ImageQuality float64 // 0 < q <= 1, applied to images embedded in documents
}

// DefaultConfig mirrors the printed card layout: A4 with 25 mm margins,
// double-resolution rasters, and lossless-looking JPEG embedding.
func DefaultConfig() Config {
	return Config{
		PageSize:     PageA4,
		MarginMM:     25,
		Scale:        2,
		ImageQuality: 1,
	}
}

// Renderer writes a projection in one output format.
type Renderer interface {
	Render(ctx context.Context, p Projection, w io.Writer) error
	Format() Format
}

// ParseFormat maps a user-supplied format or file extension to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.TrimPrefix(strings.ToLower(s), ".")) {
	case FormatPDF:
		return FormatPDF, nil
	case FormatPNG:
		return FormatPNG, nil
	case FormatHTML, "htm":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("%w: no renderer for format %q", domain.ErrRendererUnavailable, s)
}

// NewRenderer returns the renderer for format. Initialization failures, such
// as unusable fonts, are reported as domain.ErrRendererUnavailable.
func NewRenderer(format Format, cfg Config) (Renderer, error) {
	switch format {
	case FormatPDF:
		return NewPDFRenderer(cfg)
	case FormatPNG:
		return NewPNGRenderer(cfg)
	case FormatHTML:
		return NewHTMLRenderer(cfg)
	}
	return nil, fmt.Errorf("%w: no renderer for format %q", domain.ErrRendererUnavailable, format)
}
