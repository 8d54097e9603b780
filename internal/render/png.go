package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"strconv"
	"strings"

	"github.com/alexanderramin/recipecard/internal/domain"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Snapshot geometry in unscaled pixels.
const (
	snapWidth       = 800
	snapMargin      = 40
	snapImageMaxH   = 380
	snapGap         = 14
	snapSectionGap  = 28
	snapTitleSize   = 30
	snapHeadingSize = 20
	snapBodySize    = 15
)

var (
	inkColor   = color.RGBA{0x22, 0x22, 0x22, 0xff}
	ruleColor  = color.RGBA{0xcc, 0xcc, 0xcc, 0xff}
	starFilled = color.RGBA{0xf0, 0xb4, 0x00, 0xff}
	starEmpty  = color.RGBA{0xd8, 0xd8, 0xd8, 0xff}
)

// PNGRenderer draws a snapshot of the preview card on a white background.
type PNGRenderer struct {
	cfg     Config
	title   font.Face
	heading font.Face
	body    font.Face
	bold    font.Face
}

// NewPNGRenderer loads the bundled Go fonts at the configured scale.
func NewPNGRenderer(cfg Config) (*PNGRenderer, error) {
	if cfg.Scale < 1 {
		return nil, fmt.Errorf("%w: scale %.2f below 1", domain.ErrRendererUnavailable, cfg.Scale)
	}
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing regular font: %v", domain.ErrRendererUnavailable, err)
	}
	boldFont, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing bold font: %v", domain.ErrRendererUnavailable, err)
	}

	r := &PNGRenderer{cfg: cfg}
	faces := []struct {
		dst  *font.Face
		src  *opentype.Font
		size float64
	}{
		{&r.title, boldFont, snapTitleSize},
		{&r.heading, boldFont, snapHeadingSize},
		{&r.body, regular, snapBodySize},
		{&r.bold, boldFont, snapBodySize},
	}
	for _, f := range faces {
		face, err := opentype.NewFace(f.src, &opentype.FaceOptions{
			Size:    f.size * cfg.Scale,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: creating font face: %v", domain.ErrRendererUnavailable, err)
		}
		*f.dst = face
	}
	return r, nil
}

func (r *PNGRenderer) Format() Format { return FormatPNG }

func (r *PNGRenderer) Render(ctx context.Context, p Projection, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var picture *image.RGBA
	if len(p.Image) > 0 {
		img, err := decodeFlat(p.Image)
		if err != nil {
			return err
		}
		picture = img
	}

	// First pass measures, second pass draws onto a canvas of that height.
	height := r.layout(nil, p, picture)
	canvas := image.NewRGBA(image.Rect(0, 0, r.px(snapWidth), height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	r.layout(canvas, p, picture)

	if err := png.Encode(w, canvas); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

func (r *PNGRenderer) px(v float64) int {
	return int(v * r.cfg.Scale)
}

// layout walks the card top to bottom and returns the total height. When dst
// is nil nothing is drawn.
func (r *PNGRenderer) layout(dst *image.RGBA, p Projection, picture *image.RGBA) int {
	left := r.px(snapMargin)
	contentW := r.px(snapWidth - 2*snapMargin)
	y := r.px(snapMargin)

	y = r.paragraph(dst, r.title, p.Title, left, y, contentW)
	y += r.px(snapGap)

	if picture != nil {
		b := picture.Bounds()
		w, h := fitContain(float64(b.Dx()), float64(b.Dy()), float64(contentW), float64(r.px(snapImageMaxH)))
		x := left + (contentW-int(w))/2
		if dst != nil {
			xdraw.CatmullRom.Scale(dst, image.Rect(x, y, x+int(w), y+int(h)), picture, b, draw.Over, nil)
		}
		y += int(h) + r.px(snapGap)
	}

	y = r.metaLine(dst, p, left, y)
	y += r.px(snapSectionGap)

	y = r.paragraph(dst, r.heading, HeadingIngredients, left, y, contentW)
	y += r.px(snapGap / 2)
	y = r.table(dst, p.Ingredients, left, y, contentW)
	y += r.px(snapSectionGap)

	y = r.paragraph(dst, r.heading, HeadingSteps, left, y, contentW)
	y += r.px(snapGap / 2)
	for i, step := range p.Steps {
		y = r.listItem(dst, strconv.Itoa(i+1)+".", step, left, y, contentW)
	}

	if p.HasTips() {
		y += r.px(snapSectionGap)
		y = r.paragraph(dst, r.heading, HeadingTips, left, y, contentW)
		y += r.px(snapGap / 2)
		for _, tip := range p.Tips {
			y = r.listItem(dst, "•", tip, left, y, contentW)
		}
	}

	return y + r.px(snapMargin)
}

func (r *PNGRenderer) paragraph(dst *image.RGBA, face font.Face, text string, x, y, width int) int {
	lineH := face.Metrics().Height.Ceil()
	for _, line := range wrapText(face, text, width) {
		y += lineH
		drawText(dst, face, line, x, y-face.Metrics().Descent.Ceil(), inkColor)
	}
	return y
}

func (r *PNGRenderer) metaLine(dst *image.RGBA, p Projection, x, y int) int {
	lineH := r.body.Metrics().Height.Ceil()
	baseline := y + lineH - r.body.Metrics().Descent.Ceil()

	label := "Difficulty: "
	drawText(dst, r.body, label, x, baseline, inkColor)
	x += font.MeasureString(r.body, label).Ceil()

	size := float64(r.body.Metrics().Ascent.Ceil())
	for _, filled := range ratingFilled(p.Rating) {
		c := starEmpty
		if filled {
			c = starFilled
		}
		drawStar(dst, float64(x)+size/2, float64(baseline)-size/2, size/2, c)
		x += int(size) + r.px(2)
	}

	rest := fmt.Sprintf(" | Total time: %d min (%d min prep, %d min cooking)", p.TotalTime, p.PrepTime, p.CookTime)
	drawText(dst, r.body, rest, x, baseline, inkColor)
	return y + lineH
}

func (r *PNGRenderer) table(dst *image.RGBA, t Table, x, y, width int) int {
	cols := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = width * c.WidthPct / 100
	}
	pad := r.px(4)
	lineH := r.body.Metrics().Height.Ceil()

	row := func(face font.Face, cells []string, rule color.Color) {
		height := lineH
		wrapped := make([][]string, len(cols))
		for i := range cols {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			wrapped[i] = wrapText(face, cell, cols[i]-2*pad)
			if h := len(wrapped[i]) * lineH; h > height {
				height = h
			}
		}
		cx := x
		for i, lines := range wrapped {
			ly := y + pad
			for _, line := range lines {
				ly += lineH
				drawText(dst, face, line, cx+pad, ly-face.Metrics().Descent.Ceil(), inkColor)
			}
			cx += cols[i]
		}
		y += height + 2*pad
		fillRect(dst, image.Rect(x, y, x+width, y+r.px(1)), rule)
		y += r.px(1)
	}

	labels := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		labels[i] = c.Label
	}
	row(r.bold, labels, inkColor)
	for _, cells := range t.Rows {
		row(r.body, cells, ruleColor)
	}
	return y
}

func (r *PNGRenderer) listItem(dst *image.RGBA, marker, text string, x, y, width int) int {
	indent := r.px(28)
	lineH := r.body.Metrics().Height.Ceil()
	mw := font.MeasureString(r.body, marker).Ceil()
	drawText(dst, r.body, marker, x+indent-mw-r.px(6), y+lineH-r.body.Metrics().Descent.Ceil(), inkColor)
	y = r.paragraph(dst, r.body, text, x+indent, y, width-indent)
	return y + r.px(4)
}

func drawText(dst *image.RGBA, face font.Face, s string, x, baseline int, c color.Color) {
	if dst == nil || s == "" {
		return
	}
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, baseline),
	}
	d.DrawString(s)
}

func fillRect(dst *image.RGBA, rect image.Rectangle, c color.Color) {
	if dst == nil {
		return
	}
	draw.Draw(dst, rect, image.NewUniform(c), image.Point{}, draw.Src)
}

func drawStar(dst *image.RGBA, cx, cy, outer float64, c color.Color) {
	if dst == nil {
		return
	}
	size := int(2*outer) + 2
	x0, y0 := int(cx-outer)-1, int(cy-outer)-1
	ras := vector.NewRasterizer(size, size)
	for i, v := range starVertices(cx-float64(x0), cy-float64(y0), outer) {
		if i == 0 {
			ras.MoveTo(float32(v[0]), float32(v[1]))
			continue
		}
		ras.LineTo(float32(v[0]), float32(v[1]))
	}
	ras.ClosePath()
	ras.Draw(dst, image.Rect(x0, y0, x0+size, y0+size), image.NewUniform(c), image.Point{})
}

// wrapText breaks s into lines no wider than width. Explicit newlines are kept.
func wrapText(face font.Face, s string, width int) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, word := range words[1:] {
			candidate := line + " " + word
			if font.MeasureString(face, candidate).Ceil() > width {
				lines = append(lines, line)
				line = word
				continue
			}
			line = candidate
		}
		lines = append(lines, line)
	}
	return lines
}
