package render

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/alexanderramin/recipecard/internal/domain"
	"github.com/go-pdf/fpdf"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	pdfImageMaxHeightMM = 100
	pdfBlockGapMM       = 15
	pdfTitleSize        = 24
	pdfHeadingSize      = 16
	pdfBodySize         = 11
	pdfLineMM           = 6
	pdfStarMM           = 2.2

	// pdfFont names the Go fonts embedded as UTF-8 faces.
	pdfFont = "go"
)

// PDFRenderer lays the recipe out as a printable page: title, picture,
// rating line, ingredient table, numbered steps, and optional tips.
type PDFRenderer struct {
	cfg Config
}

// NewPDFRenderer validates cfg and returns a PDF renderer.
func NewPDFRenderer(cfg Config) (*PDFRenderer, error) {
	if cfg.PageSize != PageA4 && cfg.PageSize != PageLetter {
		return nil, fmt.Errorf("%w: unsupported page size %q", domain.ErrRendererUnavailable, cfg.PageSize)
	}
	if cfg.ImageQuality <= 0 || cfg.ImageQuality > 1 {
		return nil, fmt.Errorf("%w: image quality %.2f outside (0, 1]", domain.ErrRendererUnavailable, cfg.ImageQuality)
	}
	return &PDFRenderer{cfg: cfg}, nil
}

func (r *PDFRenderer) Format() Format { return FormatPDF }

func (r *PDFRenderer) Render(ctx context.Context, p Projection, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	pdf := fpdf.New("P", "mm", r.cfg.PageSize, "")
	pdf.SetMargins(r.cfg.MarginMM, r.cfg.MarginMM, r.cfg.MarginMM)
	pdf.SetAutoPageBreak(true, r.cfg.MarginMM)
	pdf.SetCompression(true)
	pdf.SetTitle(p.Title, true)
	pdf.AddUTF8FontFromBytes(pdfFont, "", goregular.TTF)
	pdf.AddUTF8FontFromBytes(pdfFont, "B", gobold.TTF)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 2*r.cfg.MarginMM

	// Title, picture, rating line.
	pdf.SetFont(pdfFont, "B", pdfTitleSize)
	pdf.MultiCell(contentW, 11, p.Title, "", "L", false)
	pdf.Ln(10)

	if len(p.Image) > 0 {
		if err := r.placeImage(pdf, p.Image, contentW); err != nil {
			return err
		}
		pdf.Ln(10)
	}

	r.metaLine(pdf, p)
	pdf.Ln(pdfBlockGapMM)

	// Ingredients.
	r.heading(pdf, HeadingIngredients)
	r.ingredientTable(pdf, p.Ingredients, contentW)
	pdf.Ln(pdfBlockGapMM)

	// Steps.
	r.heading(pdf, HeadingSteps)
	pdf.SetFont(pdfFont, "", pdfBodySize)
	for i, step := range p.Steps {
		r.listItem(pdf, strconv.Itoa(i+1)+".", step, contentW)
	}

	if p.HasTips() {
		pdf.Ln(pdfBlockGapMM)
		r.heading(pdf, HeadingTips)
		pdf.SetFont(pdfFont, "", pdfBodySize)
		for _, tip := range p.Tips {
			r.listItem(pdf, "•", tip, contentW)
		}
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("laying out pdf: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

func (r *PDFRenderer) placeImage(pdf *fpdf.Fpdf, data []byte, contentW float64) error {
	flat, err := decodeFlat(data)
	if err != nil {
		return err
	}
	jpg, err := encodeJPEG(flat, r.cfg.ImageQuality)
	if err != nil {
		return err
	}
	opts := fpdf.ImageOptions{ImageType: "JPG"}
	info := pdf.RegisterImageOptionsReader("recipe", opts, bytes.NewReader(jpg))
	if info == nil {
		return fmt.Errorf("registering image: %w", pdf.Error())
	}
	w, h := fitContain(info.Width(), info.Height(), contentW, pdfImageMaxHeightMM)
	x := r.cfg.MarginMM + (contentW-w)/2
	pdf.ImageOptions("recipe", x, pdf.GetY(), w, h, true, opts, 0, "")
	return nil
}

func (r *PDFRenderer) metaLine(pdf *fpdf.Fpdf, p Projection) {
	pdf.SetFont(pdfFont, "", pdfBodySize)
	label := "Difficulty: "
	pdf.CellFormat(pdf.GetStringWidth(label), pdfLineMM, label, "", 0, "L", false, 0, "")

	x, y := pdf.GetX(), pdf.GetY()+pdfLineMM/2
	pdf.SetLineWidth(0.2)
	pdf.SetDrawColor(120, 90, 0)
	pdf.SetFillColor(240, 180, 0)
	for _, filled := range ratingFilled(p.Rating) {
		x += pdfStarMM
		pts := make([]fpdf.PointType, 0, 10)
		for _, v := range starVertices(x, y, pdfStarMM) {
			pts = append(pts, fpdf.PointType{X: v[0], Y: v[1]})
		}
		style := "D"
		if filled {
			style = "FD"
		}
		pdf.Polygon(pts, style)
		x += pdfStarMM + 0.6
	}
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetX(x + 1)

	rest := fmt.Sprintf("| Total time: %d min (%d min prep, %d min cooking)", p.TotalTime, p.PrepTime, p.CookTime)
	pdf.CellFormat(0, pdfLineMM, rest, "", 1, "L", false, 0, "")
}

func (r *PDFRenderer) heading(pdf *fpdf.Fpdf, text string) {
	pdf.SetFont(pdfFont, "B", pdfHeadingSize)
	pdf.CellFormat(0, 8, text, "", 1, "L", false, 0, "")
	pdf.Ln(5)
}

func (r *PDFRenderer) ingredientTable(pdf *fpdf.Fpdf, t Table, contentW float64) {
	widths := make([]float64, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = contentW * float64(c.WidthPct) / 100
	}

	pdf.SetFont(pdfFont, "B", pdfBodySize)
	pdf.SetLineWidth(0.5)
	for i, c := range t.Columns {
		pdf.CellFormat(widths[i], 8, c.Label, "B", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(pdfFont, "", pdfBodySize)
	pdf.SetLineWidth(0.1)
	pdf.SetDrawColor(204, 204, 204)
	for _, row := range t.Rows {
		for i := range t.Columns {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			pdf.CellFormat(widths[i], 7, cell, "B", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.SetDrawColor(0, 0, 0)
}

func (r *PDFRenderer) listItem(pdf *fpdf.Fpdf, marker, text string, contentW float64) {
	const markerW = 8
	left := r.cfg.MarginMM
	pdf.SetX(left)
	pdf.CellFormat(markerW, pdfLineMM, marker, "", 0, "R", false, 0, "")
	pdf.SetX(left + markerW + 3)
	pdf.MultiCell(contentW-markerW-3, pdfLineMM, text, "", "L", false)
	pdf.Ln(2)
}
