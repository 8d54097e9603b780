package render

import (
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"

	"github.com/alexanderramin/recipecard/internal/domain"
)

var htmlPage = template.Must(template.New("recipe").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.P.Title}}</title>
<style>
@page { size: {{.PageSize}}; margin: {{.Margin}}mm; }
body { font-family: sans-serif; color: #222; margin: 0; }
h1 { font-size: 24pt; margin: 0 0 10mm; }
h2 { font-size: 16pt; margin: 0 0 5mm; }
section { margin-bottom: 15mm; page-break-inside: avoid; }
img { width: 100%; max-height: 100mm; object-fit: contain; margin-bottom: 10mm; }
.meta { font-size: 11pt; margin-bottom: 10mm; }
.stars { color: #f0b400; letter-spacing: 1px; }
table { width: 100%; border-collapse: collapse; }
th { text-align: left; padding: 2mm; border-bottom: 0.5mm solid #000; }
td { padding: 2mm; border-bottom: 0.1mm solid #ccc; }
li { margin-bottom: 2mm; padding-left: 3mm; }
</style>
</head>
<body>
<section>
<h1>{{.P.Title}}</h1>
{{- if .Image}}
<img src="{{.Image}}" alt="">
{{- end}}
<p class="meta">Difficulty: <span class="stars">{{.P.Rating}}</span> | Total time: {{.P.TotalTime}} min ({{.P.PrepTime}} min prep, {{.P.CookTime}} min cooking)</p>
</section>
<section>
<h2>{{.Headings.Ingredients}}</h2>
<table>
<colgroup>{{range .P.Ingredients.Columns}}<col style="width:{{.WidthPct}}%">{{end}}</colgroup>
<thead><tr>{{range .P.Ingredients.Columns}}<th>{{.Label}}</th>{{end}}</tr></thead>
<tbody>
{{- range .P.Ingredients.Rows}}
<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{- end}}
</tbody>
</table>
</section>
<section>
<h2>{{.Headings.Steps}}</h2>
<ol>
{{- range .P.Steps}}
<li>{{.}}</li>
{{- end}}
</ol>
</section>
{{- if .P.HasTips}}
<section>
<h2>{{.Headings.Tips}}</h2>
<ul>
{{- range .P.Tips}}
<li>{{.}}</li>
{{- end}}
</ul>
</section>
{{- end}}
</body>
</html>
`))

// HTMLRenderer writes a self-contained print view; the picture is inlined as
// a data URI so the file can be opened and printed anywhere.
type HTMLRenderer struct {
	cfg Config
}

// NewHTMLRenderer returns an HTML renderer for cfg.
func NewHTMLRenderer(cfg Config) (*HTMLRenderer, error) {
	if cfg.PageSize != PageA4 && cfg.PageSize != PageLetter {
		return nil, fmt.Errorf("%w: unsupported page size %q", domain.ErrRendererUnavailable, cfg.PageSize)
	}
	return &HTMLRenderer{cfg: cfg}, nil
}

func (r *HTMLRenderer) Format() Format { return FormatHTML }

func (r *HTMLRenderer) Render(ctx context.Context, p Projection, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data := struct {
		P        Projection
		PageSize string
		Margin   float64
		Image    template.URL
		Headings struct{ Ingredients, Steps, Tips string }
	}{
		P:        p,
		PageSize: r.cfg.PageSize,
		Margin:   r.cfg.MarginMM,
	}
	data.Headings.Ingredients = HeadingIngredients
	data.Headings.Steps = HeadingSteps
	data.Headings.Tips = HeadingTips
	if len(p.Image) > 0 {
		data.Image = template.URL("data:" + sniffImageType(p.Image) + ";base64," + base64.StdEncoding.EncodeToString(p.Image))
	}
	if err := htmlPage.Execute(w, data); err != nil {
		return fmt.Errorf("executing html template: %w", err)
	}
	return nil
}
