package render

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/alexanderramin/recipecard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 10), G: 120, B: uint8(y * 10), A: 0xff})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func fullRecipe(t *testing.T) domain.Recipe {
	r := pancakes()
	r.Ingredients = append(r.Ingredients, domain.Ingredient{Quantity: "2", Unit: domain.UnitStueck, Name: "Eier"})
	r.Steps = append(r.Steps, "Serve with syrup & berries, keeping the pan at medium heat the whole time so nothing burns")
	r.Tips = []string{"Let the batter rest <10 min>"}
	r.Image = domain.Image{Data: testPNG(t, 24, 16)}
	return r
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{"pdf": FormatPDF, ".PNG": FormatPNG, "html": FormatHTML, "htm": FormatHTML}
	for in, want := range cases {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("docx")
	assert.True(t, errors.Is(err, domain.ErrRendererUnavailable))
}

func TestNewRenderer_Unknown(t *testing.T) {
	_, err := NewRenderer("svg", DefaultConfig())
	assert.True(t, errors.Is(err, domain.ErrRendererUnavailable))
}

func TestNewRenderer_BadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PageSize = "A5"
	_, err := NewRenderer(FormatPDF, cfg)
	assert.True(t, errors.Is(err, domain.ErrRendererUnavailable))

	cfg = DefaultConfig()
	cfg.Scale = 0.5
	_, err = NewRenderer(FormatPNG, cfg)
	assert.True(t, errors.Is(err, domain.ErrRendererUnavailable))
}

func TestPDFRenderer_WritesDocument(t *testing.T) {
	r, err := NewRenderer(FormatPDF, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, r.Format())

	var buf bytes.Buffer
	require.NoError(t, r.Render(context.Background(), Project(fullRecipe(t)), &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestPDFRenderer_EmbedsUnicodeFonts(t *testing.T) {
	r, err := NewRenderer(FormatPDF, DefaultConfig())
	require.NoError(t, err)

	rec := fullRecipe(t)
	rec.Name = "Łódź Crème brûlée"
	rec.Steps = []string{"Żurek aufkochen", "Ő és Ű"}
	var buf bytes.Buffer
	require.NoError(t, r.Render(context.Background(), Project(rec), &buf))

	out := buf.String()
	assert.Contains(t, out, "/BaseFont /utf8go\n")
	assert.Contains(t, out, "/BaseFont /utf8goB\n")
	assert.Contains(t, out, "/Encoding /Identity-H")
	assert.NotContains(t, out, "Helvetica")
}

func TestPDFRenderer_CorruptImageFails(t *testing.T) {
	r, err := NewRenderer(FormatPDF, DefaultConfig())
	require.NoError(t, err)

	rec := fullRecipe(t)
	rec.Image = domain.Image{Data: []byte("not an image")}
	var buf bytes.Buffer
	assert.Error(t, r.Render(context.Background(), Project(rec), &buf))
}

func TestPNGRenderer_SnapshotDimensions(t *testing.T) {
	cfg := DefaultConfig()
	r, err := NewRenderer(FormatPNG, cfg)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(context.Background(), Project(fullRecipe(t)), &buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, int(snapWidth*cfg.Scale), img.Bounds().Dx())
	assert.Greater(t, img.Bounds().Dy(), int(2*snapMargin*cfg.Scale))

	// Background stays white in the top-left margin.
	c := color.RGBAModel.Convert(img.At(1, 1)).(color.RGBA)
	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, c)
}

func TestPNGRenderer_CancelledContext(t *testing.T) {
	r, err := NewRenderer(FormatPNG, DefaultConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var buf bytes.Buffer
	assert.ErrorIs(t, r.Render(ctx, Project(pancakes()), &buf), context.Canceled)
	assert.Zero(t, buf.Len())
}

func TestHTMLRenderer_PrintView(t *testing.T) {
	r, err := NewRenderer(FormatHTML, DefaultConfig())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(context.Background(), Project(fullRecipe(t)), &buf))
	out := buf.String()

	assert.Contains(t, out, "<h1>Pancakes</h1>")
	assert.Contains(t, out, `<col style="width:15%">`)
	assert.Contains(t, out, `<col style="width:20%">`)
	assert.Contains(t, out, `<col style="width:65%">`)
	assert.Contains(t, out, "<th>Quantity</th><th>Unit</th><th>Name</th>")
	assert.Contains(t, out, "<td>Stück</td>")
	assert.Contains(t, out, "★★★☆☆")
	assert.Contains(t, out, "data:image/png;base64,")
	assert.Contains(t, out, "size: A4")
	// Text is escaped, never injected.
	assert.Contains(t, out, "Let the batter rest &lt;10 min&gt;")
	assert.Equal(t, 1, strings.Count(out, "<ol>"))
}

func TestHTMLRenderer_NoTipsSection(t *testing.T) {
	r, err := NewRenderer(FormatHTML, DefaultConfig())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(context.Background(), Project(pancakes()), &buf))
	assert.NotContains(t, buf.String(), "<h2>Tips</h2>")
	assert.NotContains(t, buf.String(), "<img")
}

func TestFitContain(t *testing.T) {
	w, h := fitContain(200, 100, 100, 100)
	assert.InDelta(t, 100, w, 0.001)
	assert.InDelta(t, 50, h, 0.001)

	w, h = fitContain(100, 400, 160, 100)
	assert.InDelta(t, 25, w, 0.001)
	assert.InDelta(t, 100, h, 0.001)

	w, h = fitContain(0, 10, 100, 100)
	assert.Zero(t, w)
	assert.Zero(t, h)
}

func TestStarVertices_TopPointFirst(t *testing.T) {
	pts := starVertices(10, 10, 5)
	require.Len(t, pts, 10)
	assert.InDelta(t, 10, pts[0][0], 0.0001)
	assert.InDelta(t, 5, pts[0][1], 0.0001)
}

func TestValidateImage(t *testing.T) {
	assert.NoError(t, ValidateImage(testPNG(t, 4, 4)))
	assert.Error(t, ValidateImage(nil))
	assert.Error(t, ValidateImage([]byte("definitely not a picture")))
}
