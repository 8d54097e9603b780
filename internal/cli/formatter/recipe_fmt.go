package formatter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/recipecard/internal/domain"
	"github.com/alexanderramin/recipecard/internal/render"
)

// minColumnWidth keeps narrow panes from squeezing a column to nothing.
const minColumnWidth = 4

// FormatRecipe renders a projection for the terminal. width bounds the
// ingredient table; 0 leaves it unbounded.
func FormatRecipe(p render.Projection, width int) string {
	var b strings.Builder

	title := Header(p.Title)
	if !p.Named {
		title = Dim(p.Title)
	}
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(strings.Replace(p.Meta, p.Rating, StyleRating.Render(p.Rating), 1))
	b.WriteString("\n")
	if len(p.Image) > 0 {
		b.WriteString("Image: " + ByteSize(len(p.Image)))
	} else {
		b.WriteString(Dim("Image: none"))
	}

	b.WriteString("\n\n")
	b.WriteString(Header(render.HeadingIngredients))
	b.WriteString("\n")
	if len(p.Ingredients.Rows) == 0 {
		b.WriteString(Dim("  (none yet)"))
	} else {
		b.WriteString(RenderTable(ingredientColumns(p.Ingredients.Columns, width), p.Ingredients.Rows))
	}

	b.WriteString("\n\n")
	b.WriteString(Header(render.HeadingSteps))
	b.WriteString("\n")
	if len(p.Steps) == 0 {
		b.WriteString(Dim("  (none yet)"))
	}
	for i, s := range p.Steps {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "  %d. %s", i+1, s)
	}

	if p.HasTips() {
		b.WriteString("\n\n")
		b.WriteString(Header(render.HeadingTips))
		for _, tip := range p.Tips {
			b.WriteString("\n  • " + tip)
		}
	}
	return b.String()
}

// ingredientColumns sizes the table columns by the printed layout's
// percentages of width, leaving room for borders and padding.
func ingredientColumns(cols []render.Column, width int) []Column {
	out := make([]Column, len(cols))
	inner := width - (3*len(cols) + 1)
	for i, c := range cols {
		out[i] = Column{Header: c.Label}
		if width > 0 {
			out[i].MaxWidth = max(minColumnWidth, inner*c.WidthPct/100)
		}
	}
	return out
}

// FormatValidation reports the outcome of an export check.
func FormatValidation(err error) string {
	if err == nil {
		return Passed("Ready to export")
	}
	var missing *domain.MissingFieldsError
	if !errors.As(err, &missing) {
		return Failed(err.Error())
	}
	var b strings.Builder
	b.WriteString(Failed("Missing required fields:"))
	for _, f := range missing.Fields {
		b.WriteString("\n  - " + f)
	}
	return b.String()
}

// FormatExported confirms a written file.
func FormatExported(path string) string {
	return StyleGreen.Render("Exported ") + path
}
