// Package render turns recipe snapshots into presentational trees and hands
// those trees to document, image, and terminal renderers.
package render

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/recipecard/internal/domain"
)

// ratingGlyphs holds five filled stars followed by five empty ones. A window
// of five runes starting at 5-d shows d filled stars.
const ratingGlyphs = "★★★★★☆☆☆☆☆"

const (
	FilledGlyph = '★'
	EmptyGlyph  = '☆'
)

// UntitledName is shown in the preview while the name field is empty.
const UntitledName = "Recipe name"

// Section headings shared by every renderer.
const (
	HeadingIngredients = "Ingredients"
	HeadingSteps       = "Preparation"
	HeadingTips        = "Tips"
)

// Column is one fixed column of the ingredient table.
type Column struct {
	Label    string
	WidthPct int
}

// IngredientColumns are the three ingredient table columns with their
// relative widths.
var IngredientColumns = []Column{
	{Label: "Quantity", WidthPct: 15},
	{Label: "Unit", WidthPct: 20},
	{Label: "Name", WidthPct: 65},
}

// Table is a header plus data rows.
type Table struct {
	Columns []Column
	Rows    [][]string
}

// Projection is the presentational view of a recipe. Every list in it has
// already been filtered of blank entries.
type Projection struct {
	Title       string
	Named       bool
	Difficulty  int
	Rating      string
	PrepTime    int
	CookTime    int
	TotalTime   int
	Meta        string
	Ingredients Table
	Steps       []string
	Tips        []string
	Image       []byte
}

// Rating renders d as five glyphs, d filled then 5-d empty.
// d must be within 0..5; anything else is a caller error and panics.
func Rating(d int) string {
	if !domain.ValidDifficulty(d) {
		panic(fmt.Sprintf("render: difficulty %d outside %d..%d", d, domain.MinDifficulty, domain.MaxDifficulty))
	}
	glyphs := []rune(ratingGlyphs)
	start := domain.MaxDifficulty - d
	return string(glyphs[start : start+domain.MaxDifficulty])
}

// MetaLine formats the difficulty and timing summary.
func MetaLine(difficulty, prep, cook int) string {
	return fmt.Sprintf("Difficulty: %s | Total time: %d min (%d min prep, %d min cooking)",
		Rating(difficulty), prep+cook, prep, cook)
}

// Project builds the presentational tree for r.
func Project(r domain.Recipe) Projection {
	p := Projection{
		Title:      r.Name,
		Named:      r.Name != "",
		Difficulty: r.Difficulty,
		Rating:     Rating(r.Difficulty),
		PrepTime:   r.PrepTime,
		CookTime:   r.CookTime,
		TotalTime:  r.TotalTime(),
		Meta:       MetaLine(r.Difficulty, r.PrepTime, r.CookTime),
		Ingredients: Table{
			Columns: IngredientColumns,
		},
	}
	if !p.Named {
		p.Title = UntitledName
	}
	for _, ing := range r.Ingredients {
		if ing.IsBlank() {
			continue
		}
		p.Ingredients.Rows = append(p.Ingredients.Rows, []string{ing.Quantity, string(ing.Unit), ing.Name})
	}
	for _, s := range r.Steps {
		if !blank(s) {
			p.Steps = append(p.Steps, s)
		}
	}
	for _, s := range r.Tips {
		if !blank(s) {
			p.Tips = append(p.Tips, s)
		}
	}
	if r.HasImage() {
		p.Image = r.Image.Data
	}
	return p
}

// HasTips reports whether the tips section should be rendered at all.
func (p Projection) HasTips() bool {
	return len(p.Tips) > 0
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
