package formatter

import (
	"fmt"
	"strconv"
	"time"

	"github.com/alexanderramin/recipecard/internal/render"
	"github.com/alexanderramin/recipecard/internal/repository"
)

// FormatDraftList renders the recipe book as a table.
func FormatDraftList(drafts []repository.DraftSummary, now time.Time) string {
	if len(drafts) == 0 {
		return Dim("No drafts saved.")
	}
	columns := []Column{
		{Header: "ID"},
		{Header: "Name", MaxWidth: 40},
		{Header: "Difficulty"},
		{Header: "Time", Right: true},
		{Header: "Image"},
		{Header: "Updated"},
	}
	rows := make([][]string, 0, len(drafts))
	for _, d := range drafts {
		image := "no"
		if d.HasImage {
			image = "yes"
		}
		rows = append(rows, []string{
			d.DisplayID(),
			RecipeTitle(d.Name),
			draftRating(d.Difficulty),
			Minutes(d.PrepTime + d.CookTime),
			image,
			HumanTimestamp(d.UpdatedAt, now),
		})
	}
	return RenderTable(columns, rows) + "\n" + Dim(fmt.Sprintf("%d draft(s)", len(drafts)))
}

// RecipeTitle returns name, or a parenthesized placeholder when it is empty.
func RecipeTitle(name string) string {
	if name == "" {
		return "(" + render.UntitledName + ")"
	}
	return name
}

// draftRating guards against rows written outside the app.
func draftRating(d int) string {
	if d < 0 || d > 5 {
		return strconv.Itoa(d)
	}
	return render.Rating(d)
}
