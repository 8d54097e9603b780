package render

import "github.com/alexanderramin/recipecard/internal/domain"

// Labels reported for missing required fields, in the order they are checked.
const (
	FieldName        = "name"
	FieldPrepTime    = "prep time"
	FieldCookTime    = "cook time"
	FieldIngredients = "at least one ingredient"
	FieldSteps       = "at least one step"
	FieldImage       = "an image"
)

// Requirements records which fields needed for a document or image export
// are present.
type Requirements struct {
	Name        bool
	PrepTime    bool
	CookTime    bool
	Ingredients bool
	Steps       bool
	Image       bool
}

// RequirementsOf derives presence from a snapshot. Snapshot times are plain
// integers, so they always count as filled; the form overrides them when the
// underlying inputs are empty.
func RequirementsOf(r domain.Recipe) Requirements {
	req := Requirements{
		Name:     r.Name != "",
		PrepTime: true,
		CookTime: true,
		Image:    r.HasImage(),
	}
	for _, ing := range r.Ingredients {
		if !ing.IsBlank() {
			req.Ingredients = true
			break
		}
	}
	for _, s := range r.Steps {
		if !blank(s) {
			req.Steps = true
			break
		}
	}
	return req
}

// Check collects every missing field into one *domain.MissingFieldsError.
// It returns nil when nothing is missing.
func (req Requirements) Check() error {
	var missing []string
	if !req.Name {
		missing = append(missing, FieldName)
	}
	if !req.PrepTime {
		missing = append(missing, FieldPrepTime)
	}
	if !req.CookTime {
		missing = append(missing, FieldCookTime)
	}
	if !req.Ingredients {
		missing = append(missing, FieldIngredients)
	}
	if !req.Steps {
		missing = append(missing, FieldSteps)
	}
	if !req.Image {
		missing = append(missing, FieldImage)
	}
	if len(missing) == 0 {
		return nil
	}
	return &domain.MissingFieldsError{Fields: missing}
}

// ValidateForExport checks a snapshot before it is handed to a document or
// image renderer.
func ValidateForExport(r domain.Recipe) error {
	return RequirementsOf(r).Check()
}
