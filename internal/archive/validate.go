package archive

import (
	"fmt"

	"github.com/alexanderramin/recipecard/internal/domain"
)

// ValidateSchema checks parsed recipe data before conversion.
// Returns a slice of all validation errors found.
func ValidateSchema(s *Schema) []error {
	var errs []error

	if int(s.Difficulty) < domain.MinDifficulty || int(s.Difficulty) > domain.MaxDifficulty {
		errs = append(errs, fmt.Errorf("difficulty %d outside %d..%d", s.Difficulty, domain.MinDifficulty, domain.MaxDifficulty))
	}
	if s.PrepTime < 0 {
		errs = append(errs, fmt.Errorf("prepTime must not be negative"))
	}
	if s.CookTime < 0 {
		errs = append(errs, fmt.Errorf("cookTime must not be negative"))
	}
	for i, ing := range s.Ingredients {
		if _, err := domain.ParseUnit(ing.Einheit); err != nil {
			errs = append(errs, fmt.Errorf("ingredients[%d].einheit: %w", i, err))
		}
	}
	return errs
}
