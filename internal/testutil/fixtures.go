package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/recipecard/internal/domain"
)

// RecipeOption adjusts a fixture recipe.
type RecipeOption func(*domain.Recipe)

func WithDifficulty(d int) RecipeOption {
	return func(r *domain.Recipe) {
		r.Difficulty = d
	}
}

func WithTimes(prep, cook int) RecipeOption {
	return func(r *domain.Recipe) {
		r.PrepTime = prep
		r.CookTime = cook
	}
}

func WithIngredient(qty string, unit domain.Unit, name string) RecipeOption {
	return func(r *domain.Recipe) {
		r.Ingredients = append(r.Ingredients, domain.Ingredient{Quantity: qty, Unit: unit, Name: name})
	}
}

func WithSteps(steps ...string) RecipeOption {
	return func(r *domain.Recipe) {
		r.Steps = append(r.Steps, steps...)
	}
}

func WithTips(tips ...string) RecipeOption {
	return func(r *domain.Recipe) {
		r.Tips = append(r.Tips, tips...)
	}
}

func WithImage(data []byte) RecipeOption {
	return func(r *domain.Recipe) {
		r.Image = domain.Image{Data: data}
	}
}

// NewTestRecipe returns a recipe with only a name set, then applies opts.
func NewTestRecipe(name string, opts ...RecipeOption) domain.Recipe {
	r := domain.Recipe{Name: name}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Pancakes is the reference recipe: everything filled in except the picture.
func Pancakes(opts ...RecipeOption) domain.Recipe {
	base := []RecipeOption{
		WithDifficulty(2),
		WithTimes(10, 15),
		WithIngredient("200", domain.UnitG, "Mehl"),
		WithIngredient("2", domain.UnitStueck, "Eier"),
		WithSteps("Mix", "Fry"),
		WithTips("Serve warm"),
	}
	return NewTestRecipe("Pancakes", append(base, opts...)...)
}

// NewTestDraft wraps r in a draft with a fresh id.
func NewTestDraft(r domain.Recipe) *domain.Draft {
	now := time.Now().UTC()
	return &domain.Draft{
		ID:        uuid.New().String(),
		Recipe:    r,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TestPNG encodes a w×h image with a red top-left quadrant.
func TestPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBA{R: 240, G: 240, B: 240, A: 255}
			if x < w/2 && y < h/2 {
				c = color.RGBA{R: 200, A: 255}
			}
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test png: %v", err)
	}
	return buf.Bytes()
}
