package domain

import (
	"bytes"
	"slices"
	"strings"
)

// Recipe is an immutable snapshot of everything the form holds at one moment.
// Lists never contain blank entries once collected.
type Recipe struct {
	Name        string
	Difficulty  int
	PrepTime    int
	CookTime    int
	Ingredients []Ingredient
	Steps       []string
	Tips        []string
	Image       Image
}

// Ingredient is one row of the ingredient table.
type Ingredient struct {
	Quantity string
	Unit     Unit
	Name     string
}

// IsBlank reports whether the row lacks a quantity or a name. Blank rows are
// dropped at collection time.
func (i Ingredient) IsBlank() bool {
	return strings.TrimSpace(i.Quantity) == "" || strings.TrimSpace(i.Name) == ""
}

// Image holds raw raster bytes. The zero value is the placeholder.
type Image struct {
	Data []byte
}

// PlaceholderImage stands in when no picture has been supplied.
var PlaceholderImage = Image{}

// IsPlaceholder reports whether no image bytes are present.
func (img Image) IsPlaceholder() bool {
	return len(img.Data) == 0
}

// TotalTime returns prep plus cook minutes.
func (r Recipe) TotalTime() int {
	return r.PrepTime + r.CookTime
}

// HasImage reports whether a real image (not the placeholder) is attached.
func (r Recipe) HasImage() bool {
	return !r.Image.IsPlaceholder()
}

// Equal compares every field, including the image bytes.
// A nil and an empty list compare equal.
func (r Recipe) Equal(o Recipe) bool {
	if r.Name != o.Name || r.Difficulty != o.Difficulty ||
		r.PrepTime != o.PrepTime || r.CookTime != o.CookTime {
		return false
	}
	if !slices.Equal(r.Ingredients, o.Ingredients) {
		return false
	}
	if !slices.Equal(r.Steps, o.Steps) || !slices.Equal(r.Tips, o.Tips) {
		return false
	}
	return bytes.Equal(r.Image.Data, o.Image.Data)
}

// Clone returns a deep copy so callers can hand out snapshots safely.
func (r Recipe) Clone() Recipe {
	c := r
	c.Ingredients = slices.Clone(r.Ingredients)
	c.Steps = slices.Clone(r.Steps)
	c.Tips = slices.Clone(r.Tips)
	if r.Image.Data != nil {
		c.Image = Image{Data: bytes.Clone(r.Image.Data)}
	}
	return c
}

// ValidDifficulty reports whether d can be shown as a rating.
func ValidDifficulty(d int) bool {
	return d >= MinDifficulty && d <= MaxDifficulty
}
