package cli

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/alexanderramin/recipecard/internal/archive"
	"github.com/alexanderramin/recipecard/internal/domain"
	"github.com/alexanderramin/recipecard/internal/render"
	"github.com/spf13/pflag"
)

// formatArchive selects the portable archive next to the rendered formats.
const formatArchive = archive.Extension

// exportFormats lists every value --format accepts, in menu order.
var exportFormats = []string{formatArchive, string(render.FormatPDF), string(render.FormatPNG), string(render.FormatHTML)}

// ingredientFlag collects repeated --ingredient "quantity|unit|name" values.
type ingredientFlag struct {
	rows []domain.Ingredient
}

var _ pflag.Value = (*ingredientFlag)(nil)

func (f *ingredientFlag) String() string {
	parts := make([]string, len(f.rows))
	for i, r := range f.rows {
		parts[i] = strings.Join([]string{r.Quantity, string(r.Unit), r.Name}, "|")
	}
	return strings.Join(parts, ", ")
}

func (f *ingredientFlag) Set(s string) error {
	ing, err := parseIngredient(s)
	if err != nil {
		return err
	}
	f.rows = append(f.rows, ing)
	return nil
}

func (f *ingredientFlag) Type() string { return "ingredient" }

// parseIngredient reads "200|g|Mehl". An empty unit falls back to the default.
func parseIngredient(s string) (domain.Ingredient, error) {
	parts := strings.Split(s, "|")
	if len(parts) != 3 {
		return domain.Ingredient{}, fmt.Errorf("ingredient %q: want quantity|unit|name", s)
	}
	unit := domain.DefaultUnit
	if u := strings.TrimSpace(parts[1]); u != "" {
		parsed, err := domain.ParseUnit(u)
		if err != nil {
			return domain.Ingredient{}, fmt.Errorf("ingredient %q: %w", s, err)
		}
		unit = parsed
	}
	return domain.Ingredient{
		Quantity: strings.TrimSpace(parts[0]),
		Unit:     unit,
		Name:     strings.TrimSpace(parts[2]),
	}, nil
}

// formatsFlag is a comma separated, repeatable list of export formats.
type formatsFlag struct {
	values []string
	def    string
}

var _ pflag.Value = (*formatsFlag)(nil)

func newFormatsFlag(def string) *formatsFlag {
	return &formatsFlag{def: def}
}

func (f *formatsFlag) String() string {
	return strings.Join(f.list(), ",")
}

func (f *formatsFlag) Set(s string) error {
	for _, raw := range strings.Split(s, ",") {
		name, err := normalizeFormat(raw)
		if err != nil {
			return err
		}
		if !slices.Contains(f.values, name) {
			f.values = append(f.values, name)
		}
	}
	return nil
}

func (f *formatsFlag) Type() string { return "formats" }

// list returns the chosen formats, or the default when none were given.
func (f *formatsFlag) list() []string {
	if len(f.values) == 0 {
		return []string{f.def}
	}
	return f.values
}

func normalizeFormat(raw string) (string, error) {
	name := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(raw)), ".")
	if name == formatArchive {
		return name, nil
	}
	format, err := render.ParseFormat(name)
	if err != nil {
		return "", fmt.Errorf("unknown format %q (want one of %s)", raw, strings.Join(exportFormats, ", "))
	}
	return string(format), nil
}

// loadImage reads a picture from disk and checks that it decodes.
func loadImage(path string) (domain.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.PlaceholderImage, fmt.Errorf("reading image: %w", err)
	}
	if err := render.ValidateImage(data); err != nil {
		return domain.PlaceholderImage, fmt.Errorf("%s: %w", path, err)
	}
	return domain.Image{Data: data}, nil
}
