// Package archive reads and writes the portable recipe container: a zip file
// holding recipe.json and, when the recipe has a picture, image.png.
package archive

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alexanderramin/recipecard/internal/domain"
)

// Extension is the file extension of an exported archive.
const Extension = "zip"

// maxEntrySize bounds how much a single entry may inflate to.
const maxEntrySize = 64 << 20

// entryTime is stamped on every entry so equal recipes encode to equal bytes.
var entryTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// Encode writes r as a recipe archive. Entries are written in a fixed order
// and image.png is present exactly when r has an image. The JSON data is
// held to the same checks Decode applies, so every archive Encode returns
// reads back. Errors wrap domain.ErrExportFailed.
func Encode(r domain.Recipe) ([]byte, error) {
	schema := FromRecipe(r)
	if errs := ValidateSchema(schema); len(errs) > 0 {
		return nil, exportFailed("%v", formatValidationErrors(errs))
	}
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, exportFailed("encoding %s: %v", RecipeEntry, err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	if err := writeEntry(zw, RecipeEntry, data); err != nil {
		return nil, exportFailed("%v", err)
	}
	if r.HasImage() {
		if err := writeEntry(zw, ImageEntry, r.Image.Data); err != nil {
			return nil, exportFailed("%v", err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, exportFailed("closing archive: %v", err)
	}
	return buf.Bytes(), nil
}

func writeEntry(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: entryTime,
	})
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// Decode restores a recipe from archive bytes. Every failure wraps
// domain.ErrMalformedArchive; nothing partial is returned.
func Decode(b []byte) (domain.Recipe, error) {
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return domain.Recipe{}, malformed("not a zip archive: %v", err)
	}

	entries := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		entries[f.Name] = f
	}

	rf, ok := entries[RecipeEntry]
	if !ok {
		return domain.Recipe{}, malformed("%s is missing", RecipeEntry)
	}
	data, err := readEntry(rf)
	if err != nil {
		return domain.Recipe{}, malformed("%v", err)
	}
	schema, err := ParseSchema(data)
	if err != nil {
		return domain.Recipe{}, malformed("%v", err)
	}
	if errs := ValidateSchema(schema); len(errs) > 0 {
		return domain.Recipe{}, malformed("%v", formatValidationErrors(errs))
	}

	r := schema.ToRecipe()
	if schema.HasImage {
		imf, ok := entries[ImageEntry]
		if !ok {
			return domain.Recipe{}, malformed("hasImage is set but %s is missing", ImageEntry)
		}
		img, err := readEntry(imf)
		if err != nil {
			return domain.Recipe{}, malformed("%v", err)
		}
		if len(img) == 0 {
			return domain.Recipe{}, malformed("%s is empty", ImageEntry)
		}
		r.Image = domain.Image{Data: img}
	}
	return r, nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", f.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxEntrySize+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.Name, err)
	}
	if len(data) > maxEntrySize {
		return nil, fmt.Errorf("%s exceeds %d bytes", f.Name, maxEntrySize)
	}
	return data, nil
}

// Load reads and decodes an archive file.
func Load(path string) (domain.Recipe, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Recipe{}, err
	}
	return Decode(b)
}

// FromRecipe converts a snapshot to its JSON form. Blank rows are dropped and
// lists are never null.
func FromRecipe(r domain.Recipe) *Schema {
	s := &Schema{
		Name:        r.Name,
		Difficulty:  Number(r.Difficulty),
		PrepTime:    Number(r.PrepTime),
		CookTime:    Number(r.CookTime),
		Ingredients: make([]IngredientEntry, 0, len(r.Ingredients)),
		Steps:       make([]string, 0, len(r.Steps)),
		Tips:        make([]string, 0, len(r.Tips)),
		HasImage:    r.HasImage(),
	}
	for _, ing := range r.Ingredients {
		if ing.IsBlank() {
			continue
		}
		s.Ingredients = append(s.Ingredients, IngredientEntry{
			Menge:   ing.Quantity,
			Einheit: string(ing.Unit),
			Zutat:   ing.Name,
		})
	}
	s.Steps = appendNonBlank(s.Steps, r.Steps)
	s.Tips = appendNonBlank(s.Tips, r.Tips)
	return s
}

// ToRecipe converts validated JSON data to a snapshot without the image.
// Call ValidateSchema first; ToRecipe assumes units are valid.
func (s *Schema) ToRecipe() domain.Recipe {
	r := domain.Recipe{
		Name:       s.Name,
		Difficulty: int(s.Difficulty),
		PrepTime:   int(s.PrepTime),
		CookTime:   int(s.CookTime),
	}
	for _, e := range s.Ingredients {
		ing := domain.Ingredient{Quantity: e.Menge, Unit: domain.Unit(e.Einheit), Name: e.Zutat}
		if ing.IsBlank() {
			continue
		}
		r.Ingredients = append(r.Ingredients, ing)
	}
	r.Steps = appendNonBlank(nil, s.Steps)
	r.Tips = appendNonBlank(nil, s.Tips)
	return r
}

func appendNonBlank(dst, src []string) []string {
	for _, v := range src {
		if strings.TrimSpace(v) != "" {
			dst = append(dst, v)
		}
	}
	return dst
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrMalformedArchive, fmt.Sprintf(format, args...))
}

func exportFailed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrExportFailed, fmt.Sprintf(format, args...))
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("recipe validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return errors.New(msg)
}
