package archive

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/recipecard/internal/domain"
)

func pancakes() domain.Recipe {
	return domain.Recipe{
		Name:       "Pancakes",
		Difficulty: 2,
		PrepTime:   10,
		CookTime:   15,
		Ingredients: []domain.Ingredient{
			{Quantity: "200", Unit: domain.UnitG, Name: "Mehl"},
			{Quantity: "2", Unit: domain.UnitStueck, Name: "Eier"},
		},
		Steps: []string{"Mix", "Fry"},
		Tips:  []string{"Serve warm"},
	}
}

func withImage(r domain.Recipe) domain.Recipe {
	r.Image = domain.Image{Data: []byte("\x89PNG\r\n\x1a\nnot-really-pixels")}
	return r
}

// buildZip writes raw entries in the given order.
func buildZip(t *testing.T, entries ...[2]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e[0])
		require.NoError(t, err)
		_, err = w.Write([]byte(e[1]))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func entryNames(t *testing.T, b []byte) []string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	require.NoError(t, err)
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	return names
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		recipe domain.Recipe
	}{
		{"without image", pancakes()},
		{"with image", withImage(pancakes())},
		{"empty lists", domain.Recipe{Name: "Water", Difficulty: 0}},
		{"unicode", domain.Recipe{
			Name:        "Käsespätzle",
			Difficulty:  5,
			Ingredients: []domain.Ingredient{{Quantity: "1", Unit: domain.UnitPaeckchen, Name: "Käse"}},
			Steps:       []string{"Schaben ★"},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Encode(tt.recipe)
			require.NoError(t, err)

			got, err := Decode(b)
			require.NoError(t, err)
			assert.True(t, tt.recipe.Equal(got), "round trip changed recipe: %+v", got)
			assert.Equal(t, tt.recipe.Image.Data, got.Image.Data)
		})
	}
}

func TestEncode_EntryLayout(t *testing.T) {
	b, err := Encode(pancakes())
	require.NoError(t, err)
	assert.Equal(t, []string{RecipeEntry}, entryNames(t, b))

	b, err = Encode(withImage(pancakes()))
	require.NoError(t, err)
	assert.Equal(t, []string{RecipeEntry, ImageEntry}, entryNames(t, b))
}

func TestEncode_Deterministic(t *testing.T) {
	a, err := Encode(withImage(pancakes()))
	require.NoError(t, err)
	b, err := Encode(withImage(pancakes()))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEncode_JSONShape(t *testing.T) {
	b, err := Encode(domain.Recipe{Name: "Toast"})
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	require.NoError(t, err)
	data, err := readEntry(zr.File[0])
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, []any{}, raw["ingredients"])
	assert.Equal(t, []any{}, raw["steps"])
	assert.Equal(t, []any{}, raw["tips"])
	assert.Equal(t, false, raw["hasImage"])
	assert.Contains(t, string(data), "\n  \"name\": \"Toast\"")
}

func TestEncode_DropsBlankRows(t *testing.T) {
	r := pancakes()
	r.Ingredients = append(r.Ingredients, domain.Ingredient{Unit: domain.UnitEL})
	r.Steps = append(r.Steps, "  ")

	b, err := Encode(r)
	require.NoError(t, err)
	got, err := Decode(b)
	require.NoError(t, err)
	assert.True(t, pancakes().Equal(got))
}

func TestEncode_RejectsWhatDecodeWouldRefuse(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Recipe)
		msg    string
	}{
		{"empty unit", func(r *domain.Recipe) { r.Ingredients[0].Unit = "" }, "ingredients[0].einheit"},
		{"unknown unit", func(r *domain.Recipe) { r.Ingredients[1].Unit = "cup" }, "ingredients[1].einheit"},
		{"difficulty", func(r *domain.Recipe) { r.Difficulty = 7 }, "difficulty 7"},
		{"negative time", func(r *domain.Recipe) { r.CookTime = -1 }, "cookTime"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := pancakes()
			tt.mutate(&r)
			b, err := Encode(r)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrExportFailed)
			assert.Contains(t, err.Error(), tt.msg)
			assert.Nil(t, b)
		})
	}
}

func TestDecode_StringNumbers(t *testing.T) {
	doc := `{"name":"Pancakes","difficulty":"2","prepTime":"10","cookTime":"",
		"ingredients":[{"menge":"200","einheit":"g","zutat":"Mehl"}],
		"steps":["Mix"],"tips":[],"hasImage":false}`
	got, err := Decode(buildZip(t, [2]string{RecipeEntry, doc}))
	require.NoError(t, err)

	assert.Equal(t, 2, got.Difficulty)
	assert.Equal(t, 10, got.PrepTime)
	assert.Equal(t, 0, got.CookTime)
	assert.Len(t, got.Ingredients, 1)
}

func TestDecode_IgnoresImageWhenFlagUnset(t *testing.T) {
	doc := `{"name":"X","difficulty":1,"prepTime":1,"cookTime":1,"ingredients":[],"steps":[],"tips":[],"hasImage":false}`
	got, err := Decode(buildZip(t, [2]string{RecipeEntry, doc}, [2]string{ImageEntry, "png"}))
	require.NoError(t, err)
	assert.False(t, got.HasImage())
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		archive func(t *testing.T) []byte
		msg     string
	}{
		{"not a zip", func(*testing.T) []byte { return []byte("plain text") }, "not a zip"},
		{"missing recipe", func(t *testing.T) []byte {
			return buildZip(t, [2]string{ImageEntry, "png"})
		}, "recipe.json is missing"},
		{"bad json", func(t *testing.T) []byte {
			return buildZip(t, [2]string{RecipeEntry, "{"})
		}, "parsing recipe.json"},
		{"non numeric difficulty", func(t *testing.T) []byte {
			return buildZip(t, [2]string{RecipeEntry, `{"difficulty":"hard"}`})
		}, "not an integer"},
		{"difficulty out of range", func(t *testing.T) []byte {
			return buildZip(t, [2]string{RecipeEntry, `{"difficulty":6}`})
		}, "difficulty 6"},
		{"negative time", func(t *testing.T) []byte {
			return buildZip(t, [2]string{RecipeEntry, `{"prepTime":-1}`})
		}, "prepTime"},
		{"unknown unit", func(t *testing.T) []byte {
			return buildZip(t, [2]string{RecipeEntry, `{"ingredients":[{"menge":"1","einheit":"cup","zutat":"Milk"}]}`})
		}, "ingredients[0].einheit"},
		{"image flag without image", func(t *testing.T) []byte {
			doc := `{"name":"X","hasImage":true}`
			return buildZip(t, [2]string{RecipeEntry, doc})
		}, "image.png is missing"},
		{"empty image", func(t *testing.T) []byte {
			return buildZip(t, [2]string{RecipeEntry, `{"hasImage":true}`}, [2]string{ImageEntry, ""})
		}, "image.png is empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.archive(t))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrMalformedArchive)
			assert.Contains(t, err.Error(), tt.msg)
			assert.Equal(t, "", got.Name)
		})
	}
}

func TestDecode_CollectsAllSchemaErrors(t *testing.T) {
	doc := `{"difficulty":9,"prepTime":-5,"cookTime":-1,"ingredients":[{"einheit":"cup"}]}`
	_, err := Decode(buildZip(t, [2]string{RecipeEntry, doc}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "(4 errors)")
}

func TestLoad(t *testing.T) {
	b, err := Encode(withImage(pancakes()))
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "Pancakes.zip")
	require.NoError(t, os.WriteFile(path, b, 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.True(t, withImage(pancakes()).Equal(got))

	_, err = Load(filepath.Join(t.TempDir(), "missing.zip"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
