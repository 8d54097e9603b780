package archive

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Entry names inside a recipe archive.
const (
	RecipeEntry = "recipe.json"
	ImageEntry  = "image.png"
)

// Schema is the JSON structure stored in recipe.json.
type Schema struct {
	Name        string            `json:"name"`
	Difficulty  Number            `json:"difficulty"`
	PrepTime    Number            `json:"prepTime"`
	CookTime    Number            `json:"cookTime"`
	Ingredients []IngredientEntry `json:"ingredients"`
	Steps       []string          `json:"steps"`
	Tips        []string          `json:"tips"`
	HasImage    bool              `json:"hasImage"`
}

// IngredientEntry is one ingredient row in recipe.json.
type IngredientEntry struct {
	Menge   string `json:"menge"`
	Einheit string `json:"einheit"`
	Zutat   string `json:"zutat"`
}

// Number is an integer that also accepts numeric strings on input. Some
// archives carry raw input values such as "difficulty": "3"; an empty string
// reads as zero.
type Number int

func (n Number) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, int64(n), 10), nil
}

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("not an integer: %q", s)
		}
		*n = Number(v)
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("not an integer: %s", data)
	}
	*n = Number(v)
	return nil
}

// ParseSchema decodes recipe.json content.
func ParseSchema(data []byte) (*Schema, error) {
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", RecipeEntry, err)
	}
	return &s, nil
}
