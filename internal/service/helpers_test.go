package service

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/recipecard/internal/archive"
)

// zipWithRecipeJSON builds an archive holding only recipe.json.
func zipWithRecipeJSON(t *testing.T, s *archive.Schema) []byte {
	t.Helper()
	data, err := json.Marshal(s)
	require.NoError(t, err)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(archive.RecipeEntry)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
