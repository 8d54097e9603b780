package cli

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/alexanderramin/recipecard/internal/cli/formatter"
	"github.com/alexanderramin/recipecard/internal/editor"
	"github.com/alexanderramin/recipecard/internal/render"
)

// exportForm writes every requested format for the form's current content
// and returns the written paths in request order. When a document format is
// requested the form is checked first, so nothing is written for an
// incomplete recipe and untouched time fields count as missing.
func exportForm(ctx context.Context, app *App, form *editor.Form, formats []string) ([]string, error) {
	if slices.ContainsFunc(formats, isDocumentFormat) {
		if err := form.Validate(); err != nil {
			return nil, err
		}
	}

	r := form.Collect()
	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		var (
			path string
			err  error
		)
		if f == formatArchive {
			path, err = app.Export.ExportArchive(ctx, r, app.OutputDir)
		} else {
			path, err = app.Export.ExportDocument(ctx, r, render.Format(f), app.OutputDir)
		}
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func isDocumentFormat(f string) bool {
	return f != formatArchive
}

func printExported(w io.Writer, paths []string) {
	for _, p := range paths {
		fmt.Fprintln(w, formatter.FormatExported(p))
	}
}
