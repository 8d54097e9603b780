package cli

import (
	"github.com/alexanderramin/recipecard/internal/editor"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	formats := newFormatsFlag("pdf")

	cmd := &cobra.Command{
		Use:   "export ARCHIVE",
		Short: "Render a recipe archive as PDF, PNG, HTML or a fresh archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, err := app.Import.ImportArchive(ctx, args[0])
			if err != nil {
				return err
			}

			form := editor.NewForm()
			form.Apply(r)
			paths, err := exportForm(ctx, app, form, formats.list())
			printExported(cmd.OutOrStdout(), paths)
			return err
		},
	}

	cmd.Flags().VarP(formats, "format", "f", "Export formats: zip, pdf, png, html (comma separated)")
	return cmd
}
