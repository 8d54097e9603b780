package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/recipecard/internal/cli/formatter"
	"github.com/alexanderramin/recipecard/internal/render"
	"github.com/spf13/cobra"
)

// errNotReady signals a failed check after the report has been printed.
var errNotReady = errors.New("recipe is not ready to export")

func newValidateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate ARCHIVE",
		Short: "Report which required fields an archive is missing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := app.Import.ImportArchive(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			check := render.ValidateForExport(r)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatValidation(check))
			if check != nil {
				return errNotReady
			}
			return nil
		},
	}
}
