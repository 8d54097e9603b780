package cli

import (
	"fmt"

	"github.com/alexanderramin/recipecard/internal/cli/formatter"
	"github.com/alexanderramin/recipecard/internal/domain"
	"github.com/alexanderramin/recipecard/internal/render"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newPreviewCmd(app *App) *cobra.Command {
	var (
		usePager bool
		width    int
	)

	cmd := &cobra.Command{
		Use:   "preview ARCHIVE",
		Short: "Show a recipe archive as it will be printed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := app.Import.ImportArchive(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			content := previewText(r, width)

			if !usePager {
				fmt.Fprintln(cmd.OutOrStdout(), content)
				return nil
			}
			if !app.interactive() {
				return errNotInteractive
			}
			p := tea.NewProgram(newPagerModel(args[0], content),
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&usePager, "pager", false, "Scroll the preview in a full-screen pager")
	cmd.Flags().IntVar(&width, "width", 0, "Wrap the ingredient table to this many columns (0 = no limit)")
	return cmd
}

// previewText is the terminal card followed by the export readiness check.
func previewText(r domain.Recipe, width int) string {
	return formatter.FormatRecipe(render.Project(r), width) + "\n\n" +
		formatter.FormatValidation(render.ValidateForExport(r))
}
