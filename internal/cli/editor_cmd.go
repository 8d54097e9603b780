package cli

import (
	"fmt"

	"github.com/alexanderramin/recipecard/internal/editor"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newNewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Compose a recipe card interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditor(cmd, app, editor.NewForm(), "")
		},
	}
}

func newEditCmd(app *App) *cobra.Command {
	var draftID string

	cmd := &cobra.Command{
		Use:   "edit [ARCHIVE]",
		Short: "Open an archive or a saved draft in the interactive editor",
		Args: func(cmd *cobra.Command, args []string) error {
			if draftID == "" && len(args) != 1 {
				return fmt.Errorf("edit needs an ARCHIVE or --draft ID")
			}
			if draftID != "" && len(args) != 0 {
				return fmt.Errorf("pass either an ARCHIVE or --draft, not both")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			form := editor.NewForm()

			if draftID != "" {
				d, err := app.Drafts.Get(ctx, draftID)
				if err != nil {
					return err
				}
				form.Apply(d.Recipe)
				return runEditor(cmd, app, form, d.ID)
			}

			r, err := app.Import.ImportArchive(ctx, args[0])
			if err != nil {
				return err
			}
			form.Apply(r)
			return runEditor(cmd, app, form, "")
		},
	}

	cmd.Flags().StringVar(&draftID, "draft", "", "Draft ID (or unique prefix) to continue")
	return cmd
}

// runEditor runs the interactive editor full screen until the user quits.
func runEditor(cmd *cobra.Command, app *App, form *editor.Form, draftID string) error {
	if !app.interactive() {
		return errNotInteractive
	}
	m := newEditorModel(cmd.Context(), app, form, draftID)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	_, err := p.Run()
	return err
}
