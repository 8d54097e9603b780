package cli

import (
	"errors"

	"github.com/alexanderramin/recipecard/internal/service"
	"github.com/spf13/cobra"
)

// errNotInteractive is returned by commands that need a terminal on stdin.
var errNotInteractive = errors.New("this command needs an interactive terminal; use \"recipecard create\" for scripted use")

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Export service.ExportService
	Import service.ImportService
	Drafts service.DraftService

	// OutputDir is where exports land unless --out overrides it.
	OutputDir string

	// IsInteractive reports whether stdin is a terminal. Nil means yes.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive == nil || a.IsInteractive()
}

// NewRootCmd creates the top-level "recipecard" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "recipecard",
		Short: "Compose recipe cards and export them as archive, PDF, PNG or HTML",
		// main reports the error once.
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.PersistentFlags().StringVarP(&app.OutputDir, "out", "o", app.OutputDir, "Directory exports are written to")

	root.AddCommand(
		newNewCmd(app),
		newEditCmd(app),
		newCreateCmd(app),
		newExportCmd(app),
		newPreviewCmd(app),
		newValidateCmd(app),
		newDraftCmd(app),
	)

	return root
}
