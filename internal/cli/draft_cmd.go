package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/recipecard/internal/cli/formatter"
	"github.com/alexanderramin/recipecard/internal/editor"
	"github.com/spf13/cobra"
)

func newDraftCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "draft",
		Aliases: []string{"drafts"},
		Short:   "Manage recipes kept in the local recipe book",
	}

	cmd.AddCommand(
		newDraftListCmd(app),
		newDraftShowCmd(app),
		newDraftSaveCmd(app),
		newDraftExportCmd(app),
		newDraftRemoveCmd(app),
	)

	return cmd
}

func newDraftListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved drafts, most recently edited first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			drafts, err := app.Drafts.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDraftList(drafts, time.Now()))
			return nil
		},
	}
}

func newDraftShowCmd(app *App) *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show a saved draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := app.Drafts.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Dim(fmt.Sprintf("Draft %s, last edited %s", d.DisplayID(), formatter.HumanTimestamp(d.UpdatedAt, time.Now()))))
			fmt.Fprintln(out)
			fmt.Fprintln(out, previewText(d.Recipe, width))
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "Wrap the ingredient table to this many columns (0 = no limit)")
	return cmd
}

func newDraftSaveCmd(app *App) *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "save ARCHIVE",
		Short: "Keep an archive in the recipe book",
		Long: `Import a recipe archive into the local recipe book. With --id the
draft is overwritten instead of creating a new one.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			r, err := app.Import.ImportArchive(ctx, args[0])
			if err != nil {
				return err
			}
			d, err := app.Drafts.Save(ctx, id, r)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved draft %s\n", d.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Draft ID (or unique prefix) to overwrite")
	return cmd
}

func newDraftExportCmd(app *App) *cobra.Command {
	formats := newFormatsFlag(formatArchive)

	cmd := &cobra.Command{
		Use:   "export ID",
		Short: "Export a saved draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := app.Drafts.Get(ctx, args[0])
			if err != nil {
				return err
			}
			form := editor.NewForm()
			form.Apply(d.Recipe)
			paths, err := exportForm(ctx, app, form, formats.list())
			printExported(cmd.OutOrStdout(), paths)
			return err
		},
	}

	cmd.Flags().VarP(formats, "format", "f", "Export formats: zip, pdf, png, html (comma separated)")
	return cmd
}

func newDraftRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a saved draft",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := app.Drafts.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted draft %s (%s)\n", d.DisplayID(), formatter.RecipeTitle(d.Recipe.Name))
			return nil
		},
	}
}
