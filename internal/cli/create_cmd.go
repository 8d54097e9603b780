package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/recipecard/internal/editor"
	"github.com/spf13/cobra"
)

func newCreateCmd(app *App) *cobra.Command {
	var (
		name        string
		difficulty  int
		prep, cook  int
		ingredients ingredientFlag
		steps, tips []string
		imagePath   string
		saveDraft   bool
	)
	formats := newFormatsFlag(formatArchive)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Build a recipe from flags and export it",
		Example: `  recipecard create --name Pancakes --difficulty 2 --prep 10 --cook 15 \
    --ingredient "200|g|Mehl" --ingredient "2|Stück|Eier" \
    --step "Mix" --step "Fry" --image pancakes.png --format zip,pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form := editor.NewForm()
			form.SetName(strings.TrimSpace(name))
			if err := form.SetDifficulty(difficulty); err != nil {
				return err
			}
			for _, t := range []struct {
				flag  string
				value int
				set   func(string)
			}{
				{"prep", prep, form.SetPrepTime},
				{"cook", cook, form.SetCookTime},
			} {
				if !cmd.Flags().Changed(t.flag) {
					continue
				}
				if t.value < 0 {
					return fmt.Errorf("--%s must not be negative, got %d", t.flag, t.value)
				}
				t.set(strconv.Itoa(t.value))
			}

			for _, ing := range ingredients.rows {
				form.Ingredients.Append().Set(ing)
			}
			for _, s := range steps {
				form.Steps.Append().Set(strings.TrimSpace(s))
			}
			for _, s := range tips {
				form.Tips.Append().Set(strings.TrimSpace(s))
			}
			if imagePath != "" {
				img, err := loadImage(imagePath)
				if err != nil {
					return err
				}
				form.SetImage(img)
			}

			ctx := cmd.Context()
			paths, err := exportForm(ctx, app, form, formats.list())
			printExported(cmd.OutOrStdout(), paths)
			if err != nil {
				return err
			}

			if saveDraft {
				d, err := app.Drafts.Save(ctx, "", form.Collect())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved draft %s\n", d.DisplayID())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Recipe name")
	cmd.Flags().IntVar(&difficulty, "difficulty", 0, "Difficulty rating 0-5")
	cmd.Flags().IntVar(&prep, "prep", 0, "Preparation time in minutes")
	cmd.Flags().IntVar(&cook, "cook", 0, "Cooking time in minutes")
	cmd.Flags().Var(&ingredients, "ingredient", `Ingredient as "quantity|unit|name" (repeatable)`)
	cmd.Flags().StringArrayVar(&steps, "step", nil, "Preparation step (repeatable)")
	cmd.Flags().StringArrayVar(&tips, "tip", nil, "Tip (repeatable)")
	cmd.Flags().StringVar(&imagePath, "image", "", "Picture file (PNG, JPEG, GIF, BMP or WebP)")
	cmd.Flags().VarP(formats, "format", "f", "Export formats: zip, pdf, png, html (comma separated)")
	cmd.Flags().BoolVar(&saveDraft, "save-draft", false, "Also keep the recipe in the local recipe book")

	return cmd
}
