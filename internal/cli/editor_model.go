package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/recipecard/internal/cli/formatter"
	"github.com/alexanderramin/recipecard/internal/domain"
	"github.com/alexanderramin/recipecard/internal/editor"
	"github.com/alexanderramin/recipecard/internal/render"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Menu actions of the interactive editor, in menu order.
const (
	actionDetails     = "details"
	actionIngredient  = "ingredient"
	actionStep        = "step"
	actionTip         = "tip"
	actionImage       = "image"
	actionRemoveImage = "remove-image"
	actionImport      = "import"
	actionExport      = "export"
	actionSaveDraft   = "save-draft"
	actionQuit        = "quit"
)

var editorActions = []huh.Option[string]{
	huh.NewOption("Edit name, difficulty and times", actionDetails),
	huh.NewOption("Add ingredient", actionIngredient),
	huh.NewOption("Add preparation step", actionStep),
	huh.NewOption("Add tip", actionTip),
	huh.NewOption("Set picture", actionImage),
	huh.NewOption("Remove picture", actionRemoveImage),
	huh.NewOption("Import archive", actionImport),
	huh.NewOption("Export", actionExport),
	huh.NewOption("Save draft", actionSaveDraft),
	huh.NewOption("Quit", actionQuit),
}

// sideBySideMinWidth is the terminal width below which the preview is
// stacked under the form.
const sideBySideMinWidth = 100

const (
	formPaneWidth    = 46
	previewTableMax  = 60
	defaultPaneWidth = 80
)

// editorModel drives an editor.Form through huh sub-forms. The preview is
// recomputed from the snapshot the form publishes on every change.
type editorModel struct {
	ctx  context.Context
	app  *App
	form *editor.Form

	snapshot domain.Recipe
	draftID  string

	active   *huh.Form
	inMenu   bool
	choice   string
	onSubmit func()

	status   string
	width    int
	quitting bool
}

func newEditorModel(ctx context.Context, app *App, form *editor.Form, draftID string) *editorModel {
	m := &editorModel{
		ctx:      ctx,
		app:      app,
		form:     form,
		snapshot: form.Collect(),
		draftID:  draftID,
	}
	form.OnChange(func(r domain.Recipe) {
		m.snapshot = r
	})
	m.openMenu()
	return m
}

func (m *editorModel) Init() tea.Cmd {
	return m.active.Init()
}

func (m *editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEsc:
			if !m.inMenu {
				m.status = formatter.Dim("Cancelled.")
				return m, m.openMenu()
			}
		}
	}

	form, cmd := m.active.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.active = f
	}

	if m.active.State == huh.StateCompleted {
		return m, tea.Batch(cmd, m.submit())
	}
	return m, cmd
}

// submit handles a completed huh form: a menu choice opens the next step,
// a completed sub-form applies its input and returns to the menu.
func (m *editorModel) submit() tea.Cmd {
	if m.inMenu {
		return m.dispatch(m.choice)
	}
	if m.onSubmit != nil {
		m.onSubmit()
	}
	return m.openMenu()
}

func (m *editorModel) dispatch(action string) tea.Cmd {
	switch action {
	case actionDetails:
		return m.openDetails()
	case actionIngredient:
		return m.openIngredient()
	case actionStep:
		return m.openTextRow("Preparation step", m.form.Steps)
	case actionTip:
		return m.openTextRow("Tip", m.form.Tips)
	case actionImage:
		return m.openImage()
	case actionRemoveImage:
		m.form.SetImage(domain.PlaceholderImage)
		m.status = formatter.Dim("Picture removed.")
	case actionImport:
		return m.openImport()
	case actionExport:
		return m.openExport()
	case actionSaveDraft:
		m.saveDraft()
	case actionQuit:
		m.quitting = true
		return tea.Quit
	}
	return m.openMenu()
}

func (m *editorModel) openMenu() tea.Cmd {
	m.choice = ""
	m.inMenu = true
	m.onSubmit = nil
	m.active = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("What next?").
				Options(editorActions...).
				Value(&m.choice),
		),
	).WithTheme(recipeHuhTheme()).WithShowHelp(false).WithWidth(formPaneWidth)
	return m.active.Init()
}

func (m *editorModel) openForm(form *huh.Form, onSubmit func()) tea.Cmd {
	m.inMenu = false
	m.onSubmit = onSubmit
	m.active = form.WithTheme(recipeHuhTheme()).WithShowHelp(false).WithWidth(formPaneWidth)
	return m.active.Init()
}

func (m *editorModel) openDetails() tea.Cmd {
	name := m.form.Name()
	difficulty := m.form.Difficulty()
	prep := m.form.PrepTimeText()
	cook := m.form.CookTimeText()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Placeholder(render.UntitledName).
				Value(&name),
			huh.NewSelect[int]().
				Title("Difficulty").
				Options(difficultyOptions()...).
				Value(&difficulty),
			huh.NewInput().
				Title("Preparation time (min)").
				Value(&prep).
				Validate(validateMinutes),
			huh.NewInput().
				Title("Cooking time (min)").
				Value(&cook).
				Validate(validateMinutes),
		),
	)
	return m.openForm(form, func() {
		m.form.SetName(strings.TrimSpace(name))
		_ = m.form.SetDifficulty(difficulty)
		m.form.SetPrepTime(strings.TrimSpace(prep))
		m.form.SetCookTime(strings.TrimSpace(cook))
		m.status = formatter.Dim("Details updated.")
	})
}

// openIngredient appends the row before asking for its values, the same way
// pressing "add" shows an empty row. A cancelled row stays blank and is never
// collected.
func (m *editorModel) openIngredient() tea.Cmd {
	item := m.form.Ingredients.Append()
	ing := item.Value()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Quantity").
				Placeholder("200").
				Value(&ing.Quantity),
			huh.NewSelect[domain.Unit]().
				Title("Unit").
				Options(unitOptions()...).
				Value(&ing.Unit),
			huh.NewInput().
				Title("Ingredient").
				Placeholder(item.Placeholder()).
				Value(&ing.Name),
		),
	)
	return m.openForm(form, func() {
		ing.Quantity = strings.TrimSpace(ing.Quantity)
		ing.Name = strings.TrimSpace(ing.Name)
		item.Set(ing)
		m.status = rowStatus(item.Placeholder(), ing.IsBlank())
	})
}

func (m *editorModel) openTextRow(title string, list *editor.List[string]) tea.Cmd {
	item := list.Append()
	var text string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Placeholder(item.Placeholder()).
				Value(&text),
		),
	)
	return m.openForm(form, func() {
		text = strings.TrimSpace(text)
		item.Set(text)
		m.status = rowStatus(item.Placeholder(), text == "")
	})
}

func (m *editorModel) openImage() tea.Cmd {
	var path string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Picture file").
				Description("PNG, JPEG, GIF, BMP or WebP").
				Value(&path),
		),
	)
	return m.openForm(form, func() {
		path = strings.TrimSpace(path)
		if path == "" {
			m.status = formatter.Dim("Picture unchanged.")
			return
		}
		img, err := loadImage(path)
		if err != nil {
			m.setError(err)
			return
		}
		m.form.SetImage(img)
		m.status = formatter.StyleGreen.Render("Picture set: " + formatter.ByteSize(len(img.Data)))
	})
}

// openImport replaces the whole form with an archive. A failed import leaves
// the form as it was.
func (m *editorModel) openImport() tea.Cmd {
	var path string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Archive to import").
				Description("Replaces everything in the form").
				Value(&path),
		),
	)
	return m.openForm(form, func() {
		path = strings.TrimSpace(path)
		if path == "" {
			m.status = formatter.Dim("Nothing imported.")
			return
		}
		r, err := m.app.Import.ImportArchive(m.ctx, path)
		if err != nil {
			m.setError(err)
			return
		}
		m.form.Apply(r)
		m.status = formatter.StyleGreen.Render("Imported " + path)
	})
}

func (m *editorModel) openExport() tea.Cmd {
	formats := []string{formatArchive}
	options := make([]huh.Option[string], 0, len(exportFormats))
	for _, f := range exportFormats {
		options = append(options, huh.NewOption(exportFormatLabel(f), f))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Export as").
				Description("x to toggle, enter to export").
				Options(options...).
				Value(&formats),
		),
	)
	return m.openForm(form, func() {
		if len(formats) == 0 {
			m.status = formatter.Dim("Nothing exported.")
			return
		}
		paths, err := exportForm(m.ctx, m.app, m.form, formats)
		if err != nil {
			m.setError(err)
			return
		}
		lines := make([]string, len(paths))
		for i, p := range paths {
			lines[i] = formatter.FormatExported(p)
		}
		m.status = strings.Join(lines, "\n")
	})
}

func (m *editorModel) saveDraft() {
	d, err := m.app.Drafts.Save(m.ctx, m.draftID, m.form.Collect())
	if err != nil {
		m.setError(err)
		return
	}
	m.draftID = d.ID
	m.status = formatter.StyleGreen.Render("Saved draft " + d.DisplayID())
}

func (m *editorModel) setError(err error) {
	m.status = formatter.StyleRed.Render("Error: " + err.Error())
}

func (m *editorModel) View() string {
	if m.quitting {
		return ""
	}

	var left strings.Builder
	left.WriteString(formatter.Bold("Recipe card editor"))
	left.WriteString("\n\n")
	left.WriteString(m.active.View())
	if m.status != "" {
		left.WriteString("\n\n")
		left.WriteString(m.status)
	}

	width := m.width
	if width == 0 {
		width = defaultPaneWidth
	}
	if width < sideBySideMinWidth {
		return left.String() + "\n\n" + m.preview(width-8)
	}

	pane := lipgloss.NewStyle().Width(formPaneWidth).Render(left.String())
	previewWidth := min(width-formPaneWidth-10, previewTableMax)
	return lipgloss.JoinHorizontal(lipgloss.Top, pane, "  ", m.preview(previewWidth))
}

func (m *editorModel) preview(tableWidth int) string {
	body := formatter.FormatRecipe(render.Project(m.snapshot), tableWidth) + "\n\n" +
		formatter.FormatValidation(m.form.Validate())
	return formatter.RenderBox("Preview", body)
}

func difficultyOptions() []huh.Option[int] {
	opts := make([]huh.Option[int], 0, domain.MaxDifficulty+1)
	for d := domain.MinDifficulty; d <= domain.MaxDifficulty; d++ {
		opts = append(opts, huh.NewOption(render.Rating(d), d))
	}
	return opts
}

func unitOptions() []huh.Option[domain.Unit] {
	units := domain.Units()
	opts := make([]huh.Option[domain.Unit], len(units))
	for i, u := range units {
		opts[i] = huh.NewOption(string(u), u)
	}
	return opts
}

func exportFormatLabel(f string) string {
	switch f {
	case formatArchive:
		return "Archive (.zip)"
	case string(render.FormatPDF):
		return "Printable document (.pdf)"
	case string(render.FormatPNG):
		return "Picture snapshot (.png)"
	case string(render.FormatHTML):
		return "Print view (.html)"
	}
	return f
}

// validateMinutes accepts an empty field or a non-negative whole number.
func validateMinutes(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return fmt.Errorf("enter whole minutes, e.g. 15")
	}
	return nil
}

func rowStatus(placeholder string, blank bool) string {
	if blank {
		return formatter.Dim(placeholder + " left empty; it will be skipped.")
	}
	return formatter.StyleGreen.Render(placeholder + " added.")
}
