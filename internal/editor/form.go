package editor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/recipecard/internal/domain"
	"github.com/alexanderramin/recipecard/internal/render"
)

// Form is the editable surface behind the interactive editor and the flag
// driven CLI. Numeric fields are kept as typed text, like input widgets, so an
// untouched field can be told apart from an explicit zero.
type Form struct {
	name       string
	difficulty int
	prepTime   string
	cookTime   string
	image      domain.Image

	Ingredients *List[domain.Ingredient]
	Steps       *List[string]
	Tips        *List[string]

	subscribers []func(domain.Recipe)
	muted       bool
}

// NewForm returns an empty form with its three list editors wired.
func NewForm() *Form {
	f := &Form{
		Ingredients: NewList("Zutat", domain.Ingredient.IsBlank, func() domain.Ingredient {
			return domain.Ingredient{Unit: domain.DefaultUnit}
		}),
		Steps: NewList[string]("Schritt", blankText, nil),
		Tips:  NewList[string]("Tipp", blankText, nil),
	}
	f.Ingredients.onChange = f.notify
	f.Steps.onChange = f.notify
	f.Tips.onChange = f.notify
	return f
}

func blankText(s string) bool {
	return strings.TrimSpace(s) == ""
}

// OnChange registers fn to receive a fresh snapshot after every mutation.
func (f *Form) OnChange(fn func(domain.Recipe)) {
	f.subscribers = append(f.subscribers, fn)
}

func (f *Form) notify() {
	if f.muted || len(f.subscribers) == 0 {
		return
	}
	r := f.Collect()
	for _, fn := range f.subscribers {
		fn(r)
	}
}

// SetName sets the recipe name.
func (f *Form) SetName(name string) {
	f.name = name
	f.notify()
}

// SetDifficulty sets the rating. Values outside 0..5 are rejected.
func (f *Form) SetDifficulty(d int) error {
	if !domain.ValidDifficulty(d) {
		return fmt.Errorf("difficulty %d out of range %d..%d", d, domain.MinDifficulty, domain.MaxDifficulty)
	}
	f.difficulty = d
	f.notify()
	return nil
}

// SetPrepTime sets the preparation minutes as typed text.
func (f *Form) SetPrepTime(text string) {
	f.prepTime = text
	f.notify()
}

// SetCookTime sets the cooking minutes as typed text.
func (f *Form) SetCookTime(text string) {
	f.cookTime = text
	f.notify()
}

// SetImage replaces the picture; pass domain.PlaceholderImage to remove it.
func (f *Form) SetImage(img domain.Image) {
	f.image = img
	f.notify()
}

// Name returns the typed recipe name.
func (f *Form) Name() string { return f.name }

// Difficulty returns the current rating.
func (f *Form) Difficulty() int { return f.difficulty }

// PrepTimeText returns the preparation minutes as typed.
func (f *Form) PrepTimeText() string { return f.prepTime }

// CookTimeText returns the cooking minutes as typed.
func (f *Form) CookTimeText() string { return f.cookTime }

// Collect reads the form into a snapshot. Blank list rows are dropped and the
// remaining text is kept as typed; the form itself is left untouched.
func (f *Form) Collect() domain.Recipe {
	r := domain.Recipe{
		Name:        f.name,
		Difficulty:  f.difficulty,
		PrepTime:    parseMinutes(f.prepTime),
		CookTime:    parseMinutes(f.cookTime),
		Ingredients: f.Ingredients.Collect(),
		Steps:       f.Steps.Collect(),
		Tips:        f.Tips.Collect(),
	}
	if !f.image.IsPlaceholder() {
		r.Image = domain.Image{Data: append([]byte(nil), f.image.Data...)}
	}
	return r
}

// Apply replaces the whole form with r: lists are cleared (counters reset)
// and rebuilt row by row, then subscribers are notified once.
func (f *Form) Apply(r domain.Recipe) {
	f.muted = true
	defer func() {
		f.muted = false
		f.notify()
	}()

	f.name = r.Name
	f.difficulty = r.Difficulty
	f.prepTime = strconv.Itoa(r.PrepTime)
	f.cookTime = strconv.Itoa(r.CookTime)
	f.image = domain.PlaceholderImage
	if r.HasImage() {
		f.image = domain.Image{Data: append([]byte(nil), r.Image.Data...)}
	}

	f.Ingredients.Clear()
	f.Steps.Clear()
	f.Tips.Clear()

	for _, ing := range r.Ingredients {
		f.Ingredients.Append().Set(ing)
	}
	for _, s := range r.Steps {
		f.Steps.Append().Set(s)
	}
	for _, t := range r.Tips {
		f.Tips.Append().Set(t)
	}
}

// Requirements reports which required fields are filled, treating untouched
// time fields as missing even though they collect as zero.
func (f *Form) Requirements() render.Requirements {
	req := render.RequirementsOf(f.Collect())
	req.PrepTime = strings.TrimSpace(f.prepTime) != ""
	req.CookTime = strings.TrimSpace(f.cookTime) != ""
	return req
}

// Validate runs the export check over the current form.
func (f *Form) Validate() error {
	return f.Requirements().Check()
}

func parseMinutes(text string) int {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
