package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/recipecard/internal/domain"
)

// ErrNotFound is returned when a draft id matches no row.
var ErrNotFound = domain.ErrNotFound

// ErrAmbiguousID is returned when a short id prefix matches several drafts.
var ErrAmbiguousID = errors.New("ambiguous draft id")

// DraftSummary is one row of the recipe book listing. It carries the indexed
// columns only; the lists and image are loaded by GetByID.
type DraftSummary struct {
	ID         string
	Name       string
	Difficulty int
	PrepTime   int
	CookTime   int
	HasImage   bool
	UpdatedAt  time.Time
}

// DisplayID returns the short form shown in listings.
func (s DraftSummary) DisplayID() string {
	return (&domain.Draft{ID: s.ID}).DisplayID()
}

type DraftRepo interface {
	Create(ctx context.Context, d *domain.Draft) error
	Update(ctx context.Context, d *domain.Draft) error
	GetByID(ctx context.Context, id string) (*domain.Draft, error)
	// ResolveID expands a unique id prefix to the full id.
	ResolveID(ctx context.Context, prefix string) (string, error)
	List(ctx context.Context) ([]DraftSummary, error)
	Delete(ctx context.Context, id string) error
}
