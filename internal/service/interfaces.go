package service

import (
	"context"

	"github.com/alexanderramin/recipecard/internal/domain"
	"github.com/alexanderramin/recipecard/internal/render"
	"github.com/alexanderramin/recipecard/internal/repository"
)

// ExportService writes recipes to disk. Both operations return the path of
// the file they produced.
type ExportService interface {
	// ExportArchive writes "<name>.zip". The name is the only required field.
	ExportArchive(ctx context.Context, r domain.Recipe, dir string) (string, error)
	// ExportDocument validates r for printing and writes "<name>.<format>".
	// Nothing is written when validation fails.
	ExportDocument(ctx context.Context, r domain.Recipe, format render.Format, dir string) (string, error)
}

// ImportService reads archives. It never touches a form; callers apply the
// result only on success.
type ImportService interface {
	ImportArchive(ctx context.Context, path string) (domain.Recipe, error)
}

// DraftService keeps work-in-progress recipes in the local recipe book.
type DraftService interface {
	// Save creates a draft when id is empty, otherwise replaces draft id.
	Save(ctx context.Context, id string, r domain.Recipe) (*domain.Draft, error)
	// Get accepts a full id or a unique prefix.
	Get(ctx context.Context, id string) (*domain.Draft, error)
	List(ctx context.Context) ([]repository.DraftSummary, error)
	// Delete removes the draft id resolves to and returns it.
	Delete(ctx context.Context, id string) (*domain.Draft, error)
}
