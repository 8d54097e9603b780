package service

import (
	"context"
	"time"

	"github.com/alexanderramin/recipecard/internal/archive"
	"github.com/alexanderramin/recipecard/internal/domain"
)

type importService struct {
	observer UseCaseObserver
}

func NewImportService(observers ...UseCaseObserver) ImportService {
	return &importService{observer: combineObservers(observers)}
}

func (s *importService) ImportArchive(ctx context.Context, path string) (r domain.Recipe, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"path": path}
	defer observe(ctx, s.observer, "import-archive", startedAt, fields, &err)

	if err = ctx.Err(); err != nil {
		return domain.Recipe{}, err
	}
	r, err = archive.Load(path)
	if err != nil {
		return domain.Recipe{}, err
	}
	fields["recipe"] = r.Name
	fields["has_image"] = r.HasImage()
	return r, nil
}
