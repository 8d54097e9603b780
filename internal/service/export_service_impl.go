package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexanderramin/recipecard/internal/archive"
	"github.com/alexanderramin/recipecard/internal/domain"
	"github.com/alexanderramin/recipecard/internal/render"
)

type exportService struct {
	cfg         render.Config
	newRenderer func(render.Format, render.Config) (render.Renderer, error)
	observer    UseCaseObserver
}

func NewExportService(cfg render.Config, observers ...UseCaseObserver) ExportService {
	return &exportService{
		cfg:         cfg,
		newRenderer: render.NewRenderer,
		observer:    combineObservers(observers),
	}
}

func (s *exportService) ExportArchive(ctx context.Context, r domain.Recipe, dir string) (path string, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"format": archive.Extension, "recipe": r.Name}
	defer observe(ctx, s.observer, "export-archive", startedAt, fields, &err)

	if strings.TrimSpace(r.Name) == "" {
		return "", &domain.MissingFieldsError{Fields: []string{render.FieldName}}
	}
	if err = ctx.Err(); err != nil {
		return "", err
	}

	data, err := archive.Encode(r)
	if err != nil {
		return "", err
	}
	fields["bytes"] = len(data)

	path = filepath.Join(dir, archive.FileName(r.Name))
	err = withDirLock(ctx, dir, func() error {
		return writeFileAtomic(path, func(w io.Writer) error {
			_, werr := w.Write(data)
			return werr
		})
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrExportFailed, err)
	}
	fields["path"] = path
	return path, nil
}

func (s *exportService) ExportDocument(ctx context.Context, r domain.Recipe, format render.Format, dir string) (path string, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"format": string(format), "recipe": r.Name}
	defer observe(ctx, s.observer, "export-document", startedAt, fields, &err)

	if err = render.ValidateForExport(r); err != nil {
		return "", err
	}
	renderer, err := s.newRenderer(format, s.cfg)
	if err != nil {
		return "", err
	}
	if err = ctx.Err(); err != nil {
		return "", err
	}

	proj := render.Project(r)
	path = filepath.Join(dir, archive.FileNameFor(r.Name, string(renderer.Format())))
	err = withDirLock(ctx, dir, func() error {
		return writeFileAtomic(path, func(w io.Writer) error {
			return renderer.Render(ctx, proj, w)
		})
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrExportFailed, err)
	}
	fields["path"] = path
	return path, nil
}
