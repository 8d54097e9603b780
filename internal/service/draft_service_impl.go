package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/recipecard/internal/db"
	"github.com/alexanderramin/recipecard/internal/domain"
	"github.com/alexanderramin/recipecard/internal/repository"
)

type draftService struct {
	drafts   repository.DraftRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
	now      func() time.Time
}

func NewDraftService(drafts repository.DraftRepo, uow db.UnitOfWork, observers ...UseCaseObserver) DraftService {
	return &draftService{
		drafts:   drafts,
		uow:      uow,
		observer: combineObservers(observers),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *draftService) Save(ctx context.Context, id string, r domain.Recipe) (d *domain.Draft, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"recipe": r.Name}
	defer observe(ctx, s.observer, "save-draft", startedAt, fields, &err)

	if !domain.ValidDifficulty(r.Difficulty) {
		return nil, fmt.Errorf("difficulty %d out of range %d..%d", r.Difficulty, domain.MinDifficulty, domain.MaxDifficulty)
	}
	if r.PrepTime < 0 || r.CookTime < 0 {
		return nil, fmt.Errorf("times must not be negative")
	}

	now := s.now()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteDraftRepo(tx)
		if id == "" {
			d = &domain.Draft{ID: uuid.New().String(), Recipe: r.Clone(), CreatedAt: now, UpdatedAt: now}
			if err := repo.Create(ctx, d); err != nil {
				return fmt.Errorf("creating draft: %w", err)
			}
			return nil
		}

		fullID, err := repo.ResolveID(ctx, id)
		if err != nil {
			return err
		}
		existing, err := repo.GetByID(ctx, fullID)
		if err != nil {
			return err
		}
		existing.Recipe = r.Clone()
		existing.UpdatedAt = now
		if err := repo.Update(ctx, existing); err != nil {
			return fmt.Errorf("updating draft: %w", err)
		}
		d = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["draft_id"] = d.ID
	return d, nil
}

func (s *draftService) Get(ctx context.Context, id string) (*domain.Draft, error) {
	fullID, err := s.drafts.ResolveID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.drafts.GetByID(ctx, fullID)
}

func (s *draftService) List(ctx context.Context) ([]repository.DraftSummary, error) {
	return s.drafts.List(ctx)
}

func (s *draftService) Delete(ctx context.Context, id string) (d *domain.Draft, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"draft_id": id}
	defer observe(ctx, s.observer, "delete-draft", startedAt, fields, &err)

	fullID, err := s.drafts.ResolveID(ctx, id)
	if err != nil {
		return nil, err
	}
	d, err = s.drafts.GetByID(ctx, fullID)
	if err != nil {
		return nil, err
	}
	if err = s.drafts.Delete(ctx, fullID); err != nil {
		return nil, err
	}
	fields["draft_id"] = fullID
	return d, nil
}
