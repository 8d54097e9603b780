package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/recipecard/internal/domain"
	"github.com/alexanderramin/recipecard/internal/repository"
	"github.com/alexanderramin/recipecard/internal/testutil"
)

func newDraftService(t *testing.T, observers ...UseCaseObserver) DraftService {
	t.Helper()
	database := testutil.NewTestDB(t)
	return NewDraftService(repository.NewSQLiteDraftRepo(database), testutil.NewTestUoW(database), observers...)
}

func TestDraftService_SaveCreatesThenUpdates(t *testing.T) {
	obs := &recordingObserver{}
	svc := newDraftService(t, obs)
	ctx := context.Background()

	created, err := svc.Save(ctx, "", testutil.Pancakes())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	next := testutil.Pancakes(testutil.WithImage([]byte("png")))
	next.Name = "Fluffy pancakes"
	updated, err := svc.Save(ctx, created.DisplayID(), next)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, next.Equal(got.Recipe))

	require.Len(t, obs.events, 2)
	assert.Equal(t, "save-draft", obs.events[1].Name)
	assert.Equal(t, created.ID, obs.events[1].Fields["draft_id"])
}

func TestDraftService_SaveCopiesRecipe(t *testing.T) {
	svc := newDraftService(t)
	r := testutil.Pancakes()
	d, err := svc.Save(context.Background(), "", r)
	require.NoError(t, err)

	r.Steps[0] = "changed"
	assert.Equal(t, "Mix", d.Recipe.Steps[0])
}

func TestDraftService_SaveAllowsIncompleteRecipe(t *testing.T) {
	svc := newDraftService(t)
	_, err := svc.Save(context.Background(), "", domain.Recipe{})
	assert.NoError(t, err)
}

func TestDraftService_SaveRejectsInvalid(t *testing.T) {
	svc := newDraftService(t)
	ctx := context.Background()

	_, err := svc.Save(ctx, "", testutil.Pancakes(testutil.WithDifficulty(7)))
	assert.ErrorContains(t, err, "difficulty 7")

	_, err = svc.Save(ctx, "", testutil.Pancakes(testutil.WithTimes(-1, 5)))
	assert.ErrorContains(t, err, "negative")
}

func TestDraftService_SaveUnknownID(t *testing.T) {
	svc := newDraftService(t)
	_, err := svc.Save(context.Background(), "deadbeef", testutil.Pancakes())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDraftService_SaveRollsBackImageFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteDraftRepo(database)
	boom := errors.New("disk full")
	svc := NewDraftService(repo, &testutil.FailOnNthExecUoW{DB: database, FailOn: 2, Err: boom})

	_, err := svc.Save(context.Background(), "", testutil.Pancakes(testutil.WithImage([]byte("png"))))
	require.ErrorIs(t, err, boom)

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list, "draft row must roll back with its image")
}

func TestDraftService_ListAndDelete(t *testing.T) {
	svc := newDraftService(t)
	ctx := context.Background()

	a, err := svc.Save(ctx, "", testutil.Pancakes())
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	b, err := svc.Save(ctx, "", testutil.NewTestRecipe("Tea"))
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, b.ID, list[0].ID)

	deleted, err := svc.Delete(ctx, a.ID[:6])
	require.NoError(t, err)
	assert.Equal(t, a.ID, deleted.ID)
	assert.Equal(t, "Pancakes", deleted.Recipe.Name)
	_, err = svc.Get(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Delete(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
