package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/recipecard/internal/domain"
	"github.com/alexanderramin/recipecard/internal/testutil"
)

func TestDraftRepo_CreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteDraftRepo(db)
	ctx := context.Background()

	img := testutil.TestPNG(t, 4, 4)
	d := testutil.NewTestDraft(testutil.Pancakes(testutil.WithImage(img)))
	require.NoError(t, repo.Create(ctx, d))

	got, err := repo.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, d.ID, got.ID)
	assert.True(t, d.Recipe.Equal(got.Recipe))
	assert.Equal(t, img, got.Recipe.Image.Data)
	assert.WithinDuration(t, d.CreatedAt, got.CreatedAt, time.Microsecond)
}

func TestDraftRepo_WithoutImage(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteDraftRepo(db)
	ctx := context.Background()

	d := testutil.NewTestDraft(testutil.NewTestRecipe("Tea"))
	require.NoError(t, repo.Create(ctx, d))

	got, err := repo.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.False(t, got.Recipe.HasImage())
	assert.Empty(t, got.Recipe.Steps)
}

func TestDraftRepo_GetByID_NotFound(t *testing.T) {
	repo := NewSQLiteDraftRepo(testutil.NewTestDB(t))
	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDraftRepo_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteDraftRepo(db)
	ctx := context.Background()

	d := testutil.NewTestDraft(testutil.Pancakes(testutil.WithImage([]byte("one"))))
	require.NoError(t, repo.Create(ctx, d))

	d.Recipe.Name = "Crêpes"
	d.Recipe.Steps = []string{"Mix thin", "Fry"}
	d.Recipe.Image = domain.PlaceholderImage
	d.UpdatedAt = d.UpdatedAt.Add(time.Minute)
	require.NoError(t, repo.Update(ctx, d))

	got, err := repo.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "Crêpes", got.Recipe.Name)
	assert.Equal(t, []string{"Mix thin", "Fry"}, got.Recipe.Steps)
	assert.False(t, got.Recipe.HasImage())

	d.Recipe.Image = domain.Image{Data: []byte("two")}
	require.NoError(t, repo.Update(ctx, d))
	got, err = repo.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), got.Recipe.Image.Data)
}

func TestDraftRepo_Update_NotFound(t *testing.T) {
	repo := NewSQLiteDraftRepo(testutil.NewTestDB(t))
	err := repo.Update(context.Background(), testutil.NewTestDraft(testutil.Pancakes()))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDraftRepo_List(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteDraftRepo(db)
	ctx := context.Background()

	older := testutil.NewTestDraft(testutil.Pancakes())
	older.UpdatedAt = older.UpdatedAt.Add(-time.Hour)
	newer := testutil.NewTestDraft(testutil.NewTestRecipe("Tea", testutil.WithImage([]byte("png"))))
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.True(t, list[0].HasImage)
	assert.Equal(t, "Pancakes", list[1].Name)
	assert.Equal(t, 10, list[1].PrepTime)
	assert.False(t, list[1].HasImage)
	assert.Len(t, list[1].DisplayID(), 8)
}

func TestDraftRepo_List_Empty(t *testing.T) {
	list, err := NewSQLiteDraftRepo(testutil.NewTestDB(t)).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDraftRepo_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteDraftRepo(db)
	ctx := context.Background()

	d := testutil.NewTestDraft(testutil.Pancakes(testutil.WithImage([]byte("png"))))
	require.NoError(t, repo.Create(ctx, d))
	require.NoError(t, repo.Delete(ctx, d.ID))

	_, err := repo.GetByID(ctx, d.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var images int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM draft_images`).Scan(&images))
	assert.Equal(t, 0, images)

	assert.ErrorIs(t, repo.Delete(ctx, d.ID), ErrNotFound)
}

func TestDraftRepo_ResolveID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteDraftRepo(db)
	ctx := context.Background()

	a := testutil.NewTestDraft(testutil.Pancakes())
	a.ID = "abc12345-0000"
	b := testutil.NewTestDraft(testutil.Pancakes())
	b.ID = "abc99999-0000"
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	id, err := repo.ResolveID(ctx, "abc1")
	require.NoError(t, err)
	assert.Equal(t, a.ID, id)

	id, err = repo.ResolveID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, id)

	_, err = repo.ResolveID(ctx, "abc")
	assert.ErrorIs(t, err, ErrAmbiguousID)

	_, err = repo.ResolveID(ctx, "zzz")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.ResolveID(ctx, "%")
	assert.ErrorIs(t, err, ErrNotFound, "LIKE wildcards are matched literally")
}
