package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/recipecard/internal/archive"
	"github.com/alexanderramin/recipecard/internal/db"
	"github.com/alexanderramin/recipecard/internal/domain"
)

// SQLiteDraftRepo implements DraftRepo. The ingredient, step and tip lists are
// stored as the same JSON document an archive carries; the picture lives in
// draft_images. Create and Update write both tables, so callers run them in a
// UnitOfWork.
type SQLiteDraftRepo struct {
	db db.DBTX
}

// NewSQLiteDraftRepo creates a new SQLiteDraftRepo.
func NewSQLiteDraftRepo(conn db.DBTX) *SQLiteDraftRepo {
	return &SQLiteDraftRepo{db: conn}
}

func (r *SQLiteDraftRepo) Create(ctx context.Context, d *domain.Draft) error {
	payload, err := encodePayload(d.Recipe)
	if err != nil {
		return err
	}
	query := `INSERT INTO drafts (id, name, difficulty, prep_time, cook_time, payload, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		d.ID,
		d.Recipe.Name,
		d.Recipe.Difficulty,
		d.Recipe.PrepTime,
		d.Recipe.CookTime,
		payload,
		formatTime(d.CreatedAt),
		formatTime(d.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting draft: %w", err)
	}
	return r.writeImage(ctx, d.ID, d.Recipe.Image)
}

func (r *SQLiteDraftRepo) Update(ctx context.Context, d *domain.Draft) error {
	payload, err := encodePayload(d.Recipe)
	if err != nil {
		return err
	}
	query := `UPDATE drafts SET name = ?, difficulty = ?, prep_time = ?, cook_time = ?,
		payload = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		d.Recipe.Name,
		d.Recipe.Difficulty,
		d.Recipe.PrepTime,
		d.Recipe.CookTime,
		payload,
		formatTime(d.UpdatedAt),
		d.ID,
	)
	if err != nil {
		return fmt.Errorf("updating draft: %w", err)
	}
	if err := requireOneRow(res, "draft "+d.ID); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM draft_images WHERE draft_id = ?`, d.ID); err != nil {
		return fmt.Errorf("clearing draft image: %w", err)
	}
	return r.writeImage(ctx, d.ID, d.Recipe.Image)
}

func (r *SQLiteDraftRepo) writeImage(ctx context.Context, id string, img domain.Image) error {
	if img.IsPlaceholder() {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, `INSERT INTO draft_images (draft_id, data) VALUES (?, ?)`, id, img.Data); err != nil {
		return fmt.Errorf("inserting draft image: %w", err)
	}
	return nil
}

func (r *SQLiteDraftRepo) GetByID(ctx context.Context, id string) (*domain.Draft, error) {
	query := `SELECT d.id, d.name, d.difficulty, d.prep_time, d.cook_time, d.payload,
		d.created_at, d.updated_at, i.data
		FROM drafts d LEFT JOIN draft_images i ON i.draft_id = d.id
		WHERE d.id = ?`

	var (
		d                    domain.Draft
		payload              string
		createdAt, updatedAt string
		image                []byte
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&d.ID,
		&d.Recipe.Name,
		&d.Recipe.Difficulty,
		&d.Recipe.PrepTime,
		&d.Recipe.CookTime,
		&payload,
		&createdAt,
		&updatedAt,
		&image,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("draft %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning draft: %w", err)
	}

	if err := decodePayload(payload, &d.Recipe); err != nil {
		return nil, fmt.Errorf("draft %s: %w", id, err)
	}
	if len(image) > 0 {
		d.Recipe.Image = domain.Image{Data: image}
	}
	if d.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if d.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *SQLiteDraftRepo) ResolveID(ctx context.Context, prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", fmt.Errorf("draft id: %w", ErrNotFound)
	}
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(prefix)
	rows, err := r.db.QueryContext(ctx,
		`SELECT id FROM drafts WHERE id LIKE ? ESCAPE '\' ORDER BY id LIMIT 2`, escaped+"%")
	if err != nil {
		return "", fmt.Errorf("resolving draft id: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scanning draft id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("iterating draft ids: %w", err)
	}

	switch len(ids) {
	case 0:
		return "", fmt.Errorf("draft %s: %w", prefix, ErrNotFound)
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("draft %s: %w", prefix, ErrAmbiguousID)
	}
}

func (r *SQLiteDraftRepo) List(ctx context.Context) ([]DraftSummary, error) {
	query := `SELECT d.id, d.name, d.difficulty, d.prep_time, d.cook_time,
		CASE WHEN i.draft_id IS NULL THEN 0 ELSE 1 END, d.updated_at
		FROM drafts d LEFT JOIN draft_images i ON i.draft_id = d.id
		ORDER BY d.updated_at DESC, d.id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing drafts: %w", err)
	}
	defer rows.Close()

	var out []DraftSummary
	for rows.Next() {
		var (
			s         DraftSummary
			hasImage  int
			updatedAt string
		)
		if err := rows.Scan(&s.ID, &s.Name, &s.Difficulty, &s.PrepTime, &s.CookTime, &hasImage, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning draft row: %w", err)
		}
		s.HasImage = intToBool(hasImage)
		if s.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating drafts: %w", err)
	}
	return out, nil
}

func (r *SQLiteDraftRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM drafts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting draft: %w", err)
	}
	return requireOneRow(res, "draft "+id)
}

func encodePayload(r domain.Recipe) (string, error) {
	data, err := json.Marshal(archive.FromRecipe(r))
	if err != nil {
		return "", fmt.Errorf("encoding draft payload: %w", err)
	}
	return string(data), nil
}

// decodePayload fills the list fields of r. Scalars come from the indexed
// columns, which Update keeps in step with the payload.
func decodePayload(payload string, r *domain.Recipe) error {
	s, err := archive.ParseSchema([]byte(payload))
	if err != nil {
		return fmt.Errorf("decoding draft payload: %w", err)
	}
	lists := s.ToRecipe()
	r.Ingredients = lists.Ingredients
	r.Steps = lists.Steps
	r.Tips = lists.Tips
	return nil
}
