package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/movie-rental/internal/model"
)

// GenreRepo provides CRUD operations for the genres table.
type GenreRepo struct {
	db *sql.DB
}

// NewGenreRepo returns a new GenreRepo bound to the given database.
func NewGenreRepo(db *sql.DB) *GenreRepo { return &GenreRepo{db: db} }

// List returns all genres ordered by name.
func (r *GenreRepo) List(ctx context.Context) ([]model.Genre, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM genres ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	genres := make([]model.Genre, 0)
	for rows.Next() {
		var g model.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

// ListPage returns one page of genres. Page numbering starts at 1.
func (r *GenreRepo) ListPage(ctx context.Context, page, pageSize int) ([]model.Genre, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	offset := (page - 1) * pageSize
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name FROM genres ORDER BY name LIMIT ? OFFSET ?`, pageSize, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	genres := make([]model.Genre, 0, pageSize)
	for rows.Next() {
		var g model.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

// Count returns the total number of genres.
func (r *GenreRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM genres`).Scan(&n)
	return n, err
}

// GetByID fetches a single genre. Returns ErrGenreNotFound when absent.
func (r *GenreRepo) GetByID(ctx context.Context, id uint64) (model.Genre, error) {
	var g model.Genre
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name FROM genres WHERE id = ?`, id).Scan(&g.ID, &g.Name)
	if err == sql.ErrNoRows {
		return model.Genre{}, ErrGenreNotFound
	}
	return g, err
}

// Create inserts a genre and populates its generated ID.
func (r *GenreRepo) Create(ctx context.Context, g *model.Genre) error {
	res, err := r.db.ExecContext(ctx, `INSERT INTO genres (name) VALUES (?)`, g.Name)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	g.ID = uint64(id)
	return nil
}

// Update renames a genre. Returns ErrGenreNotFound when the id is absent.
// Movies keep their embedded genre snapshot; the rename does not propagate.
// Existence is checked explicitly because MySQL reports zero affected rows
// for no-op updates.
func (r *GenreRepo) Update(ctx context.Context, g model.Genre) error {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM genres WHERE id = ?`, g.ID).Scan(&one)
	if err == sql.ErrNoRows {
		return ErrGenreNotFound
	}
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `UPDATE genres SET name = ? WHERE id = ?`, g.Name, g.ID)
	return err
}

// Delete removes a genre. Returns ErrGenreNotFound when the id is absent.
func (r *GenreRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM genres WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrGenreNotFound
	}
	return nil
}
