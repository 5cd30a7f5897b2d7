package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/movie-rental/internal/model"
)

// MovieRepo provides CRUD operations for the movies table plus the stock
// mutations used by the rental workflow. Stock changes are exposed only as
// Tx variants: the read-check-decrement sequence must run under the row
// lock taken by GetForUpdateTx inside the caller's transaction.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo returns a new MovieRepo bound to the given database.
func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{db: db} }

// DB exposes the underlying handle so handlers can begin transactions that
// span the movie and rental repositories.
func (r *MovieRepo) DB() *sql.DB { return r.db }

const movieColumns = `id, title, genre_id, genre_name, daily_rental_rate, number_in_stock, liked`

func scanMovie(row interface{ Scan(...interface{}) error }) (model.Movie, error) {
	var m model.Movie
	err := row.Scan(&m.ID, &m.Title, &m.Genre.ID, &m.Genre.Name,
		&m.DailyRentalRate, &m.NumberInStock, &m.Liked)
	return m, err
}

// MovieFilter narrows List/Count/ListPage results. Title matches as a
// case-insensitive prefix; GenreName matches the embedded snapshot exactly.
// Zero values mean "no filter".
type MovieFilter struct {
	TitlePrefix string
	GenreName   string
}

func (f MovieFilter) where() (string, []interface{}) {
	var conds []string
	var args []interface{}
	if f.TitlePrefix != "" {
		conds = append(conds, "title LIKE ?")
		args = append(args, f.TitlePrefix+"%")
	}
	if f.GenreName != "" {
		conds = append(conds, "genre_name = ?")
		args = append(args, f.GenreName)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List returns all movies ordered by title.
func (r *MovieRepo) List(ctx context.Context) ([]model.Movie, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+movieColumns+` FROM movies ORDER BY title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	movies := make([]model.Movie, 0)
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

// Count returns the number of movies matching the filter.
func (r *MovieRepo) Count(ctx context.Context, f MovieFilter) (int64, error) {
	where, args := f.where()
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM movies`+where, args...).Scan(&n)
	return n, err
}

// sortColumns whitelists the fields exposed for client-driven sorting.
var sortColumns = map[string]string{
	"title":           "title",
	"dailyRentalRate": "daily_rental_rate",
	"numberInStock":   "number_in_stock",
	"genre.name":      "genre_name",
}

// ListPage returns one page of movies matching the filter, sorted by the
// given column. Unknown sort columns fall back to title; order is "desc"
// for descending and ascending otherwise. Page numbering starts at 1.
func (r *MovieRepo) ListPage(ctx context.Context, f MovieFilter, page, pageSize int, sortBy, order string) ([]model.Movie, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	col, ok := sortColumns[sortBy]
	if !ok {
		col = "title"
	}
	dir := "ASC"
	if strings.EqualFold(order, "desc") {
		dir = "DESC"
	}
	where, args := f.where()
	args = append(args, pageSize, (page-1)*pageSize)
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+movieColumns+` FROM movies`+where+` ORDER BY `+col+` `+dir+` LIMIT ? OFFSET ?`,
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	movies := make([]model.Movie, 0, pageSize)
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

// GetByID fetches a single movie. Returns ErrMovieNotFound when absent.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (model.Movie, error) {
	m, err := scanMovie(r.db.QueryRowContext(ctx,
		`SELECT `+movieColumns+` FROM movies WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return model.Movie{}, ErrMovieNotFound
	}
	return m, err
}

// Create inserts a movie with its genre snapshot and populates the
// generated ID.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO movies (title, genre_id, genre_name, daily_rental_rate, number_in_stock, liked)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		m.Title, m.Genre.ID, m.Genre.Name, m.DailyRentalRate, m.NumberInStock, m.Liked)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

// Update replaces a movie's fields, including a freshly resolved genre
// snapshot. Returns ErrMovieNotFound when the id is absent.
func (r *MovieRepo) Update(ctx context.Context, m model.Movie) error {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM movies WHERE id = ?`, m.ID).Scan(&one)
	if err == sql.ErrNoRows {
		return ErrMovieNotFound
	}
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE movies SET title = ?, genre_id = ?, genre_name = ?, daily_rental_rate = ?, number_in_stock = ? WHERE id = ?`,
		m.Title, m.Genre.ID, m.Genre.Name, m.DailyRentalRate, m.NumberInStock, m.ID)
	return err
}

// ToggleLiked flips the liked flag and returns the updated movie.
func (r *MovieRepo) ToggleLiked(ctx context.Context, id uint64) (model.Movie, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE movies SET liked = NOT liked WHERE id = ?`, id)
	if err != nil {
		return model.Movie{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.Movie{}, err
	}
	if n == 0 {
		return model.Movie{}, ErrMovieNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete removes a movie. Returns ErrMovieNotFound when the id is absent.
func (r *MovieRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrMovieNotFound
	}
	return nil
}

// GetForUpdateTx loads a movie inside the given transaction with a row
// lock (SELECT ... FOR UPDATE). Concurrent rental opens and closes on the
// same movie serialize on this lock, so the stock check that follows
// cannot race with another decrement. Returns ErrMovieNotFound when absent.
func (r *MovieRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Movie, error) {
	m, err := scanMovie(tx.QueryRowContext(ctx,
		`SELECT `+movieColumns+` FROM movies WHERE id = ? FOR UPDATE`, id))
	if err == sql.ErrNoRows {
		return model.Movie{}, ErrMovieNotFound
	}
	return m, err
}

// DecrementStockTx takes one copy out of stock within the transaction.
// The number_in_stock > 0 guard backs up the caller's check: zero affected
// rows means the stock was already empty and the operation must abort.
func (r *MovieRepo) DecrementStockTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE movies SET number_in_stock = number_in_stock - 1 WHERE id = ? AND number_in_stock > 0`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrOutOfStock
	}
	return nil
}

// IncrementStockTx returns one copy to stock within the transaction.
func (r *MovieRepo) IncrementStockTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE movies SET number_in_stock = number_in_stock + 1 WHERE id = ?`, id)
	return err
}
