package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/movie-rental/internal/model"
)

// RentalRepo provides storage for rentals and their embedded snapshots.
// Rentals are created, closed and deleted only inside transactions shared
// with MovieRepo's stock mutations: both writes commit together or neither
// does. Plain reads go through the pool directly.
type RentalRepo struct {
	db *sql.DB
}

// NewRentalRepo returns a new RentalRepo bound to the given database.
func NewRentalRepo(db *sql.DB) *RentalRepo { return &RentalRepo{db: db} }

const rentalColumns = `id, customer_id, customer_name, customer_phone,
	movie_id, movie_title, movie_daily_rental_rate, movie_number_in_stock,
	rental_fee, date_out, date_in`

func scanRental(row interface{ Scan(...interface{}) error }) (model.Rental, error) {
	var r model.Rental
	var dateIn sql.NullTime
	err := row.Scan(&r.ID,
		&r.Customer.ID, &r.Customer.Name, &r.Customer.Phone,
		&r.Movie.ID, &r.Movie.Title, &r.Movie.DailyRentalRate, &r.Movie.NumberInStock,
		&r.RentalFee, &r.DateOut, &dateIn)
	if err != nil {
		return model.Rental{}, err
	}
	if dateIn.Valid {
		t := dateIn.Time.UTC()
		r.DateIn = &t
	}
	r.DateOut = r.DateOut.UTC()
	return r, nil
}

// List returns all rentals, newest checkout first.
func (r *RentalRepo) List(ctx context.Context) ([]model.Rental, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+rentalColumns+` FROM rentals ORDER BY date_out DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	rentals := make([]model.Rental, 0)
	for rows.Next() {
		rec, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, rec)
	}
	return rentals, rows.Err()
}

// GetByID fetches a single rental. Returns ErrRentalNotFound when absent.
func (r *RentalRepo) GetByID(ctx context.Context, id uint64) (model.Rental, error) {
	rec, err := scanRental(r.db.QueryRowContext(ctx,
		`SELECT `+rentalColumns+` FROM rentals WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return model.Rental{}, ErrRentalNotFound
	}
	return rec, err
}

// CreateTx inserts a new rental within the caller's transaction and
// populates the generated ID. The snapshots and fee must already be set;
// the movie stock snapshot records the post-decrement value.
func (r *RentalRepo) CreateTx(ctx context.Context, tx *sql.Tx, rec *model.Rental) error {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO rentals (customer_id, customer_name, customer_phone,
			movie_id, movie_title, movie_daily_rental_rate, movie_number_in_stock,
			rental_fee, date_out)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Customer.ID, rec.Customer.Name, rec.Customer.Phone,
		rec.Movie.ID, rec.Movie.Title, rec.Movie.DailyRentalRate, rec.Movie.NumberInStock,
		rec.RentalFee, rec.DateOut)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rec.ID = uint64(id)
	return nil
}

// GetForUpdateTx loads a rental inside the transaction with a row lock, so
// concurrent close/delete calls on the same rental serialize. Returns
// ErrRentalNotFound when absent.
func (r *RentalRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Rental, error) {
	rec, err := scanRental(tx.QueryRowContext(ctx,
		`SELECT `+rentalColumns+` FROM rentals WHERE id = ? FOR UPDATE`, id))
	if err == sql.ErrNoRows {
		return model.Rental{}, ErrRentalNotFound
	}
	return rec, err
}

// CloseTx marks a rental as returned within the transaction: date_in is set
// and the embedded stock snapshot is bumped to mirror the live increment
// the caller performs alongside. The caller must have verified via
// GetForUpdateTx that the rental is still open.
func (r *RentalRepo) CloseTx(ctx context.Context, tx *sql.Tx, id uint64, dateIn time.Time) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE rentals SET date_in = ?, movie_number_in_stock = movie_number_in_stock + 1 WHERE id = ?`,
		dateIn, id)
	return err
}

// DeleteTx removes a rental within the transaction.
func (r *RentalRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM rentals WHERE id = ?`, id)
	return err
}
