package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/movie-rental/internal/model"
)

// CustomerRepo provides CRUD operations for the customers table.
type CustomerRepo struct {
	db *sql.DB
}

// NewCustomerRepo returns a new CustomerRepo bound to the given database.
func NewCustomerRepo(db *sql.DB) *CustomerRepo { return &CustomerRepo{db: db} }

// List returns all customers ordered by name.
func (r *CustomerRepo) List(ctx context.Context) ([]model.Customer, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, phone, is_gold FROM customers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	customers := make([]model.Customer, 0)
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.IsGold); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// GetByID fetches a single customer. Returns ErrCustomerNotFound when absent.
func (r *CustomerRepo) GetByID(ctx context.Context, id uint64) (model.Customer, error) {
	var c model.Customer
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, phone, is_gold FROM customers WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Phone, &c.IsGold)
	if err == sql.ErrNoRows {
		return model.Customer{}, ErrCustomerNotFound
	}
	return c, err
}

// Create inserts a customer and populates its generated ID.
func (r *CustomerRepo) Create(ctx context.Context, c *model.Customer) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO customers (name, phone, is_gold) VALUES (?, ?, ?)`,
		c.Name, c.Phone, c.IsGold)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// Update replaces a customer's fields. Returns ErrCustomerNotFound when the
// id is absent. Rentals keep their embedded customer snapshot.
func (r *CustomerRepo) Update(ctx context.Context, c model.Customer) error {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM customers WHERE id = ?`, c.ID).Scan(&one)
	if err == sql.ErrNoRows {
		return ErrCustomerNotFound
	}
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE customers SET name = ?, phone = ?, is_gold = ? WHERE id = ?`,
		c.Name, c.Phone, c.IsGold, c.ID)
	return err
}

// Delete removes a customer. Returns ErrCustomerNotFound when the id is absent.
func (r *CustomerRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCustomerNotFound
	}
	return nil
}
