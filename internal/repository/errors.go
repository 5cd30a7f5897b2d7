// Package repository defines sentinel errors reused across the stores.
// Handlers compare against these values to pick a status code instead of
// inspecting driver errors. Not-found errors are per-entity so a rental
// open can report precisely which lookup failed.
package repository

import "errors"

// ErrGenreNotFound is returned when a genre id does not exist.
var ErrGenreNotFound = errors.New("genre not found")

// ErrMovieNotFound is returned when a movie id does not exist.
var ErrMovieNotFound = errors.New("movie not found")

// ErrCustomerNotFound is returned when a customer id does not exist.
var ErrCustomerNotFound = errors.New("customer not found")

// ErrRentalNotFound is returned when a rental id does not exist.
var ErrRentalNotFound = errors.New("rental not found")

// ErrEmailExists is returned when registration hits the unique email index.
var ErrEmailExists = errors.New("email already exists")

// ErrOutOfStock is returned when a rental open finds no copies left. The
// check runs under a row lock, so at most one request can take the last
// copy.
var ErrOutOfStock = errors.New("movie out of stock")

// ErrAlreadyReturned is returned when closing a rental whose dateIn is
// already set. Re-closing is rejected so stock is never incremented twice
// for the same rental.
var ErrAlreadyReturned = errors.New("rental already returned")
