package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

// RentalFeeDays is the flat rental period the fee is computed over:
// rentalFee = dailyRentalRate * RentalFeeDays, fixed at checkout.
const RentalFeeDays = 10

// CustomerSnapshot is the immutable customer copy embedded in a rental at
// checkout time. Later edits to the customer master record do not change
// historical rentals.
type CustomerSnapshot struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// MovieSnapshot is the immutable movie copy embedded in a rental. The
// NumberInStock value records the live stock as of this rental: already
// decremented at checkout, incremented again when the rental is closed.
type MovieSnapshot struct {
	ID              uint64  `json:"id"`
	Title           string  `json:"title"`
	DailyRentalRate float64 `json:"dailyRentalRate"`
	NumberInStock   uint32  `json:"numberInStock"`
}

// Rental records a single checkout of one movie copy by one customer.
// It owns snapshots of both parties rather than live references. DateIn is
// nil while the rental is open and is set exactly once, on return.
//
// Fields:
//  ID        – primary key identifier.
//  Customer  – customer snapshot at checkout.
//  Movie     – movie snapshot at checkout.
//  RentalFee – fee fixed at checkout, immutable.
//  DateOut   – checkout timestamp (UTC).
//  DateIn    – return timestamp (UTC), nil while open.
type Rental struct {
	ID        uint64           `json:"id"`
	Customer  CustomerSnapshot `json:"customer"`
	Movie     MovieSnapshot    `json:"movie"`
	RentalFee float64          `json:"rentalFee"`
	DateOut   time.Time        `json:"dateOut"`
	DateIn    *time.Time       `json:"dateIn"`
}

// RentalRequest is the payload for opening a rental: the two identifiers
// the workflow needs. Both are required.
type RentalRequest struct {
	CustomerID uint64 `json:"customerId"`
	MovieID    uint64 `json:"movieId"`
}

// Validate checks that both identifiers are present.
func (r RentalRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CustomerID, validation.Required),
		validation.Field(&r.MovieID, validation.Required),
	)
}
