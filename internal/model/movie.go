package model

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
)

// Movie field constraints. Stock and rate share the same 0..50 range; the
// stock bound also caps how far rental returns can ever increment it.
const (
	MovieTitleMin = 5
	MovieTitleMax = 50
	MovieRateMax  = 50.0
	MovieStockMax = 50
)

// GenreSnapshot is the immutable genre copy embedded in a movie. It is a
// value copied at create/update time, not a live reference: editing the
// genre master record later leaves existing movies untouched.
type GenreSnapshot struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// Movie is a rentable title with a live stock counter. NumberInStock is
// mutated exclusively by the rental workflow (decrement on open, increment
// on close/delete) and stays within 0..MovieStockMax.
//
// Fields:
//  ID              – primary key identifier.
//  Title           – movie title.
//  Genre           – embedded genre snapshot.
//  DailyRentalRate – rental price per day, 0..MovieRateMax.
//  NumberInStock   – copies available for rental, 0..MovieStockMax.
//  Liked           – UI favorite flag, toggled via PATCH.
type Movie struct {
	ID              uint64        `json:"id"`
	Title           string        `json:"title"`
	Genre           GenreSnapshot `json:"genre"`
	DailyRentalRate float64       `json:"dailyRentalRate"`
	NumberInStock   uint32        `json:"numberInStock"`
	Liked           bool          `json:"liked"`
}

// Validate checks the movie against its field constraints. The genre
// snapshot must already be resolved (non-zero ID) before persisting.
func (m Movie) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Title, validation.Required, validation.Length(MovieTitleMin, MovieTitleMax)),
		validation.Field(&m.Genre, validation.By(requireGenre)),
		validation.Field(&m.DailyRentalRate, validation.Min(0.0), validation.Max(MovieRateMax)),
		validation.Field(&m.NumberInStock, validation.Max(uint(MovieStockMax))),
	)
}

func requireGenre(v interface{}) error {
	g, _ := v.(GenreSnapshot)
	if g.ID == 0 {
		return errors.New("is required")
	}
	return nil
}
