package model

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

// Genre field constraints. These constants are the single source of truth
// for genre validation: both the request path and the persistence path go
// through Validate, which is built from them.
const (
	GenreNameMin = 3
	GenreNameMax = 50
)

// Genre is a movie category. Genres are referenced by value from movies:
// a snapshot of {id, name} is copied into the movie row at create/update
// time, so renaming a genre later does not rewrite existing movies.
//
// Fields:
//  ID   – primary key identifier.
//  Name – genre name, GenreNameMin..GenreNameMax characters.
type Genre struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// Validate checks the genre against its field constraints.
func (g Genre) Validate() error {
	return validation.ValidateStruct(&g,
		validation.Field(&g.Name, validation.Required, validation.Length(GenreNameMin, GenreNameMax)),
	)
}
