package model

import (
	"strings"
	"testing"
)

func TestGenreValidate(t *testing.T) {
	cases := []struct {
		name    string
		genre   Genre
		wantErr bool
	}{
		{"valid", Genre{Name: "Action"}, false},
		{"too short", Genre{Name: "ab"}, true},
		{"empty", Genre{}, true},
		{"at max", Genre{Name: strings.Repeat("a", 50)}, false},
		{"over max", Genre{Name: strings.Repeat("a", 51)}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.genre.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() = %v, wantErr=%v", err, tc.wantErr)
			}
		})
	}
}

func TestCustomerValidate(t *testing.T) {
	cases := []struct {
		name    string
		cust    Customer
		wantErr bool
	}{
		{"valid", Customer{Name: "Ada Lovelace", Phone: "5551234"}, false},
		{"short name", Customer{Name: "Al", Phone: "5551234"}, true},
		{"short phone", Customer{Name: "Ada Lovelace", Phone: "555"}, true},
		{"long phone", Customer{Name: "Ada Lovelace", Phone: "55512345678"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cust.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() = %v, wantErr=%v", err, tc.wantErr)
			}
		})
	}
}

func TestMovieValidate(t *testing.T) {
	genre := GenreSnapshot{ID: 1, Name: "Action"}
	cases := []struct {
		name    string
		movie   Movie
		wantErr bool
	}{
		{"valid", Movie{Title: "Terminator", Genre: genre, DailyRentalRate: 2.5, NumberInStock: 10}, false},
		{"short title", Movie{Title: "Up", Genre: genre, DailyRentalRate: 2.5, NumberInStock: 10}, true},
		{"missing genre", Movie{Title: "Terminator", DailyRentalRate: 2.5, NumberInStock: 10}, true},
		{"rate above max", Movie{Title: "Terminator", Genre: genre, DailyRentalRate: 50.5, NumberInStock: 10}, true},
		{"stock above max", Movie{Title: "Terminator", Genre: genre, DailyRentalRate: 2.5, NumberInStock: 51}, true},
		{"zero stock allowed", Movie{Title: "Terminator", Genre: genre, DailyRentalRate: 2.5, NumberInStock: 0}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.movie.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() = %v, wantErr=%v", err, tc.wantErr)
			}
		})
	}
}

func TestRegisterInputValidate(t *testing.T) {
	cases := []struct {
		name    string
		in      RegisterInput
		wantErr bool
	}{
		{"valid", RegisterInput{Name: "Ada Lovelace", Email: "ada@example.com", Password: "hunter22"}, false},
		{"bad email", RegisterInput{Name: "Ada Lovelace", Email: "not-an-email", Password: "hunter22"}, true},
		{"short password", RegisterInput{Name: "Ada Lovelace", Email: "ada@example.com", Password: "abcd"}, true},
		{"short name", RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "hunter22"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.in.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() = %v, wantErr=%v", err, tc.wantErr)
			}
		})
	}
}

func TestRentalRequestValidate(t *testing.T) {
	if err := (RentalRequest{CustomerID: 1, MovieID: 2}).Validate(); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}
	if err := (RentalRequest{MovieID: 2}).Validate(); err == nil {
		t.Error("missing customerId accepted")
	}
	if err := (RentalRequest{CustomerID: 1}).Validate(); err == nil {
		t.Error("missing movieId accepted")
	}
}
