package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"github.com/iliyamo/movie-rental/internal/model"
	"github.com/iliyamo/movie-rental/internal/repository"
)

func newGenreHandler(t *testing.T) (*GenreHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	return NewGenreHandler(repository.NewGenreRepo(db)), mock, func() { db.Close() }
}

func TestListGenresEmpty(t *testing.T) {
	h, mock, done := newGenreHandler(t)
	defer done()

	mock.ExpectQuery(`SELECT id, name FROM genres ORDER BY name`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	c, rec := postJSON(http.MethodGet, "/genres", "")
	if err := h.List(c); err != nil {
		t.Fatalf("List: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404: %s", rec.Code, rec.Body.String())
	}
}

func TestListGenres(t *testing.T) {
	h, mock, done := newGenreHandler(t)
	defer done()

	mock.ExpectQuery(`SELECT id, name FROM genres ORDER BY name`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(1, "Action").
			AddRow(2, "Comedy"))

	c, rec := postJSON(http.MethodGet, "/genres", "")
	if err := h.List(c); err != nil {
		t.Fatalf("List: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var got []model.Genre
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Action" {
		t.Errorf("genres = %+v", got)
	}
}

func TestGetGenreInvalidID(t *testing.T) {
	h, _, done := newGenreHandler(t)
	defer done()

	c, rec := postJSON(http.MethodGet, "/genres/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")
	if err := h.Get(c); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateGenre(t *testing.T) {
	h, mock, done := newGenreHandler(t)
	defer done()

	mock.ExpectExec(`INSERT INTO genres \(name\) VALUES \(\?\)`).
		WithArgs("Action").
		WillReturnResult(sqlmock.NewResult(3, 1))

	c, rec := postJSON(http.MethodPost, "/genres", `{"name":"Action"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	var got model.Genre
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got.ID != 3 {
		t.Errorf("id = %d, want 3", got.ID)
	}
}

func TestCreateGenreRejectsShortName(t *testing.T) {
	h, _, done := newGenreHandler(t)
	defer done()

	c, rec := postJSON(http.MethodPost, "/genres", `{"name":"ab"}`)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestDeleteGenreReturnsDeleted(t *testing.T) {
	h, mock, done := newGenreHandler(t)
	defer done()

	mock.ExpectQuery(`SELECT id, name FROM genres WHERE id = \?`).
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(3, "Action"))
	mock.ExpectExec(`DELETE FROM genres WHERE id = \?`).
		WithArgs(uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, rec := postJSON(http.MethodDelete, "/genres/3", "")
	c.SetParamNames("id")
	c.SetParamValues("3")
	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var got model.Genre
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got.Name != "Action" {
		t.Errorf("deleted genre = %+v", got)
	}
}
