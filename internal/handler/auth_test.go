package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/movie-rental/internal/config"
	"github.com/iliyamo/movie-rental/internal/repository"
	"github.com/iliyamo/movie-rental/internal/utils"
)

func newAuthHandler(t *testing.T) (*AuthHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	cfg := config.Config{JWTSecret: "test-secret", BcryptCost: bcrypt.MinCost}
	return NewAuthHandler(cfg, repository.NewUserRepo(db)), mock, func() { db.Close() }
}

var userRowColumns = []string{"id", "name", "email", "password_hash", "is_admin", "created_at", "updated_at"}

func TestRegisterSuccess(t *testing.T) {
	h, mock, done := newAuthHandler(t)
	defer done()

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs("Ada Lovelace", "ada@example.com", sqlmock.AnyArg(), false).
		WillReturnResult(sqlmock.NewResult(5, 1))

	c, rec := postJSON(http.MethodPost, "/users",
		`{"name":"Ada Lovelace","email":"ada@example.com","password":"hunter22"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var got authResp
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if got.User.ID != 5 {
		t.Errorf("user id = %d, want 5", got.User.ID)
	}
	ident, err := utils.ParseAuthToken("test-secret", got.Token)
	if err != nil {
		t.Fatalf("returned token does not verify: %v", err)
	}
	if ident.UserID != 5 || ident.IsAdmin {
		t.Errorf("token identity = %+v, want user 5 non-admin", ident)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	h, mock, done := newAuthHandler(t)
	defer done()

	mock.ExpectExec(`INSERT INTO users`).
		WillReturnError(errors.New("Error 1062: Duplicate entry 'ada@example.com' for key 'users.email'"))

	c, rec := postJSON(http.MethodPost, "/users",
		`{"name":"Ada Lovelace","email":"ada@example.com","password":"hunter22"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	h, _, done := newAuthHandler(t)
	defer done()

	c, rec := postJSON(http.MethodPost, "/users",
		`{"name":"Ada Lovelace","email":"not-an-email","password":"hunter22"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	h, mock, done := newAuthHandler(t)
	defer done()

	mock.ExpectQuery(`SELECT .+ FROM users WHERE email = \?`).
		WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	c, rec := postJSON(http.MethodPost, "/login",
		`{"email":"ghost@example.com","password":"hunter22"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404: %s", rec.Code, rec.Body.String())
	}
}

func TestLoginWrongPassword(t *testing.T) {
	h, mock, done := newAuthHandler(t)
	defer done()

	hash, err := utils.HashPassword("correct-horse", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	now := time.Now()
	mock.ExpectQuery(`SELECT .+ FROM users WHERE email = \?`).
		WithArgs("ada@example.com").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(5, "Ada Lovelace", "ada@example.com", hash, false, now, now))

	c, rec := postJSON(http.MethodPost, "/login",
		`{"email":"ada@example.com","password":"battery-staple"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}
}

func TestLoginSuccess(t *testing.T) {
	h, mock, done := newAuthHandler(t)
	defer done()

	hash, err := utils.HashPassword("correct-horse", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	now := time.Now()
	mock.ExpectQuery(`SELECT .+ FROM users WHERE email = \?`).
		WithArgs("ada@example.com").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(5, "Ada Lovelace", "ada@example.com", hash, true, now, now))

	c, rec := postJSON(http.MethodPost, "/login",
		`{"email":"ada@example.com","password":"correct-horse"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var got struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	ident, err := utils.ParseAuthToken("test-secret", got.Token)
	if err != nil {
		t.Fatalf("returned token does not verify: %v", err)
	}
	if ident.UserID != 5 || !ident.IsAdmin {
		t.Errorf("token identity = %+v, want user 5 admin", ident)
	}
}
