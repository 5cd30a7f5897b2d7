package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
)

func TestDecrementStockTxGuard(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	// Zero affected rows: the guarded UPDATE found no copy to take.
	mock.ExpectExec(`UPDATE movies SET number_in_stock = number_in_stock - 1 WHERE id = \? AND number_in_stock > 0`).
		WithArgs(uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	repo := NewMovieRepo(db)
	if err := repo.DecrementStockTx(context.Background(), tx, 5); err != ErrOutOfStock {
		t.Errorf("err = %v, want ErrOutOfStock", err)
	}
	_ = tx.Rollback()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDecrementStockTxSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE movies SET number_in_stock = number_in_stock - 1`).
		WithArgs(uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	repo := NewMovieRepo(db)
	if err := repo.DecrementStockTx(context.Background(), tx, 5); err != nil {
		t.Errorf("err = %v, want nil", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM movies WHERE id = \?`).
		WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := NewMovieRepo(db)
	if _, err := repo.GetByID(context.Background(), 99); err != ErrMovieNotFound {
		t.Errorf("err = %v, want ErrMovieNotFound", err)
	}
}

func TestMovieFilterWhere(t *testing.T) {
	where, args := MovieFilter{}.where()
	if where != "" || args != nil {
		t.Errorf("empty filter built %q with %v", where, args)
	}

	where, args = MovieFilter{TitlePrefix: "Ter"}.where()
	if where != " WHERE title LIKE ?" {
		t.Errorf("where = %q", where)
	}
	if len(args) != 1 || args[0] != "Ter%" {
		t.Errorf("args = %v", args)
	}

	where, args = MovieFilter{TitlePrefix: "Ter", GenreName: "Action"}.where()
	if where != " WHERE title LIKE ? AND genre_name = ?" {
		t.Errorf("where = %q", where)
	}
	if len(args) != 2 {
		t.Errorf("args = %v", args)
	}
}

func TestListPageUnknownSortFallsBackToTitle(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT .+ FROM movies ORDER BY title ASC LIMIT \? OFFSET \?`).
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "genre_id", "genre_name", "daily_rental_rate", "number_in_stock", "liked"}))

	repo := NewMovieRepo(db)
	if _, err := repo.ListPage(context.Background(), MovieFilter{}, 1, 10, "evil; DROP TABLE", "asc"); err != nil {
		t.Fatalf("ListPage: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
