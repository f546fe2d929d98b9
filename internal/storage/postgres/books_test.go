package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmockv3 "github.com/pashagolub/pgxmock/v3"

	domainErrors "github.com/polkiloo/bookshop/internal/domain/errors"
)

var bookColumns = []string{"id", "title", "author", "publisher", "isbn", "price", "discount", "quantity", "updated_at"}

const selectBook = "SELECT id, title, author, publisher, isbn, price, discount, quantity, updated_at FROM books WHERE id="

func TestBookRepositoryGetByID(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &bookRepository{storage: storage}

	now := time.Now()
	mock.ExpectQuery(selectBook).WithArgs(int64(1)).WillReturnRows(
		pgxmockv3.NewRows(bookColumns).AddRow(int64(1), "Dune", "Herbert", "Ace", "978-0441013593", int64(12000), int64(0), int64(7), now))
	book, err := repo.GetByID(context.Background(), 1)
	if err != nil || book.Title != "Dune" || book.Quantity != 7 {
		t.Fatalf("unexpected book: %+v err=%v", book, err)
	}

	mock.ExpectQuery(selectBook).WithArgs(int64(2)).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByID(context.Background(), 2); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery(selectBook).WithArgs(int64(3)).WillReturnError(errors.New("boom"))
	if _, err := repo.GetByID(context.Background(), 3); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestBookRepositorySetQuantity(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &bookRepository{storage: storage}

	if err := repo.SetQuantity(context.Background(), 1, -1); !errors.Is(err, domainErrors.ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}

	mock.ExpectExec("UPDATE books SET quantity=").WithArgs(int64(5), int64(1)).WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	if err := repo.SetQuantity(context.Background(), 1, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec("UPDATE books SET quantity=").WithArgs(int64(5), int64(1)).WillReturnResult(pgxmockv3.NewResult("UPDATE", 1))
	if err := repo.SetQuantity(context.Background(), 1, 5); err != nil {
		t.Fatalf("repeated set should succeed, got %v", err)
	}

	mock.ExpectExec("UPDATE books SET quantity=").WithArgs(int64(5), int64(9)).WillReturnResult(pgxmockv3.NewResult("UPDATE", 0))
	if err := repo.SetQuantity(context.Background(), 9, 5); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectExec("UPDATE books SET quantity=").WithArgs(int64(5), int64(1)).WillReturnError(errors.New("exec"))
	if err := repo.SetQuantity(context.Background(), 1, 5); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestBookRepositoryAddStock(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &bookRepository{storage: storage}

	if _, err := repo.AddStock(context.Background(), 1, 0); !errors.Is(err, domainErrors.ErrInvalidRequest) {
		t.Fatalf("expected invalid request, got %v", err)
	}

	mock.ExpectQuery(`UPDATE books SET quantity = quantity \+`).WithArgs(int64(10), int64(1)).WillReturnRows(
		pgxmockv3.NewRows([]string{"quantity"}).AddRow(int64(12)))
	qty, err := repo.AddStock(context.Background(), 1, 10)
	if err != nil || qty != 12 {
		t.Fatalf("unexpected result: qty=%d err=%v", qty, err)
	}

	mock.ExpectQuery(`UPDATE books SET quantity = quantity \+`).WithArgs(int64(10), int64(2)).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.AddStock(context.Background(), 2, 10); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery(`UPDATE books SET quantity = quantity \+`).WithArgs(int64(10), int64(3)).WillReturnError(errors.New("boom"))
	if _, err := repo.AddStock(context.Background(), 3, 10); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestBookRepositoryCountAndTop(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	repo := &bookRepository{storage: storage}

	mock.ExpectQuery("SELECT COUNT").WillReturnRows(pgxmockv3.NewRows([]string{"count"}).AddRow(int64(42)))
	n, err := repo.Count(context.Background())
	if err != nil || n != 42 {
		t.Fatalf("unexpected count %d err=%v", n, err)
	}

	mock.ExpectQuery("SELECT COUNT").WillReturnError(errors.New("count"))
	if _, err := repo.Count(context.Background()); err == nil {
		t.Fatal("expected error")
	}

	now := time.Now()
	mock.ExpectQuery("LEFT JOIN order_lines").WithArgs(2).WillReturnRows(
		pgxmockv3.NewRows(bookColumns).
			AddRow(int64(3), "Popular", "A", "P", "1", int64(1000), int64(0), int64(4), now).
			AddRow(int64(1), "Steady", "B", "P", "2", int64(2000), int64(0), int64(9), now))
	books, err := repo.TopByOrderVolume(context.Background(), 2)
	if err != nil || len(books) != 2 || books[0].ID != 3 {
		t.Fatalf("unexpected books: %+v err=%v", books, err)
	}

	mock.ExpectQuery("LEFT JOIN order_lines").WithArgs(2).WillReturnError(errors.New("query"))
	if _, err := repo.TopByOrderVolume(context.Background(), 2); err == nil {
		t.Fatal("expected error")
	}

	mock.ExpectQuery("LEFT JOIN order_lines").WithArgs(1).WillReturnRows(
		pgxmockv3.NewRows(bookColumns).AddRow("bad", "Popular", "A", "P", "1", int64(1000), int64(0), int64(4), now))
	if _, err := repo.TopByOrderVolume(context.Background(), 1); err == nil {
		t.Fatal("expected scan error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestBookRepositoryTopRowsError(t *testing.T) {
	storage := &Storage{pool: &rowsErrorPool{rows: &errorRows{err: errors.New("rows err")}}}
	repo := &bookRepository{storage: storage}

	if _, err := repo.TopByOrderVolume(context.Background(), 1); err == nil || err.Error() != "rows err" {
		t.Fatalf("expected rows err, got %v", err)
	}
}

func TestUserAndGradeRepositories(t *testing.T) {
	storage, mock := newMockStorage(t)
	defer mock.Close()
	users := &userRepository{storage: storage}
	grades := &gradeRepository{storage: storage}

	mock.ExpectQuery("SELECT id, email, grade_name, points FROM users WHERE id=").WithArgs(int64(1)).WillReturnRows(
		pgxmockv3.NewRows([]string{"id", "email", "grade_name", "points"}).AddRow(int64(1), "reader@example.com", "GOLD", int64(1000)))
	user, err := users.GetByID(context.Background(), 1)
	if err != nil || user.GradeName != "GOLD" || user.Points != 1000 {
		t.Fatalf("unexpected user: %+v err=%v", user, err)
	}

	mock.ExpectQuery("SELECT id, email, grade_name, points FROM users WHERE id=").WithArgs(int64(2)).WillReturnError(pgx.ErrNoRows)
	if _, err := users.GetByID(context.Background(), 2); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("SELECT id, email, grade_name, points FROM users WHERE id=").WithArgs(int64(3)).WillReturnError(errors.New("boom"))
	if _, err := users.GetByID(context.Background(), 3); err == nil {
		t.Fatal("expected error")
	}

	mock.ExpectQuery("FROM user_grades WHERE grade_name=").WithArgs("GOLD").WillReturnRows(
		pgxmockv3.NewRows([]string{"grade_name", "min_usage", "order_count", "discount", "mileage"}).
			AddRow("GOLD", int64(30000), int64(10), int64(500), int64(300)))
	grade, err := grades.GetByName(context.Background(), "GOLD")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if grade.DiscountRate != 500 || grade.MileageRate != 300 || grade.MinUsage != 30000 {
		t.Fatalf("unexpected grade: %+v", grade)
	}

	mock.ExpectQuery("FROM user_grades WHERE grade_name=").WithArgs("NONE").WillReturnError(pgx.ErrNoRows)
	if _, err := grades.GetByName(context.Background(), "NONE"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	mock.ExpectQuery("FROM user_grades WHERE grade_name=").WithArgs("ERR").WillReturnError(errors.New("boom"))
	if _, err := grades.GetByName(context.Background(), "ERR"); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
