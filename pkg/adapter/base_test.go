package adapter

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockAdapter(t *testing.T) (*BaseSQLAdapter, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &BaseSQLAdapter{DB: db}, mock
}

func TestBaseSQLAdapter_Exec(t *testing.T) {
	base, mock := newMockAdapter(t)
	mock.ExpectExec("CREATE TABLE foo").WillReturnResult(sqlmock.NewResult(0, 0))

	if err := base.Exec(context.Background(), "CREATE TABLE foo (id INTEGER)"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestBaseSQLAdapter_ExecError(t *testing.T) {
	base, mock := newMockAdapter(t)
	mock.ExpectExec("DROP TABLE foo").WillReturnError(errors.New("no such table"))

	err := base.Exec(context.Background(), "DROP TABLE foo")
	if err == nil {
		t.Fatal("expected error from executor")
	}
}

func TestBaseSQLAdapter_Query(t *testing.T) {
	base, mock := newMockAdapter(t)
	mock.ExpectQuery("SELECT id FROM foo").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2))

	rows, err := base.Query(context.Background(), "SELECT id FROM foo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = rows.Close() }()

	var count int
	for rows.Next() {
		count++
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("rows error: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 rows, got %d", count)
	}
}

func TestBaseSQLAdapter_NotConnected(t *testing.T) {
	base := &BaseSQLAdapter{}

	if err := base.Exec(context.Background(), "SELECT 1"); err == nil {
		t.Error("Exec without connection should fail")
	}
	if _, err := base.Query(context.Background(), "SELECT 1"); err == nil {
		t.Error("Query without connection should fail")
	}
	if err := base.Ping(context.Background()); err == nil {
		t.Error("Ping without connection should fail")
	}
	if base.IsConnected() {
		t.Error("IsConnected should be false without a DB")
	}
	if err := base.Close(); err != nil {
		t.Errorf("Close without connection should be a no-op, got %v", err)
	}
}
