package receipts

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/snugbooks/backend/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+receipts\s*\(user_id,\s*filename,\s*storage_path,\s*note\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*RETURNING\s+id,\s*created_at\s*$`

	rows := sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(9), time.Now())
	mock.ExpectQuery(q).
		WithArgs(int64(2), "lunch.pdf", "receipts/lunch.pdf", sql.NullString{}).
		WillReturnRows(rows)

	got, err := repo.Create(context.Background(), &models.Receipt{UserID: 2, Filename: "lunch.pdf", StoragePath: "receipts/lunch.pdf"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 9 {
		t.Fatalf("unexpected id: %d", got.ID)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT\s+INTO\s+receipts`).
		WillReturnError(errors.New("conn reset"))

	_, err := repo.Create(context.Background(), &models.Receipt{UserID: 2, Filename: "f", StoragePath: "p"})
	if err == nil || !regexp.MustCompile(`db error: .*conn reset`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestListByUser_RoundTripsSubmittedFields(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "filename", "storage_path", "note", "created_at"}).
		AddRow(int64(9), int64(2), "lunch.pdf", "receipts/lunch.pdf", "client lunch", now)
	mock.ExpectQuery(`SELECT\s+id,.*FROM\s+receipts\s+WHERE\s+user_id`).
		WithArgs(int64(2)).
		WillReturnRows(rows)

	got, err := repo.ListByUser(context.Background(), 2)
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(got) != 1 || got[0].Note == nil || *got[0].Note != "client lunch" {
		t.Fatalf("unexpected receipts: %+v", got)
	}
}
