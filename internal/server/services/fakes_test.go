package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/snugbooks/backend/internal/common"
	"github.com/snugbooks/backend/internal/dbx"
	"github.com/snugbooks/backend/internal/server/models"
	companiesrepo "github.com/snugbooks/backend/internal/server/repositories/companies"
	receiptsrepo "github.com/snugbooks/backend/internal/server/repositories/receipts"
	siefilesrepo "github.com/snugbooks/backend/internal/server/repositories/siefiles"
	usersrepo "github.com/snugbooks/backend/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func strp(s string) *string { return &s }

// --- fakes ---

type fakeUsersRepo struct {
	byEmail map[string]*models.User
	byID    map[int64]*models.User

	createErr error
	created   []*models.User

	updatedPasswords map[int64]string
	updatedRoles     map[int64]string
}

func newFakeUsersRepo(seed ...*models.User) *fakeUsersRepo {
	f := &fakeUsersRepo{
		byEmail:          map[string]*models.User{},
		byID:             map[int64]*models.User{},
		updatedPasswords: map[int64]string{},
		updatedRoles:     map[int64]string{},
	}
	for _, u := range seed {
		f.byEmail[u.Email] = u
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return nil, common.ErrorConflict
	}
	u.ID = int64(len(f.byEmail) + 1)
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
	f.created = append(f.created, u)
	return u, nil
}

func (f *fakeUsersRepo) List(ctx context.Context) ([]*models.User, error) {
	var result []*models.User
	for _, u := range f.byID {
		result = append(result, u)
	}
	return result, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) UpdatePassword(ctx context.Context, id int64, hash string) error {
	u, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.Password = hash
	f.updatedPasswords[id] = hash
	return nil
}

func (f *fakeUsersRepo) UpdateRole(ctx context.Context, id int64, role string) error {
	u, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.Role = role
	f.updatedRoles[id] = role
	return nil
}

type fakeCompaniesRepo struct {
	byID map[int64]*models.Company

	updated []*models.Company
	deleted []int64
}

func newFakeCompaniesRepo(seed ...*models.Company) *fakeCompaniesRepo {
	f := &fakeCompaniesRepo{byID: map[int64]*models.Company{}}
	for _, c := range seed {
		f.byID[c.ID] = c
	}
	return f
}

func (f *fakeCompaniesRepo) Create(ctx context.Context, c *models.Company) (*models.Company, error) {
	c.ID = int64(len(f.byID) + 1)
	f.byID[c.ID] = c
	return c, nil
}

func (f *fakeCompaniesRepo) ListByUser(ctx context.Context, userID int64) ([]*models.Company, error) {
	var result []*models.Company
	for _, c := range f.byID {
		if c.UserID == userID {
			result = append(result, c)
		}
	}
	return result, nil
}

func (f *fakeCompaniesRepo) GetByID(ctx context.Context, id int64) (*models.Company, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return c, nil
}

func (f *fakeCompaniesRepo) Update(ctx context.Context, c *models.Company) error {
	if _, ok := f.byID[c.ID]; !ok {
		return common.ErrorNotFound
	}
	f.byID[c.ID] = c
	f.updated = append(f.updated, c)
	return nil
}

func (f *fakeCompaniesRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeRepoManager struct {
	users     *fakeUsersRepo
	companies *fakeCompaniesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository { return m.users }

func (m *fakeRepoManager) SIEFiles(db dbx.DBTX) siefilesrepo.Repository { return nil }

func (m *fakeRepoManager) Receipts(db dbx.DBTX) receiptsrepo.Repository { return nil }

func (m *fakeRepoManager) Companies(db dbx.DBTX) companiesrepo.Repository { return m.companies }
