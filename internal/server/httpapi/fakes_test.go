package httpapi

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/snugbooks/backend/internal/common"
	"github.com/snugbooks/backend/internal/dbx"
	"github.com/snugbooks/backend/internal/logging"
	"github.com/snugbooks/backend/internal/server/models"
	companiesrepo "github.com/snugbooks/backend/internal/server/repositories/companies"
	receiptsrepo "github.com/snugbooks/backend/internal/server/repositories/receipts"
	siefilesrepo "github.com/snugbooks/backend/internal/server/repositories/siefiles"
	usersrepo "github.com/snugbooks/backend/internal/server/repositories/users"
	"github.com/snugbooks/backend/internal/server/services"
)

// In-memory repositories so handler tests exercise the real services layer
// without a database. Transactions still go through the sqlmock connection.

type memUsersRepo struct {
	byEmail map[string]*models.User
	nextID  int64
}

func newMemUsersRepo() *memUsersRepo {
	return &memUsersRepo{byEmail: map[string]*models.User{}, nextID: 1}
}

func (m *memUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if _, ok := m.byEmail[u.Email]; ok {
		return nil, common.ErrorConflict
	}
	u.ID = m.nextID
	m.nextID++
	m.byEmail[u.Email] = u
	return u, nil
}

func (m *memUsersRepo) List(ctx context.Context) ([]*models.User, error) {
	result := []*models.User{}
	for _, u := range m.byEmail {
		result = append(result, u)
	}
	return result, nil
}

func (m *memUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (m *memUsersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (m *memUsersRepo) UpdatePassword(ctx context.Context, id int64, hash string) error {
	u, err := m.GetByID(ctx, id)
	if err != nil {
		return err
	}
	u.Password = hash
	return nil
}

func (m *memUsersRepo) UpdateRole(ctx context.Context, id int64, role string) error {
	u, err := m.GetByID(ctx, id)
	if err != nil {
		return err
	}
	u.Role = role
	return nil
}

type memSIEFilesRepo struct {
	files  []*models.SIEFile
	nextID int64
}

func (m *memSIEFilesRepo) Create(ctx context.Context, f *models.SIEFile) (*models.SIEFile, error) {
	m.nextID++
	f.ID = m.nextID
	m.files = append(m.files, f)
	return f, nil
}

func (m *memSIEFilesRepo) ListByUser(ctx context.Context, userID int64) ([]*models.SIEFile, error) {
	var result []*models.SIEFile
	for _, f := range m.files {
		if f.UserID == userID {
			result = append(result, f)
		}
	}
	return result, nil
}

type memReceiptsRepo struct {
	receipts []*models.Receipt
	nextID   int64
}

func (m *memReceiptsRepo) Create(ctx context.Context, r *models.Receipt) (*models.Receipt, error) {
	m.nextID++
	r.ID = m.nextID
	m.receipts = append(m.receipts, r)
	return r, nil
}

func (m *memReceiptsRepo) ListByUser(ctx context.Context, userID int64) ([]*models.Receipt, error) {
	var result []*models.Receipt
	for _, r := range m.receipts {
		if r.UserID == userID {
			result = append(result, r)
		}
	}
	return result, nil
}

type memCompaniesRepo struct {
	byID   map[int64]*models.Company
	nextID int64
}

func newMemCompaniesRepo() *memCompaniesRepo {
	return &memCompaniesRepo{byID: map[int64]*models.Company{}}
}

func (m *memCompaniesRepo) Create(ctx context.Context, c *models.Company) (*models.Company, error) {
	m.nextID++
	c.ID = m.nextID
	m.byID[c.ID] = c
	return c, nil
}

func (m *memCompaniesRepo) ListByUser(ctx context.Context, userID int64) ([]*models.Company, error) {
	var result []*models.Company
	for _, c := range m.byID {
		if c.UserID == userID {
			result = append(result, c)
		}
	}
	return result, nil
}

func (m *memCompaniesRepo) GetByID(ctx context.Context, id int64) (*models.Company, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return c, nil
}

func (m *memCompaniesRepo) Update(ctx context.Context, c *models.Company) error {
	if _, ok := m.byID[c.ID]; !ok {
		return common.ErrorNotFound
	}
	m.byID[c.ID] = c
	return nil
}

func (m *memCompaniesRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := m.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(m.byID, id)
	return nil
}

type memRepoManager struct {
	users     *memUsersRepo
	siefiles  *memSIEFilesRepo
	receipts  *memReceiptsRepo
	companies *memCompaniesRepo
}

func newMemRepoManager() *memRepoManager {
	return &memRepoManager{
		users:     newMemUsersRepo(),
		siefiles:  &memSIEFilesRepo{},
		receipts:  &memReceiptsRepo{},
		companies: newMemCompaniesRepo(),
	}
}

func (m *memRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *memRepoManager) Users(db dbx.DBTX) usersrepo.Repository { return m.users }

func (m *memRepoManager) SIEFiles(db dbx.DBTX) siefilesrepo.Repository { return m.siefiles }

func (m *memRepoManager) Receipts(db dbx.DBTX) receiptsrepo.Repository { return m.receipts }

func (m *memRepoManager) Companies(db dbx.DBTX) companiesrepo.Repository { return m.companies }

type testEnv struct {
	server *Server
	rm     *memRepoManager
	mock   sqlmock.Sqlmock
}

// newTestEnv wires a Server over in-memory repositories. Handlers that run
// inside a transaction need matching ExpectBegin/ExpectCommit on env.mock.
func newTestEnv(t *testing.T, adminToken string) *testEnv {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	mock.MatchExpectationsInOrder(false)

	rm := newMemRepoManager()
	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	us := services.NewUserService(db, rm)
	rs := services.NewRecordService(db, rm)
	cs := services.NewCompanyService(db, rm)

	srv, err := NewServer(":0", logger, us, rs, cs, adminToken)
	if err != nil {
		t.Fatalf("NewServer error: %v", err)
	}

	return &testEnv{server: srv, rm: rm, mock: mock}
}
