// Package services contains server-side business logic over the repositories.
// Each request runs as a single read-modify-commit against the store; writes
// touching more than one statement go through dbx.WithTx.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/snugbooks/backend/internal/common"
	"github.com/snugbooks/backend/internal/dbx"
	"github.com/snugbooks/backend/internal/server/auth"
	"github.com/snugbooks/backend/internal/server/models"
	"github.com/snugbooks/backend/internal/server/repositories/repomanager"
)

// UserService handles registration, listing, login, password reset and
// role updates.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewUserService constructs a UserService over the given connection and
// repository manager.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager) *UserService {
	return &UserService{db: db, repomanager: m}
}

// List returns all registered users.
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	repo := s.repomanager.Users(s.db)
	result, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return result, nil
}

// Register hashes the password and creates a new user with role "user".
// A duplicate email surfaces as common.ErrorConflict.
func (s *UserService) Register(ctx context.Context, email, password string, name *string) (*models.User, error) {
	hash, err := auth.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{Email: email, Password: hash, Name: name, Role: models.RoleUser}
	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login verifies the credentials and returns the matching user. Unknown
// email and wrong password are indistinguishable to the caller: both yield
// common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	if !auth.Verify(password, user.Password) {
		return nil, common.ErrorUnauthorized
	}
	return user, nil
}

// ResetPassword looks the user up by email and overwrites the stored hash
// with a fresh hash of newPassword. Unknown email yields common.ErrorNotFound.
func (s *UserService) ResetPassword(ctx context.Context, email, newPassword string) error {
	hash, err := auth.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)
		user, err := repo.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		return repo.UpdatePassword(ctx, user.ID, hash)
	})
}

// UpdateRole sets the user's role and returns the updated row. Unknown id
// yields common.ErrorNotFound. Authorization is the transport layer's job;
// by the time this runs the admin gate has already passed.
func (s *UserService) UpdateRole(ctx context.Context, id int64, role string) (*models.User, error) {
	var user *models.User
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)
		if err := repo.UpdateRole(ctx, id, role); err != nil {
			return err
		}
		var getErr error
		user, getErr = repo.GetByID(ctx, id)
		return getErr
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
