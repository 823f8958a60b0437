package authservice

import (
	"context"
	"fmt"

	"github.com/csuvajit/web-login/internal/interfaces"
	"github.com/csuvajit/web-login/internal/models"
	"github.com/csuvajit/web-login/pkg/helper"
)

// AuthService executes the account operations against the login store.
// All four operations treat "no such account" as a nil result with a nil
// error; a non-nil error always means the store call itself failed.
type AuthService struct {
	AccountRepo interfaces.AccountRepository
	Logger      interfaces.Logger
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(repo interfaces.AccountRepository, logger interfaces.Logger) *AuthService {
	return &AuthService{
		AccountRepo: repo,
		Logger:      logger,
	}
}

// FindByUsername returns the account holding the given username, or nil if
// none exists.
func (s *AuthService) FindByUsername(ctx context.Context, username string) (*models.Account, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "user", username)

	account, err := s.AccountRepo.FindByUsername(ctx, username)
	if err != nil {
		s.Logger.Error(ErrFailedToLookupAccount, "func", funcName, "user", username, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrFailedToLookupAccount, err)
	}

	s.Logger.Debug("Exiting function", "func", funcName, "user", username, "found", account != nil)
	return account, nil
}

// CreateAccount inserts a new account and returns it with the ID the store
// assigned. It does not check uniqueness itself; the caller decides whether
// to look first, and the store's unique index backstops the race.
func (s *AuthService) CreateAccount(ctx context.Context, username, password string) (*models.Account, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "user", username)
	s.Logger.Info("Creating account", "func", funcName, "user", username)

	account := models.NewAccount(username, password)
	id, err := s.AccountRepo.AddAccount(ctx, *account)
	if err != nil {
		s.Logger.Error(ErrFailedToCreateAccount, "func", funcName, "user", username, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrFailedToCreateAccount, err)
	}
	account.ID = id

	s.Logger.Info("Account created successfully", "func", funcName, "user", username, "ID", id)
	s.Logger.Debug("Exiting function", "func", funcName, "user", username)
	return account, nil
}

// VerifyLogin returns the account matching the exact username/password pair,
// or nil when no such pair exists. The caller cannot tell which of the two
// fields was wrong.
func (s *AuthService) VerifyLogin(ctx context.Context, username, password string) (*models.Account, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "user", username)

	account, err := s.AccountRepo.FindByCredentials(ctx, username, password)
	if err != nil {
		s.Logger.Error(ErrFailedToVerifyLogin, "func", funcName, "user", username, "error", err)
		return nil, fmt.Errorf("%s: %w", ErrFailedToVerifyLogin, err)
	}
	if account == nil {
		s.Logger.Info("Login verification failed", "func", funcName, "user", username)
		return nil, nil
	}

	s.Logger.Info("Login verified successfully", "func", funcName, "user", username)
	s.Logger.Debug("Exiting function", "func", funcName, "user", username)
	return account, nil
}

// DeleteAccount removes one account with the given username and returns the
// deleted ID, or "" when no account was found. Calling it again for the
// same username is a no-op.
func (s *AuthService) DeleteAccount(ctx context.Context, username string) (string, error) {
	funcName := helper.GetFuncName()
	s.Logger.Debug("Entering function", "func", funcName, "user", username)
	s.Logger.Info("Deleting account", "func", funcName, "user", username)

	id, err := s.AccountRepo.DeleteByUsername(ctx, username)
	if err != nil {
		s.Logger.Error(ErrFailedToDeleteAccount, "func", funcName, "user", username, "error", err)
		return "", fmt.Errorf("%s: %w", ErrFailedToDeleteAccount, err)
	}
	if id == "" {
		s.Logger.Info("No account to delete", "func", funcName, "user", username)
		return "", nil
	}

	s.Logger.Info("Account deleted successfully", "func", funcName, "user", username, "ID", id)
	s.Logger.Debug("Exiting function", "func", funcName, "user", username)
	return id, nil
}
