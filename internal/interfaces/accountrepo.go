package interfaces

import (
	"context"
	"errors"

	"github.com/csuvajit/web-login/internal/models"
)

// ErrDuplicateUsername is returned by AddAccount when the store's unique
// index rejects a username that already has an account.
var ErrDuplicateUsername = errors.New("username already exists")

// AccountRepository defines the contract for storing and retrieving login
// Account data. This interface remains the same as it's database-agnostic.
// "Not found" is reported as a nil account (or empty ID) with a nil error;
// a non-nil error always means the store itself failed.
type AccountRepository interface {
	AddAccount(ctx context.Context, account models.Account) (string, error)
	FindByUsername(ctx context.Context, username string) (*models.Account, error)
	FindByCredentials(ctx context.Context, username, password string) (*models.Account, error)
	DeleteByUsername(ctx context.Context, username string) (string, error)
	EnsureIndices(ctx context.Context) error
	Close(ctx context.Context) error
}
