package interfaces

import (
	"context"

	"github.com/csuvajit/web-login/internal/models"
)

// AuthService exposes the four account operations the route layer needs.
// A nil account (or empty ID) with a nil error means "no such account";
// errors are reserved for store failures.
type AuthService interface {
	FindByUsername(ctx context.Context, username string) (*models.Account, error)
	CreateAccount(ctx context.Context, username, password string) (*models.Account, error)
	VerifyLogin(ctx context.Context, username, password string) (*models.Account, error)
	DeleteAccount(ctx context.Context, username string) (string, error)
}
