package session

import (
	"encoding/gob"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/csuvajit/web-login/config"
	"github.com/csuvajit/web-login/internal/models"
)

// KeyAccount is the session data key holding the signed-in Account.
const KeyAccount = "account"

func init() {
	// Register types that will be stored in sessions
	gob.Register(models.Account{})
}

// Manager wraps scs.SessionManager with application-specific methods.
// A session holds at most one Account; its presence is what distinguishes
// an authenticated browser from an anonymous one.
type Manager struct {
	*scs.SessionManager
}

// NewManager creates a configured session manager backed by the default
// in-memory store. Sessions are not shared across nodes.
func NewManager(cfg config.Session) *Manager {
	sm := scs.New()

	// Configure session lifetime
	sm.Lifetime = cfg.Lifetime

	// Configure cookie security
	sm.Cookie.Name = cfg.CookieName
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"

	return &Manager{SessionManager: sm}
}

// SignIn stores the account in the session after a successful login or
// signup. The token is renewed to prevent session fixation.
func (m *Manager) SignIn(r *http.Request, account *models.Account) error {
	if err := m.RenewToken(r.Context()); err != nil {
		return err
	}

	m.Put(r.Context(), KeyAccount, *account)
	return nil
}

// SignOut removes all session data and invalidates the session token, which
// also clears the cookie on the next write.
func (m *Manager) SignOut(r *http.Request) error {
	return m.Destroy(r.Context())
}

// Account retrieves the signed-in account from the session.
// Returns nil for anonymous sessions.
func (m *Manager) Account(r *http.Request) *models.Account {
	account, ok := m.Get(r.Context(), KeyAccount).(models.Account)
	if !ok {
		return nil
	}
	return &account
}
