package session

import (
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csuvajit/web-login/config"
	"github.com/csuvajit/web-login/internal/models"
)

func newTestManager() *Manager {
	return NewManager(config.Session{
		CookieName: "connect.sid",
		Lifetime:   time.Hour,
	})
}

func TestNewManagerCookieSettings(t *testing.T) {
	sm := NewManager(config.Session{
		CookieName:    "connect.sid",
		Lifetime:      6000 * time.Hour,
		SecureCookies: true,
	})

	assert.Equal(t, "connect.sid", sm.Cookie.Name)
	assert.True(t, sm.Cookie.HttpOnly)
	assert.True(t, sm.Cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, sm.Cookie.SameSite)
	assert.Equal(t, 6000*time.Hour, sm.Lifetime)
}

func TestSignInSignOutRoundTrip(t *testing.T) {
	sm := newTestManager()

	mux := http.NewServeMux()
	mux.HandleFunc("/signin", func(w http.ResponseWriter, r *http.Request) {
		err := sm.SignIn(r, &models.Account{ID: "id-1", Username: "alice", Password: "pw1"})
		require.NoError(t, err)
	})
	mux.HandleFunc("/whoami", func(w http.ResponseWriter, r *http.Request) {
		account := sm.Account(r)
		if account == nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(account.Username))
	})
	mux.HandleFunc("/signout", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, sm.SignOut(r))
	})

	srv := httptest.NewServer(sm.LoadAndSave(mux))
	defer srv.Close()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{Jar: jar}

	// Anonymous at first.
	resp, err := client.Get(srv.URL + "/whoami")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Sign in sets the session cookie.
	resp, err = client.Get(srv.URL + "/signin")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var found bool
	for _, c := range jar.Cookies(mustParse(srv.URL)) {
		if c.Name == "connect.sid" {
			found = true
		}
	}
	assert.True(t, found, "session cookie should be set after sign-in")

	// The account travels with the cookie.
	resp, err = client.Get(srv.URL + "/whoami")
	require.NoError(t, err)
	body := make([]byte, 16)
	n, _ := resp.Body.Read(body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "alice", string(body[:n]))

	// Sign out destroys the session.
	resp, err = client.Get(srv.URL + "/signout")
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = client.Get(srv.URL + "/whoami")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAccountNilForAnonymous(t *testing.T) {
	sm := newTestManager()

	var account *models.Account
	h := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		account = sm.Account(r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Nil(t, account)
}

func mustParse(rawURL string) *url.URL {
	u, err := url.Parse(rawURL)
	if err != nil {
		panic(err)
	}
	return u
}
