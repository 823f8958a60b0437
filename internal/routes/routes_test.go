package routes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	structValidator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csuvajit/web-login/config"
	"github.com/csuvajit/web-login/internal/authservice"
	"github.com/csuvajit/web-login/internal/interfaces"
	"github.com/csuvajit/web-login/internal/models"
	"github.com/csuvajit/web-login/internal/session"
	"github.com/csuvajit/web-login/internal/views"
	"github.com/csuvajit/web-login/pkg/zerolog"
)

// fakeAccountRepo is an in-memory stand-in for the login store. It enforces
// the unique username index the real backends carry.
type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]models.Account
	nextID   int
	failing  bool
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]models.Account)}
}

func (f *fakeAccountRepo) AddAccount(_ context.Context, account models.Account) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failing {
		return "", errors.New("store unavailable")
	}
	if _, exists := f.accounts[account.Username]; exists {
		return "", interfaces.ErrDuplicateUsername
	}

	f.nextID++
	account.ID = fmt.Sprintf("acct-%d", f.nextID)
	f.accounts[account.Username] = account

	return account.ID, nil
}

func (f *fakeAccountRepo) FindByUsername(_ context.Context, username string) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failing {
		return nil, errors.New("store unavailable")
	}
	account, exists := f.accounts[username]
	if !exists {
		return nil, nil
	}

	return &account, nil
}

func (f *fakeAccountRepo) FindByCredentials(_ context.Context, username, password string) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failing {
		return nil, errors.New("store unavailable")
	}
	account, exists := f.accounts[username]
	if !exists || account.Password != password {
		return nil, nil
	}

	return &account, nil
}

func (f *fakeAccountRepo) DeleteByUsername(_ context.Context, username string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failing {
		return "", errors.New("store unavailable")
	}
	account, exists := f.accounts[username]
	if !exists {
		return "", nil
	}
	delete(f.accounts, username)

	return account.ID, nil
}

func (f *fakeAccountRepo) EnsureIndices(context.Context) error { return nil }

func (f *fakeAccountRepo) Close(context.Context) error { return nil }

func (f *fakeAccountRepo) setFailing(failing bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failing = failing
}

// newTestServer wires the handlers the same way the app does, backed by the
// fake store, and returns the server plus the repo for direct inspection.
func newTestServer(t *testing.T) (*httptest.Server, *fakeAccountRepo) {
	t.Helper()

	repo := newFakeAccountRepo()
	logger := zerolog.NewZerologLogger("routes-test")
	auth := authservice.NewAuthService(repo, logger)
	sessions := session.NewManager(config.Session{CookieName: "connect.sid", Lifetime: time.Hour})

	renderer, err := views.NewRenderer()
	require.NoError(t, err)

	route := NewRoute(nil, auth, sessions, renderer, logger, structValidator.New())

	mux := http.NewServeMux()
	mux.HandleFunc(HomeRoute, route.Home)
	mux.HandleFunc(DashboardRoute, route.Dashboard)
	mux.HandleFunc(SignupRoute, route.Signup)
	mux.HandleFunc(LoginRoute, route.Login)
	mux.HandleFunc(LogoutRoute, route.Logout)
	mux.HandleFunc(DownloadRoute, route.Download)
	mux.HandleFunc(DeleteRoute, route.Delete)

	srv := httptest.NewServer(sessions.LoadAndSave(mux))
	t.Cleanup(srv.Close)

	return srv, repo
}

func newBrowser(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &http.Client{Jar: jar}
}

func postForm(t *testing.T, client *http.Client, rawURL string, values url.Values) *http.Response {
	t.Helper()

	resp, err := client.PostForm(rawURL, values)
	require.NoError(t, err)

	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return string(body)
}

func TestAccountLifecycle(t *testing.T) {
	srv, repo := newTestServer(t)
	client := newBrowser(t)

	// Signup lands on the dashboard.
	resp := postForm(t, client, srv.URL+SignupRoute, url.Values{
		"username": {"alice"},
		"password": {"pw1"},
	})
	body := readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Hello, alice!")

	// Logout, then log back in.
	resp, err := client.Get(srv.URL + LogoutRoute)
	require.NoError(t, err)
	readBody(t, resp)

	resp, err = client.Get(srv.URL + DashboardRoute)
	require.NoError(t, err)
	assert.Contains(t, readBody(t, resp), MsgSignedInRequired)

	resp = postForm(t, client, srv.URL+LoginRoute, url.Values{
		"username": {"alice"},
		"password": {"pw1"},
	})
	assert.Contains(t, readBody(t, resp), "Hello, alice!")

	// Download hands back the stored record as an attachment.
	resp, err = client.Get(srv.URL + DownloadRoute)
	require.NoError(t, err)
	assert.Equal(t, DownloadAttachment, resp.Header.Get(ContentDisposition))
	assert.Equal(t, ContentTypeDownload, resp.Header.Get(ContentType))

	var payload map[string]string
	require.NoError(t, json.Unmarshal([]byte(readBody(t, resp)), &payload))
	assert.Equal(t, "alice", payload["user"])
	assert.Equal(t, "pw1", payload["password"])
	assert.NotEmpty(t, payload["id"])

	// Delete removes the record and ends the session.
	resp, err = client.Get(srv.URL + DeleteRoute)
	require.NoError(t, err)
	readBody(t, resp)

	resp, err = client.Get(srv.URL + DashboardRoute)
	require.NoError(t, err)
	assert.Contains(t, readBody(t, resp), MsgSignedInRequired)

	account, err := repo.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Nil(t, account)
}

func TestSignupDuplicateUsername(t *testing.T) {
	srv, repo := newTestServer(t)

	first := newBrowser(t)
	resp := postForm(t, first, srv.URL+SignupRoute, url.Values{
		"username": {"alice"},
		"password": {"pw1"},
	})
	readBody(t, resp)

	second := newBrowser(t)
	resp = postForm(t, second, srv.URL+SignupRoute, url.Values{
		"username": {"alice"},
		"password": {"other"},
	})
	body := readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, MsgUsernameTaken)

	// The original record is untouched.
	account, err := repo.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, "pw1", account.Password)
}

func TestLoginWrongPassword(t *testing.T) {
	srv, _ := newTestServer(t)
	client := newBrowser(t)

	resp := postForm(t, client, srv.URL+SignupRoute, url.Values{
		"username": {"alice"},
		"password": {"pw1"},
	})
	readBody(t, resp)

	resp, err := client.Get(srv.URL + LogoutRoute)
	require.NoError(t, err)
	readBody(t, resp)

	resp = postForm(t, client, srv.URL+LoginRoute, url.Values{
		"username": {"alice"},
		"password": {"wrong"},
	})
	body := readBody(t, resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, MsgBadCredentials)

	// Still signed out.
	resp, err = client.Get(srv.URL + DashboardRoute)
	require.NoError(t, err)
	assert.Contains(t, readBody(t, resp), MsgSignedInRequired)
}

func TestLoginJSONBody(t *testing.T) {
	srv, _ := newTestServer(t)
	client := newBrowser(t)

	resp := postForm(t, client, srv.URL+SignupRoute, url.Values{
		"username": {"alice"},
		"password": {"pw1"},
	})
	readBody(t, resp)

	resp, err := client.Get(srv.URL + LogoutRoute)
	require.NoError(t, err)
	readBody(t, resp)

	resp, err = client.Post(srv.URL+LoginRoute, ContentTypeJson,
		strings.NewReader(`{"username":"alice","password":"pw1"}`))
	require.NoError(t, err)
	assert.Contains(t, readBody(t, resp), "Hello, alice!")
}

func TestMissingCredentials(t *testing.T) {
	srv, _ := newTestServer(t)
	client := newBrowser(t)

	resp := postForm(t, client, srv.URL+SignupRoute, url.Values{
		"username": {"alice"},
	})
	body := readBody(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, MsgMissingCredentials)
}

func TestSignupOverlongUsername(t *testing.T) {
	srv, repo := newTestServer(t)
	client := newBrowser(t)

	longName := strings.Repeat("a", 65)
	resp := postForm(t, client, srv.URL+SignupRoute, url.Values{
		"username": {longName},
		"password": {"pw1"},
	})
	body := readBody(t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, MsgMissingCredentials)

	// Nothing was stored, so nothing can be stranded.
	account, err := repo.FindByUsername(context.Background(), longName)
	require.NoError(t, err)
	assert.Nil(t, account)
}

func TestUnknownPathRedirectsHome(t *testing.T) {
	srv, _ := newTestServer(t)

	client := newBrowser(t)
	client.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	for _, target := range []string{"/nowhere", "/admin", "/dashboard/extra"} {
		resp, err := client.Get(srv.URL + target)
		require.NoError(t, err)
		readBody(t, resp)

		assert.Equal(t, http.StatusFound, resp.StatusCode, target)
		assert.Equal(t, HomeRoute, resp.Header.Get("Location"), target)
	}

	// Wrong method falls back to the same redirect.
	resp := postForm(t, client, srv.URL+DashboardRoute, url.Values{})
	readBody(t, resp)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, HomeRoute, resp.Header.Get("Location"))
}

func TestStoreFailure(t *testing.T) {
	srv, repo := newTestServer(t)
	client := newBrowser(t)

	repo.setFailing(true)

	resp := postForm(t, client, srv.URL+SignupRoute, url.Values{
		"username": {"alice"},
		"password": {"pw1"},
	})
	body := readBody(t, resp)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, body, MsgServerError)
}
