package routes

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	structValidator "github.com/go-playground/validator/v10"

	"github.com/csuvajit/web-login/internal/interfaces"
	"github.com/csuvajit/web-login/internal/models/dto"
	"github.com/csuvajit/web-login/internal/session"
	"github.com/csuvajit/web-login/internal/views"
)

// Route holds the handlers for the login web app. Each handler either
// redirects, renders a view, or renders the generic message page; store
// failures are rendered as a 500 message page.
type Route struct {
	Metrics   interfaces.Metrics
	Auth      interfaces.AuthService
	Sessions  *session.Manager
	Views     *views.Renderer
	Logger    interfaces.Logger
	validator *structValidator.Validate
}

// NewRoute creates a new Route instance.
func NewRoute(metrics interfaces.Metrics, auth interfaces.AuthService, sessions *session.Manager,
	renderer *views.Renderer, logger interfaces.Logger, validator *structValidator.Validate,
) *Route {

	return &Route{
		Metrics:   metrics,
		Auth:      auth,
		Sessions:  sessions,
		Views:     renderer,
		Logger:    logger,
		validator: validator,
	}
}

// Home renders the landing page. Registered on "/", it also catches every
// path no other handler claims and redirects those to the home page.
func (r *Route) Home(w http.ResponseWriter, req *http.Request) {
	if req.URL.Path != HomeRoute || req.Method != http.MethodGet {
		http.Redirect(w, req, HomeRoute, http.StatusFound)
		return
	}

	if err := r.Views.Home(w, r.Sessions.Account(req)); err != nil {
		r.Logger.Error("Failed to render home view", "error", err)
	}
}

// Dashboard renders the dashboard for signed-in accounts.
func (r *Route) Dashboard(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		http.Redirect(w, req, HomeRoute, http.StatusFound)
		return
	}

	account := r.Sessions.Account(req)
	if account == nil {
		r.renderMessage(w, http.StatusOK, MsgSignedInRequired)
		return
	}

	if err := r.Views.Dashboard(w, account); err != nil {
		r.Logger.Error("Failed to render dashboard view", "error", err)
	}
}

// Signup handles account creation requests. An existing username is
// rejected; the store's unique index backstops the check-then-insert race.
func (r *Route) Signup(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		http.Redirect(w, req, HomeRoute, http.StatusFound)
		return
	}

	if r.Metrics != nil {
		r.Metrics.IncCounter(SignupRequestsTotal)
	}

	creds, err := r.parseCredentials(req)
	if err != nil {
		if r.Metrics != nil {
			r.Metrics.IncCounter(SignupErrorsTotal)
		}
		r.renderMessage(w, http.StatusBadRequest, MsgMissingCredentials)
		return
	}

	var startTime time.Time
	if r.Metrics != nil {
		startTime = time.Now()
	}

	existing, err := r.Auth.FindByUsername(req.Context(), creds.Username)
	if err != nil {
		r.storeFailure(w, "signup lookup", err, SignupErrorsTotal)
		return
	}
	if existing != nil {
		if r.Metrics != nil {
			r.Metrics.IncCounter(SignupErrorsTotal)
		}
		r.renderMessage(w, http.StatusOK, MsgUsernameTaken)
		return
	}

	account, err := r.Auth.CreateAccount(req.Context(), creds.Username, creds.Password)
	if err != nil {
		// A concurrent signup can slip past the lookup; the unique index
		// turns the second insert into a duplicate error.
		if errors.Is(err, interfaces.ErrDuplicateUsername) {
			if r.Metrics != nil {
				r.Metrics.IncCounter(SignupErrorsTotal)
			}
			r.renderMessage(w, http.StatusOK, MsgUsernameTaken)
			return
		}
		r.storeFailure(w, "signup create", err, SignupErrorsTotal)
		return
	}

	if err := r.Sessions.SignIn(req, account); err != nil {
		r.storeFailure(w, "signup session", err, SignupErrorsTotal)
		return
	}

	if r.Metrics != nil {
		r.Metrics.IncCounter(SignupSuccessTotal)
		r.Metrics.ObserveHistogram(SignupDurationSeconds, time.Since(startTime).Seconds())
	}

	http.Redirect(w, req, DashboardRoute, http.StatusFound)
}

// Login handles login requests. A failed login never reveals whether the
// username or the password was wrong.
func (r *Route) Login(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		http.Redirect(w, req, HomeRoute, http.StatusFound)
		return
	}

	if r.Metrics != nil {
		r.Metrics.IncCounter(LoginRequestsTotal)
	}

	creds, err := r.parseCredentials(req)
	if err != nil {
		if r.Metrics != nil {
			r.Metrics.IncCounter(LoginFailedTotal)
		}
		r.renderMessage(w, http.StatusBadRequest, MsgMissingCredentials)
		return
	}

	var startTime time.Time
	if r.Metrics != nil {
		startTime = time.Now()
	}

	account, err := r.Auth.VerifyLogin(req.Context(), creds.Username, creds.Password)
	if err != nil {
		r.storeFailure(w, "login verify", err, LoginFailedTotal)
		return
	}

	if r.Metrics != nil {
		r.Metrics.ObserveHistogram(LoginDurationSeconds, time.Since(startTime).Seconds())
	}

	if account == nil {
		if r.Metrics != nil {
			r.Metrics.IncCounter(LoginFailedTotal)
		}
		r.renderMessage(w, http.StatusOK, MsgBadCredentials)
		return
	}

	if err := r.Sessions.SignIn(req, account); err != nil {
		r.storeFailure(w, "login session", err, LoginFailedTotal)
		return
	}

	if r.Metrics != nil {
		r.Metrics.IncCounter(LoginSuccessTotal)
	}

	http.Redirect(w, req, DashboardRoute, http.StatusFound)
}

// Logout destroys the session and sends the browser home.
func (r *Route) Logout(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		http.Redirect(w, req, HomeRoute, http.StatusFound)
		return
	}

	if err := r.Sessions.SignOut(req); err != nil {
		r.Logger.Error("Failed to destroy session on logout", "error", err)
	}

	http.Redirect(w, req, HomeRoute, http.StatusFound)
}

// Download emits the session's account as a downloadable JSON document.
// The payload deliberately includes the stored password; that is the
// historical download contract.
func (r *Route) Download(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		http.Redirect(w, req, HomeRoute, http.StatusFound)
		return
	}

	if r.Metrics != nil {
		r.Metrics.IncCounter(DownloadRequestsTotal)
	}

	account := r.Sessions.Account(req)
	if account == nil {
		r.renderMessage(w, http.StatusOK, MsgSignedInRequired)
		return
	}

	payload := dto.DownloadDTO{
		User:     account.Username,
		ID:       account.ID,
		Password: account.Password,
	}

	body, err := json.MarshalIndent(payload, "", " ")
	if err != nil {
		r.storeFailure(w, "download encode", err, StoreErrorsTotal)
		return
	}

	w.Header().Set(ContentDisposition, DownloadAttachment)
	w.Header().Set(ContentType, ContentTypeDownload)
	if _, err := w.Write(body); err != nil {
		r.Logger.Error("Failed to write download body", "error", err)
	}
}

// Delete removes the signed-in account from the store, destroys the
// session and sends the browser home.
func (r *Route) Delete(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		http.Redirect(w, req, HomeRoute, http.StatusFound)
		return
	}

	if r.Metrics != nil {
		r.Metrics.IncCounter(DeleteRequestsTotal)
	}

	account := r.Sessions.Account(req)
	if account == nil {
		r.renderMessage(w, http.StatusOK, MsgSignedInRequired)
		return
	}

	if _, err := r.Auth.DeleteAccount(req.Context(), account.Username); err != nil {
		r.storeFailure(w, "delete account", err, StoreErrorsTotal)
		return
	}

	if err := r.Sessions.SignOut(req); err != nil {
		r.Logger.Error("Failed to destroy session on delete", "error", err)
	}

	if r.Metrics != nil {
		r.Metrics.IncCounter(DeleteSuccessTotal)
	}

	http.Redirect(w, req, HomeRoute, http.StatusFound)
}

// parseCredentials reads the username/password pair from either a JSON or a
// form-encoded request body and validates that both fields are present.
func (r *Route) parseCredentials(req *http.Request) (*dto.CredentialsRequestDTO, error) {
	creds := &dto.CredentialsRequestDTO{}

	if strings.HasPrefix(req.Header.Get(ContentType), ContentTypeJson) {
		if err := json.NewDecoder(req.Body).Decode(creds); err != nil {
			return nil, err
		}
	} else {
		if err := req.ParseForm(); err != nil {
			return nil, err
		}
		creds.Username = req.PostFormValue("username")
		creds.Password = req.PostFormValue("password")
	}

	if err := r.validator.Struct(creds); err != nil {
		return nil, err
	}

	return creds, nil
}

// storeFailure renders the 500 message page for a failed store call.
func (r *Route) storeFailure(w http.ResponseWriter, op string, err error, counter string) {
	r.Logger.Error("Login store call failed", "op", op, "error", err)
	if r.Metrics != nil {
		r.Metrics.IncCounter(counter)
	}
	r.renderMessage(w, http.StatusInternalServerError, MsgServerError)
}

func (r *Route) renderMessage(w http.ResponseWriter, status int, msg string) {
	if err := r.Views.Message(w, status, msg); err != nil {
		r.Logger.Error("Failed to render message view", "error", err)
	}
}
