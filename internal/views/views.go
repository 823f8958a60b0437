package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/csuvajit/web-login/internal/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Renderer executes the embedded HTML views. Rendering goes through a
// buffer first so a template failure never leaves a half-written page.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse view templates: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

// homeData feeds the home view; Account is nil for anonymous visitors.
type homeData struct {
	Account *models.Account
}

type dashboardData struct {
	Account *models.Account
}

type messageData struct {
	Message string
}

// Home renders the landing page with the optional signed-in account.
func (r *Renderer) Home(w http.ResponseWriter, account *models.Account) error {
	return r.render(w, http.StatusOK, "home.html", homeData{Account: account})
}

// Dashboard renders the dashboard for a signed-in account.
func (r *Renderer) Dashboard(w http.ResponseWriter, account *models.Account) error {
	return r.render(w, http.StatusOK, "dashboard.html", dashboardData{Account: account})
}

// Message renders the generic message page with the given HTTP status.
func (r *Renderer) Message(w http.ResponseWriter, status int, msg string) error {
	return r.render(w, status, "message.html", messageData{Message: msg})
}

func (r *Renderer) render(w http.ResponseWriter, status int, name string, data interface{}) error {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return fmt.Errorf("failed to render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
