package views

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csuvajit/web-login/internal/models"
)

func TestHome(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	t.Run("anonymous visitor sees the forms", func(t *testing.T) {
		rr := httptest.NewRecorder()
		require.NoError(t, renderer.Home(rr, nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Sign up")
		assert.Contains(t, rr.Body.String(), "Log in")
	})

	t.Run("signed-in visitor is greeted", func(t *testing.T) {
		rr := httptest.NewRecorder()
		require.NoError(t, renderer.Home(rr, &models.Account{Username: "alice"}))

		assert.Contains(t, rr.Body.String(), "Welcome back, alice!")
	})
}

func TestDashboard(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	require.NoError(t, renderer.Dashboard(rr, &models.Account{Username: "alice"}))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Hello, alice!")
	assert.Contains(t, rr.Body.String(), "/download")
	assert.Contains(t, rr.Body.String(), "/delete")
}

func TestMessage(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	require.NoError(t, renderer.Message(rr, http.StatusInternalServerError, "Something went wrong"))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "Something went wrong")
}

func TestMessageEscapesMarkup(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	require.NoError(t, renderer.Message(rr, http.StatusOK, "<script>alert(1)</script>"))

	assert.NotContains(t, rr.Body.String(), "<script>")
}
