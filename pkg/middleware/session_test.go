package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"fertiq/entities"
	authRepoImp "fertiq/pkg/auth/repositoryImp"
	"fertiq/pkg/auth/service"
	authSvcImp "fertiq/pkg/auth/serviceImp"
)

func testAuth(t *testing.T) service.AuthService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Registration{}, &entities.Session{}))
	return authSvcImp.New(authRepoImp.New(db), time.Hour)
}

func TestRequireLoginRejectsAnonymous(t *testing.T) {
	auth := testAuth(t)
	e := echo.New()
	e.Use(LoadUser(auth))
	e.GET("/predict", func(c echo.Context) error { return c.String(http.StatusOK, "ok") }, RequireLogin())

	req := httptest.NewRequest(http.MethodGet, "/predict", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "/acountlogin")
}

func TestRequireLoginPassesWithSession(t *testing.T) {
	auth := testAuth(t)
	_, err := auth.Register("Asha", "asha@example.com", "s3cret")
	require.NoError(t, err)
	token, err := auth.Login("asha@example.com", "s3cret")
	require.NoError(t, err)

	e := echo.New()
	e.Use(LoadUser(auth))
	e.GET("/predict", func(c echo.Context) error {
		uid, _ := c.Get("user_id").(uint)
		assert.NotZero(t, uid)
		return c.String(http.StatusOK, "ok")
	}, RequireLogin())

	req := httptest.NewRequest(http.MethodGet, "/predict", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoadUserIgnoresBadToken(t *testing.T) {
	auth := testAuth(t)
	e := echo.New()
	e.Use(LoadUser(auth))
	e.GET("/whoami", func(c echo.Context) error {
		_, ok := c.Get("user_id").(uint)
		assert.False(t, ok)
		return c.String(http.StatusOK, "anon")
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "not-a-token"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
