package serviceImp

import (
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"fertiq/entities"
	authRepoImp "fertiq/pkg/auth/repositoryImp"
	"fertiq/pkg/auth/service"
)

func testService(t *testing.T) service.AuthService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Registration{}, &entities.Session{}))
	return New(authRepoImp.New(db), time.Hour)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := testService(t)

	u, err := svc.Register("Asha", "asha@example.com", "s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", u.Password, "password must be stored hashed")

	token, err := svc.Login("asha@example.com", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := svc.UserForToken(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "Asha", got.Name)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc := testService(t)

	_, err := svc.Register("Asha", "asha@example.com", "s3cret")
	require.NoError(t, err)

	_, err = svc.Register("Other", "asha@example.com", "different")
	assert.ErrorIs(t, err, service.ErrEmailTaken)
}

func TestRegisterRequiresAllFields(t *testing.T) {
	svc := testService(t)
	_, err := svc.Register("", "a@example.com", "pw")
	assert.ErrorIs(t, err, service.ErrFieldsRequired)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	svc := testService(t)
	_, err := svc.Register("Asha", "asha@example.com", "s3cret")
	require.NoError(t, err)

	_, err = svc.Login("asha@example.com", "wrong")
	assert.ErrorIs(t, err, service.ErrBadCredentials)

	_, err = svc.Login("nobody@example.com", "s3cret")
	assert.ErrorIs(t, err, service.ErrBadCredentials)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	svc := testService(t)
	_, err := svc.Register("Asha", "asha@example.com", "s3cret")
	require.NoError(t, err)

	token, err := svc.Login("asha@example.com", "s3cret")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(token))
	_, err = svc.UserForToken(token)
	assert.ErrorIs(t, err, service.ErrNoSession)
}

func TestExpiredSessionRejected(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Registration{}, &entities.Session{}))
	svc := New(authRepoImp.New(db), -time.Minute)

	_, err = svc.Register("Asha", "asha@example.com", "s3cret")
	require.NoError(t, err)
	token, err := svc.Login("asha@example.com", "s3cret")
	require.NoError(t, err)

	_, err = svc.UserForToken(token)
	assert.ErrorIs(t, err, service.ErrNoSession)
}
