package service

import (
	"testing"

	"zapzap/backend/internal/pkg/apperr"
	"zapzap/backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) UserService {
	t.Helper()
	return NewUserService(repository.NewUserRepository(newTestDB(t)))
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := newUserService(t)

	user, err := svc.Register("alice", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "s3cret", user.Password, "password must be stored hashed")

	got, err := svc.Authenticate("alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.Authenticate("alice", "wrong")
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthenticated))

	_, err = svc.Authenticate("nobody", "s3cret")
	assert.True(t, apperr.IsKind(err, apperr.KindUnauthenticated))
}

func TestRegisterDuplicateName(t *testing.T) {
	svc := newUserService(t)

	first, err := svc.Register("alice", "s3cret")
	require.NoError(t, err)

	_, err = svc.Register("alice", "other")
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	// The original record is untouched.
	got, err := svc.GetUserByID(first.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Name)

	all, err := svc.ListUsers()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRegisterValidatesInput(t *testing.T) {
	svc := newUserService(t)

	_, err := svc.Register("", "s3cret")
	assert.True(t, apperr.IsKind(err, apperr.KindInvalid))

	_, err = svc.Register("alice", "")
	assert.True(t, apperr.IsKind(err, apperr.KindInvalid))
}

func TestSetBanned(t *testing.T) {
	svc := newUserService(t)

	admin, err := svc.Register("alice", "s3cret")
	require.NoError(t, err)
	target, err := svc.Register("bob", "s3cret")
	require.NoError(t, err)

	require.NoError(t, svc.SetBanned(admin.ID, target.ID, true))

	got, err := svc.GetUserByID(target.ID)
	require.NoError(t, err)
	assert.True(t, got.Banned)

	// A banned user can still log in; the flag is informational here.
	_, err = svc.Authenticate("bob", "s3cret")
	assert.NoError(t, err)

	require.NoError(t, svc.SetBanned(admin.ID, target.ID, false))
	got, err = svc.GetUserByID(target.ID)
	require.NoError(t, err)
	assert.False(t, got.Banned)
}

func TestSetBannedSelfForbidden(t *testing.T) {
	svc := newUserService(t)

	user, err := svc.Register("alice", "s3cret")
	require.NoError(t, err)

	err = svc.SetBanned(user.ID, user.ID, true)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))
}

func TestGetUserNotFound(t *testing.T) {
	svc := newUserService(t)

	_, err := svc.GetUserByID("missing")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	err = svc.SetBanned("someone", "missing", true)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}
