package service

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"citysafe/internal/auth"
	"citysafe/internal/repository"
	"citysafe/internal/repository/sqlite"
)

func newTestUserService(t *testing.T) (UserService, repository.UserRepository) {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	users := sqlite.NewUserRepository(db)
	require.NoError(t, users.Init(context.Background()))

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	tokens := auth.NewTokenService(key, &key.PublicKey, time.Hour)

	return NewUserService(users, auth.NewPasswordHasher(), tokens), users
}

func TestUserService_SignupAndLogin(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	result, err := svc.Signup(ctx, "A@X.com", "Alice", "password1", "")
	require.NoError(t, err)
	require.NotEmpty(t, result.AccessToken)
	require.Equal(t, "bearer", result.TokenType)
	require.Equal(t, "a@x.com", result.User.Email) // email is case-normalized
	require.Empty(t, result.User.PasswordHash)

	login, err := svc.Login(ctx, "a@x.com", "password1")
	require.NoError(t, err)
	require.NotEmpty(t, login.AccessToken)
}

func TestUserService_SignupDuplicateEmail(t *testing.T) {
	svc, users := newTestUserService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "a@x.com", "Alice", "password1", "")
	require.NoError(t, err)

	_, err = svc.Signup(ctx, "a@x.com", "Clone", "password2", "")
	require.ErrorIs(t, err, ErrEmailTaken)

	// the failed signup must not have created a second row
	user, err := users.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, "Alice", user.Name)
}

func TestUserService_LoginFailuresIndistinguishable(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "a@x.com", "Alice", "password1", "")
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, "a@x.com", "wrong-password")
	_, unknownEmail := svc.Login(ctx, "nobody@x.com", "password1")

	require.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	require.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	require.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestUserService_ConcurrentSignup(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	const attempts = 2
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Signup(ctx, "race@x.com", "Racer", "password1", "")
		}(i)
	}
	wg.Wait()

	var ok, conflict int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		default:
			require.ErrorIs(t, err, ErrEmailTaken)
			conflict++
		}
	}
	require.Equal(t, 1, ok, "exactly one signup must win")
	require.Equal(t, attempts-1, conflict)
}

func TestUserService_SignupValidation(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "", "Alice", "password1", "")
	require.Error(t, err)
	_, err = svc.Signup(ctx, "a@x.com", "", "password1", "")
	require.Error(t, err)
	_, err = svc.Signup(ctx, "a@x.com", "Alice", "", "")
	require.Error(t, err)
}

func TestUserService_UpdateProfile(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	alice, err := svc.Signup(ctx, "a@x.com", "Alice", "password1", "")
	require.NoError(t, err)
	bob, err := svc.Signup(ctx, "b@x.com", "Bob", "password1", "")
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, alice.User.ID, "Alice", "a@x.com", "111")
	require.NoError(t, err)
	require.Equal(t, "111", updated.Phone)

	// bob cannot take alice's email or phone
	_, err = svc.UpdateProfile(ctx, bob.User.ID, "Bob", "a@x.com", "")
	require.ErrorIs(t, err, ErrEmailTaken)
	_, err = svc.UpdateProfile(ctx, bob.User.ID, "Bobby", "b@x.com", "111")
	require.ErrorIs(t, err, ErrPhoneTaken)

	// failed updates must leave the row untouched
	current, err := svc.GetByID(ctx, bob.User.ID)
	require.NoError(t, err)
	require.Equal(t, "Bob", current.Name)
	require.Equal(t, "b@x.com", current.Email)
	require.Empty(t, current.Phone)

	// keeping your own email is not a conflict
	updated, err = svc.UpdateProfile(ctx, bob.User.ID, "Bobby", "b@x.com", "222")
	require.NoError(t, err)
	require.Equal(t, "Bobby", updated.Name)
	require.Equal(t, "222", updated.Phone)
}

func TestUserService_ExternalIdentitySignup(t *testing.T) {
	svc, users := newTestUserService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "a@x.com", "Alice", "password1", "google-123")
	require.NoError(t, err)

	user, err := users.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, "google-123", user.ExternalID)

	// the same external identity cannot register twice
	_, err = svc.Signup(ctx, "b@x.com", "Bob", "password1", "google-123")
	require.ErrorIs(t, err, ErrEmailTaken)
}
