package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"citysafe/internal/domain"
	"citysafe/internal/repository"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestUserRepo(t *testing.T) repository.UserRepository {
	t.Helper()
	repo := NewUserRepository(newTestDB(t))
	require.NoError(t, repo.Init(context.Background()))
	return repo
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	repo := newTestUserRepo(t)
	ctx := context.Background()

	user := &domain.User{
		Email:        "a@x.com",
		Name:         "Alice",
		PasswordHash: "$2a$10$fakehash",
		Phone:        "111",
	}
	id, err := repo.Create(ctx, user)
	require.NoError(t, err)
	require.Positive(t, id)
	require.False(t, user.CreatedAt.IsZero())

	byEmail, err := repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.Equal(t, id, byEmail.ID)
	require.Equal(t, "Alice", byEmail.Name)
	require.Equal(t, "111", byEmail.Phone)
	require.Empty(t, byEmail.ExternalID)

	byID, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", byID.Email)

	_, err = repo.GetByID(ctx, id+100)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo := newTestUserRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.User{Email: "a@x.com", Name: "Alice", PasswordHash: "h"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &domain.User{Email: "a@x.com", Name: "Clone", PasswordHash: "h"})
	require.ErrorIs(t, err, repository.ErrConflict)
}

func TestUserRepository_DuplicateExternalID(t *testing.T) {
	repo := newTestUserRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.User{Email: "a@x.com", Name: "A", PasswordHash: "h", ExternalID: "g-1"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &domain.User{Email: "b@x.com", Name: "B", PasswordHash: "h", ExternalID: "g-1"})
	require.ErrorIs(t, err, repository.ErrConflict)

	// empty external ids must not collide
	_, err = repo.Create(ctx, &domain.User{Email: "c@x.com", Name: "C", PasswordHash: "h"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.User{Email: "d@x.com", Name: "D", PasswordHash: "h"})
	require.NoError(t, err)
}

func TestUserRepository_UpdateProfile(t *testing.T) {
	repo := newTestUserRepo(t)
	ctx := context.Background()

	aliceID, err := repo.Create(ctx, &domain.User{Email: "a@x.com", Name: "Alice", PasswordHash: "h", Phone: "111"})
	require.NoError(t, err)
	bobID, err := repo.Create(ctx, &domain.User{Email: "b@x.com", Name: "Bob", PasswordHash: "h"})
	require.NoError(t, err)

	require.NoError(t, repo.UpdateProfile(ctx, bobID, "Bobby", "bobby@x.com", "222"))
	bob, err := repo.GetByID(ctx, bobID)
	require.NoError(t, err)
	require.Equal(t, "Bobby", bob.Name)
	require.Equal(t, "bobby@x.com", bob.Email)
	require.Equal(t, "222", bob.Phone)

	// taking alice's email must fail and leave bob untouched
	err = repo.UpdateProfile(ctx, bobID, "Rob", "a@x.com", "222")
	require.ErrorIs(t, err, repository.ErrConflict)
	bob, err = repo.GetByID(ctx, bobID)
	require.NoError(t, err)
	require.Equal(t, "Bobby", bob.Name)
	require.Equal(t, "bobby@x.com", bob.Email)

	err = repo.UpdateProfile(ctx, aliceID+bobID+100, "Ghost", "g@x.com", "")
	require.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestUserRepository_InUseChecks(t *testing.T) {
	repo := newTestUserRepo(t)
	ctx := context.Background()

	aliceID, err := repo.Create(ctx, &domain.User{Email: "a@x.com", Name: "Alice", PasswordHash: "h", Phone: "111"})
	require.NoError(t, err)

	inUse, err := repo.EmailInUse(ctx, "a@x.com", 0)
	require.NoError(t, err)
	require.True(t, inUse)

	// a user's own row never counts against them
	inUse, err = repo.EmailInUse(ctx, "a@x.com", aliceID)
	require.NoError(t, err)
	require.False(t, inUse)

	inUse, err = repo.PhoneInUse(ctx, "111", 0)
	require.NoError(t, err)
	require.True(t, inUse)

	inUse, err = repo.PhoneInUse(ctx, "999", 0)
	require.NoError(t, err)
	require.False(t, inUse)
}

func TestUserRepository_SetProfilePicture(t *testing.T) {
	repo := newTestUserRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, &domain.User{Email: "a@x.com", Name: "Alice", PasswordHash: "h"})
	require.NoError(t, err)

	require.NoError(t, repo.SetProfilePicture(ctx, id, "s3://bucket/profile-pictures/1/pic.png"))
	user, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "s3://bucket/profile-pictures/1/pic.png", user.ProfilePic)
}
