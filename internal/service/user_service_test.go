package service

import (
	"context"
	"testing"
	"time"

	"quicknotes-be/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	authSvc := NewAuthService(newFakeFactory(users, newFakeNoteRepo()), testAuthConfig(), nopLogger{})
	userSvc := NewUserService(newFakeFactory(users, newFakeNoteRepo()), newFakeCache(), nopLogger{})

	reg, err := authSvc.Register(ctx, &dto.RegisterRequest{Email: "a@b.com", Password: "original-pw"})
	require.NoError(t, err)

	err = userSvc.ChangePassword(ctx, reg.User.Id, &dto.ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "next-pw",
	})
	require.Error(t, err)

	err = userSvc.ChangePassword(ctx, reg.User.Id, &dto.ChangePasswordRequest{
		CurrentPassword: "original-pw",
		NewPassword:     "next-pw",
	})
	require.NoError(t, err)

	// Old credential is dead, new one works.
	_, err = authSvc.Login(ctx, &dto.LoginRequest{Email: "a@b.com", Password: "original-pw"})
	require.Error(t, err)
	_, err = authSvc.Login(ctx, &dto.LoginRequest{Email: "a@b.com", Password: "next-pw"})
	require.NoError(t, err)
}

func TestDeleteAccountRemovesNotesAndCache(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	notes := newFakeNoteRepo()
	c := newFakeCache()
	authSvc := NewAuthService(newFakeFactory(users, notes), testAuthConfig(), nopLogger{})
	noteSvc := NewNoteService(newFakeFactory(users, notes), c, nopLogger{}, time.Minute, time.Minute, time.Minute)
	userSvc := NewUserService(newFakeFactory(users, notes), c, nopLogger{})

	reg, err := authSvc.Register(ctx, &dto.RegisterRequest{Email: "a@b.com", Password: "hunter22"})
	require.NoError(t, err)
	userId := reg.User.Id

	_, err = noteSvc.Create(ctx, userId, &dto.CreateNoteRequest{Title: "one"})
	require.NoError(t, err)
	_, err = noteSvc.List(ctx, userId, &dto.ListNotesQuery{Limit: 50})
	require.NoError(t, err)
	require.NotEmpty(t, c.keys())

	require.NoError(t, userSvc.DeleteAccount(ctx, userId))

	assert.Empty(t, users.users)
	assert.Empty(t, notes.notes)
	assert.Empty(t, c.keys())

	_, err = userSvc.Profile(ctx, userId)
	require.Error(t, err)
}

func TestProfileUnknownUser(t *testing.T) {
	userSvc := NewUserService(newFakeFactory(newFakeUserRepo(), newFakeNoteRepo()), newFakeCache(), nopLogger{})
	_, err := userSvc.Profile(context.Background(), uuid.New())
	require.Error(t, err)
}

func TestCounts(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	notes := newFakeNoteRepo()
	userSvc := NewUserService(newFakeFactory(users, notes), newFakeCache(), nopLogger{})

	userId := uuid.New()
	require.NoError(t, users.Create(ctx, userEntity(userId, "a@b.com")))
	seedNote(notes, userId, "x", nil)
	seedNote(notes, userId, "y", nil)

	u, n, err := userSvc.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), u)
	assert.Equal(t, int64(2), n)
}
