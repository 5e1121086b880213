package service

import (
	"context"
	"testing"
	"time"

	"quicknotes-be/internal/dto"
	"quicknotes-be/internal/pkg/serverutils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(users *fakeUserRepo) IAuthService {
	return NewAuthService(newFakeFactory(users, newFakeNoteRepo()), testAuthConfig(), nopLogger{})
}

func TestRegisterIssuesTokenWithClaims(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	svc := newAuthService(users)

	res, err := svc.Register(ctx, &dto.RegisterRequest{Email: "a@b.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", res.User.Email)
	require.NotEmpty(t, res.Token)

	token, err := jwt.Parse(res.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, res.User.Id.String(), claims["user_id"])
	assert.Equal(t, "a@b.com", claims["email"])
	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp.Time, time.Minute)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(newFakeUserRepo())

	_, err := svc.Register(ctx, &dto.RegisterRequest{Email: "a@b.com", Password: "hunter22"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, &dto.RegisterRequest{Email: "a@b.com", Password: "other-pass"})
	require.Error(t, err)
	appErr, ok := err.(*serverutils.AppError)
	require.True(t, ok)
	assert.Equal(t, 409, appErr.Status)
}

func TestLoginRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(newFakeUserRepo())

	reg, err := svc.Register(ctx, &dto.RegisterRequest{Email: "a@b.com", Password: "hunter22"})
	require.NoError(t, err)

	res, err := svc.Login(ctx, &dto.LoginRequest{Email: "a@b.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.Id, res.User.Id)
	assert.NotEmpty(t, res.Token)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(newFakeUserRepo())

	_, err := svc.Register(ctx, &dto.RegisterRequest{Email: "a@b.com", Password: "hunter22"})
	require.NoError(t, err)

	_, wrongPass := svc.Login(ctx, &dto.LoginRequest{Email: "a@b.com", Password: "wrong"})
	_, unknownEmail := svc.Login(ctx, &dto.LoginRequest{Email: "nobody@b.com", Password: "hunter22"})

	require.Error(t, wrongPass)
	require.Error(t, unknownEmail)
	assert.Equal(t, wrongPass.Error(), unknownEmail.Error())

	appErr, ok := wrongPass.(*serverutils.AppError)
	require.True(t, ok)
	assert.Equal(t, 401, appErr.Status)
}

func TestVerify(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	svc := newAuthService(users)

	reg, err := svc.Register(ctx, &dto.RegisterRequest{Email: "a@b.com", Password: "hunter22"})
	require.NoError(t, err)

	res, err := svc.Verify(ctx, reg.Token)
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, reg.User.Id, res.User.Id)

	_, err = svc.Verify(ctx, "")
	require.Error(t, err)
	assert.Equal(t, 401, err.(*serverutils.AppError).Status)

	_, err = svc.Verify(ctx, "not.a.token")
	require.Error(t, err)
	assert.Equal(t, 401, err.(*serverutils.AppError).Status)
}

func TestVerifyTokenForDeletedUser(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	svc := newAuthService(users)

	reg, err := svc.Register(ctx, &dto.RegisterRequest{Email: "a@b.com", Password: "hunter22"})
	require.NoError(t, err)

	require.NoError(t, users.Delete(ctx, reg.User.Id))

	_, err = svc.Verify(ctx, reg.Token)
	require.Error(t, err)
	assert.Equal(t, 401, err.(*serverutils.AppError).Status)
}

func TestPasswordsAreStoredHashed(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	svc := newAuthService(users)

	reg, err := svc.Register(ctx, &dto.RegisterRequest{Email: "a@b.com", Password: "hunter22"})
	require.NoError(t, err)

	stored := users.users[reg.User.Id]
	require.NotNil(t, stored)
	assert.NotContains(t, stored.PasswordHash, "hunter22")
	assert.Contains(t, stored.PasswordHash, "$2a$")
}
