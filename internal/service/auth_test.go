package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-storefront/internal/apperr"
	"go-storefront/internal/config"
	"go-storefront/internal/model"
	"go-storefront/internal/repository"
)

func newAuthService(t *testing.T) AuthService {
	t.Helper()

	db := newTestDB(t)
	return NewAuthService(repository.NewUserRepository(db), &config.Auth{
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
	})
}

func TestAuth_RegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "jane", "jane@example.com", "s3cret"))

	user, token, err := svc.Login(ctx, "jane@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "jane", user.UserName)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.NotEmpty(t, user.ID)
	assert.NotEmpty(t, token)

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, model.RoleUser, claims.Role)
}

func TestAuth_RegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "jane", "jane@example.com", "s3cret"))

	err := svc.Register(ctx, "jane2", "jane@example.com", "other")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, "User already exists with the same email! Please try again", apperr.MessageOf(err))
}

func TestAuth_RegisterRequiresAllFields(t *testing.T) {
	svc := newAuthService(t)

	err := svc.Register(context.Background(), "jane", "", "s3cret")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestAuth_LoginUnknownUser(t *testing.T) {
	svc := newAuthService(t)

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "pw")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, "User doesn't exist! Please register first", apperr.MessageOf(err))
}

func TestAuth_LoginWrongPassword(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "jane", "jane@example.com", "s3cret"))

	_, _, err := svc.Login(ctx, "jane@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, "Incorrect password! Please try again", apperr.MessageOf(err))
}

func TestAuth_ParseTokenRejectsGarbage(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.ParseToken("not-a-jwt")
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestAuth_ParseTokenRejectsForeignSignature(t *testing.T) {
	db := newTestDB(t)
	users := repository.NewUserRepository(db)

	issuer := NewAuthService(users, &config.Auth{JWTSecret: "secret-a", TokenTTL: time.Hour})
	verifier := NewAuthService(users, &config.Auth{JWTSecret: "secret-b", TokenTTL: time.Hour})

	ctx := context.Background()
	require.NoError(t, issuer.Register(ctx, "jane", "jane@example.com", "s3cret"))
	_, token, err := issuer.Login(ctx, "jane@example.com", "s3cret")
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestAuth_ExpiredTokenRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(repository.NewUserRepository(db), &config.Auth{
		JWTSecret: "test-secret",
		TokenTTL:  -time.Minute,
	})

	ctx := context.Background()
	require.NoError(t, svc.Register(ctx, "jane", "jane@example.com", "s3cret"))
	_, token, err := svc.Login(ctx, "jane@example.com", "s3cret")
	require.NoError(t, err)

	_, err = svc.ParseToken(token)
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}
