package auth_test

import (
	"testing"
	"time"

	"github.com/campusmart/marketplace/internal/adapter/auth"
	"github.com/campusmart/marketplace/internal/adapter/config"
	"github.com/campusmart/marketplace/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasetoToken_RoundTrip(t *testing.T) {
	ts, err := auth.New(&config.Auth{TokenTTL: time.Hour})
	require.NoError(t, err)

	token, err := ts.CreateToken(&domain.User{ID: "u1"})
	require.NoError(t, err)

	payload, err := ts.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", payload.UserID)
}

func TestPasetoToken_Invalid(t *testing.T) {
	ts, err := auth.New(nil)
	require.NoError(t, err)
	other, err := auth.New(nil)
	require.NoError(t, err)

	token, err := other.CreateToken(&domain.User{ID: "u1"})
	require.NoError(t, err)

	_, err = ts.VerifyToken(token)
	assert.Equal(t, domain.ErrInvalidToken, err)

	_, err = ts.VerifyToken("garbage")
	assert.Equal(t, domain.ErrInvalidToken, err)
}

func TestPasetoToken_BadKey(t *testing.T) {
	_, err := auth.New(&config.Auth{TokenKey: "zz"})
	assert.Error(t, err)
}

func TestPasetoToken_CarriesRole(t *testing.T) {
	ts, err := auth.New(nil)
	require.NoError(t, err)

	token, err := ts.CreateToken(&domain.User{ID: "a1", Type: domain.UserTypeAdmin})
	require.NoError(t, err)

	payload, err := ts.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "a1", payload.UserID)
	assert.Equal(t, domain.UserTypeAdmin, payload.Role)
}
