package service

import (
	"testing"

	"github.com/younger1612/Rd-storev1/internal/config"
	"github.com/younger1612/Rd-storev1/internal/dto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T) AuthService {
	t.Helper()
	svc, err := NewAuthService(&config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 8,
	})
	require.NoError(t, err)
	return svc
}

func TestLoginIssuesSignedToken(t *testing.T) {
	svc := newAuthFixture(t)

	resp, err := svc.Login(dto.LoginRequest{Username: "admin", Password: "password"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	token, err := jwt.Parse(resp.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)
	sub, err := token.Claims.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, "admin", sub)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuthFixture(t)

	_, err := svc.Login(dto.LoginRequest{Username: "admin", Password: "wrong"})
	assert.Error(t, err)

	_, err = svc.Login(dto.LoginRequest{Username: "root", Password: "password"})
	assert.Error(t, err)
}
