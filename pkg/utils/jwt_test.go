package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndDecodeJWT(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateJWT(jwt.MapClaims{"id": "some-id"}, secret, time.Minute)
	require.NoError(t, err)

	claims, err := DecodeJWT(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "some-id", claims["id"])
}

func TestDecodeJWT_WrongSecret(t *testing.T) {
	token, err := GenerateJWT(jwt.MapClaims{"id": "some-id"}, []byte("right"), time.Minute)
	require.NoError(t, err)

	_, err = DecodeJWT(token, []byte("wrong"))
	assert.Error(t, err)
}

func TestDecodeJWT_Expired(t *testing.T) {
	token, err := GenerateJWT(jwt.MapClaims{"id": "some-id"}, []byte("secret"), -time.Minute)
	require.NoError(t, err)

	_, err = DecodeJWT(token, []byte("secret"))
	assert.Error(t, err)
}
