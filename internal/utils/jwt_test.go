package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundtrip(t *testing.T) {
	InitJWT("unit-test-secret")

	token, err := GenerateJWT(7, "staff@loomline.in", "accountant", "Meera Iyer")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "staff@loomline.in", claims.Email)
	assert.Equal(t, "accountant", claims.Role)
	assert.Equal(t, "Meera Iyer", claims.FullName)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	InitJWT("secret-a")
	token, err := GenerateJWT(1, "staff@loomline.in", "super_admin", "A")
	require.NoError(t, err)

	InitJWT("secret-b")
	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestJWTRejectsGarbage(t *testing.T) {
	InitJWT("unit-test-secret")

	_, err := ValidateJWT("not.a.token")
	assert.Error(t, err)
}

func TestJWTRequiresInit(t *testing.T) {
	InitJWT("")

	_, err := GenerateJWT(1, "a@b.c", "super_admin", "A")
	assert.Error(t, err)

	_, err = ValidateJWT("whatever")
	assert.Error(t, err)
}
