package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt-testing"

func TestGenerateToken(t *testing.T) {
	token, claims, err := GenerateToken("admin", "admin", testSecret, 15*time.Minute)
	require.NoError(t, err)

	assert.NotEmpty(t, token)
	assert.Equal(t, "admin", claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.True(t, claims.IssuedAt.Before(claims.ExpiresAt.Time))

	other, otherClaims, err := GenerateToken("admin", "admin", testSecret, 15*time.Minute)
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
	assert.NotEqual(t, claims.ID, otherClaims.ID)
}

func TestValidateToken(t *testing.T) {
	token, _, err := GenerateToken("admin", "admin", testSecret, 15*time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		secret  string
		wantErr error
	}{
		{"valid token", token, testSecret, nil},
		{"invalid secret", token, "wrong-secret", ErrInvalidToken},
		{"invalid token format", "invalid.token.format", testSecret, ErrInvalidToken},
		{"empty token", "", testSecret, ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := ValidateToken(tt.token, tt.secret)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "admin", claims.Subject)
			assert.Equal(t, "admin", claims.Role)
		})
	}
}

func TestExpiredToken(t *testing.T) {
	token, _, err := GenerateToken("admin", "admin", testSecret, time.Nanosecond)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	claims, err := ValidateToken(token, testSecret)
	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.Nil(t, claims)
}
