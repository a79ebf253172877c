package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/wellfood-service/internal/domain"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 7*24*time.Hour)

	tests := []struct {
		name      string
		subjectID string
		role      domain.Role
		email     string
	}{
		{name: "user role", subjectID: "u1", role: domain.RoleUser, email: "a@b.com"},
		{name: "admin role", subjectID: "a1", role: domain.RoleAdmin, email: "admin@wellfood.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, exp, err := tm.GenerateToken(tt.subjectID, tt.role, tt.email)
			require.NoError(t, err)
			assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), exp, time.Minute)

			claims, err := tm.ParseToken(token)
			require.NoError(t, err)
			assert.Equal(t, tt.subjectID, claims.SubjectID)
			assert.Equal(t, tt.role, claims.Role)
			assert.Equal(t, tt.email, claims.Email)
			assert.WithinDuration(t, exp, claims.ExpiresAt.Time, time.Second)
		})
	}
}

func TestTokenManager_RejectsUnknownRole(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	_, _, err := tm.GenerateToken("u1", domain.Role("superuser"), "a@b.com")
	assert.Error(t, err)
}

func TestTokenManager_ExpiredToken(t *testing.T) {
	tm := &TokenManager{secret: []byte("test-secret"), ttl: -time.Hour}

	token, _, err := tm.GenerateToken("u1", domain.RoleUser, "a@b.com")
	require.NoError(t, err)

	_, err = tm.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_TamperedSignature(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, _, err := tm.GenerateToken("u1", domain.RoleUser, "a@b.com")
	require.NoError(t, err)

	// flip one character in the signature segment
	idx := strings.LastIndex(token, ".") + 1
	flipped := byte('A')
	if token[idx] == 'A' {
		flipped = 'B'
	}
	tampered := token[:idx] + string(flipped) + token[idx+1:]
	require.NotEqual(t, token, tampered)

	_, err = tm.ParseToken(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	other := NewTokenManager("other-secret", time.Hour)

	token, _, err := tm.GenerateToken("u1", domain.RoleUser, "a@b.com")
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_MalformedToken(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	for _, garbage := range []string{"", "garbage", "a.b.c"} {
		_, err := tm.ParseToken(garbage)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestNewTokenManager_DefaultTTL(t *testing.T) {
	tm := NewTokenManager("test-secret", 0)

	_, exp, err := tm.GenerateToken("u1", domain.RoleUser, "a@b.com")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), exp, time.Minute)
}
