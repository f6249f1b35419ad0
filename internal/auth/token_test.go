package auth

import (
	"errors"
	"testing"
	"time"

	"propmatch_backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *models.User {
	return &models.User{BaseModel: models.BaseModel{ID: "user-1"}, Email: "c@example.com", Role: models.UserRoleCustomer}
}

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("secret", "propmatch", "clients", time.Hour)

	token, expiresAt, err := m.Issue(testUser())
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	p, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", p.UserID)
	assert.Equal(t, "c@example.com", p.Email)
	assert.Equal(t, models.UserRoleCustomer, p.Role)
}

func TestTokenRejected(t *testing.T) {
	issuer := NewTokenManager("secret", "propmatch", "clients", time.Hour)
	token, _, err := issuer.Issue(testUser())
	require.NoError(t, err)

	expired := NewTokenManager("secret", "propmatch", "clients", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1", Issuer: "propmatch"},
		Role:             models.UserRoleAdmin,
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name    string
		manager *TokenManager
		token   string
	}{
		{"wrong secret", NewTokenManager("other", "propmatch", "clients", time.Hour), token},
		{"wrong issuer", NewTokenManager("secret", "someone-else", "clients", time.Hour), token},
		{"wrong audience", NewTokenManager("secret", "propmatch", "browsers", time.Hour), token},
		{"expired", expired, token},
		{"alg none", issuer, noneToken},
		{"garbage", issuer, "not.a.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.manager.Parse(tt.token)
			assert.True(t, errors.Is(err, ErrInvalidToken), "got %v", err)
		})
	}
}

func TestTokenWithUnknownRole(t *testing.T) {
	m := NewTokenManager("secret", "propmatch", "clients", time.Hour)
	token, _, err := m.Issue(&models.User{BaseModel: models.BaseModel{ID: "u"}, Role: "Landlord"})
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCan(t *testing.T) {
	assert.True(t, Can(models.UserRoleCustomer, CapCreateJob))
	assert.False(t, Can(models.UserRoleProfessional, CapCreateJob))
	assert.False(t, Can(models.UserRoleAdmin, CapCreateJob))
	assert.True(t, Can(models.UserRoleAdmin, CapVerifyProfessionals))
	assert.True(t, Can(models.UserRoleProfessional, CapViewApplicableJobs))
	assert.False(t, Can("Landlord", CapViewOwnProfile))

	p := &Principal{UserID: "a", Role: models.UserRoleAdmin}
	assert.True(t, p.IsAdmin())
	assert.True(t, p.Can(CapAdminRead))
}

func TestPasswords(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("password123", hash))
	assert.False(t, CheckPasswordHash("password124", hash))

	assert.Error(t, ValidatePassword("short"))
	assert.Error(t, ValidatePassword(string(make([]byte, 73))))
	assert.NoError(t, ValidatePassword("long enough"))
}
