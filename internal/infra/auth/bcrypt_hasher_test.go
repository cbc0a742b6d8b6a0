package auth

import (
	"strings"
	"testing"

	"storefront/config"
	domainerrors "storefront/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func strictConfig() *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost},
		PasswordStrength: &config.PasswordStrengthConfig{
			MinLength:        8,
			MaxLength:        64,
			RequireUppercase: true,
			RequireLowercase: true,
			RequireNumbers:   true,
			RequireSpecial:   true,
			ForbiddenWords:   []string{"password", "admin"},
		},
	}
}

func TestBcryptHasher_Check(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)
	password := "StrongPass123!"

	hash, err := hasher.Hash(password)
	require.NoError(t, err)
	assert.NotEqual(t, password, hash)

	assert.True(t, hasher.Check(password, hash))
	assert.False(t, hasher.Check("WrongPassword123!", hash))
	assert.False(t, hasher.Check("", hash))
	assert.False(t, hasher.Check(password, "invalid_hash"))
}

func TestBcryptHasher_UsesConfiguredCost(t *testing.T) {
	hasher := NewBcryptHasher(strictConfig())

	hash, err := hasher.Hash("StrongPass123!")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestBcryptHasher_InvalidCostFallsBackToDefault(t *testing.T) {
	hasher := newBcryptHasher(99, nil)
	assert.Equal(t, bcrypt.DefaultCost, hasher.cost)
}

func TestBcryptHasher_HashRejectsOverlongInput(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	_, err := hasher.Hash(strings.Repeat("a", 100))
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordHashFailed))
}

func TestBcryptHasher_ValidatePasswordStrength(t *testing.T) {
	hasher := NewBcryptHasher(strictConfig())

	for _, password := range []string{"StrongPass123!", "MySecure@Pass1", "Pässphräse123!"} {
		assert.Empty(t, hasher.ValidatePasswordStrength(password, "alice"), password)
	}

	testCases := []struct {
		password string
		username string
		expected string
	}{
		{"Ab1!", "", "too short"},
		{"PASSWORD123!", "", "lowercase letter"},
		{"pass123!word", "", "uppercase letter"},
		{"StrongPass!", "", "one number"},
		{"StrongPass123", "", "special character"},
		{"MyAdmin123!", "", "too common"},
		{"Alice2024!x", "alice", "too similar"},
	}

	for _, tc := range testCases {
		t.Run(tc.password, func(t *testing.T) {
			problems := hasher.ValidatePasswordStrength(tc.password, tc.username)
			require.NotEmpty(t, problems)
			assert.Contains(t, strings.Join(problems, " "), tc.expected)
		})
	}
}

func TestBcryptHasher_DefaultRules(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{})

	assert.Empty(t, hasher.ValidatePasswordStrength("correct horse battery", "bob"))
	assert.Contains(t, hasher.ValidatePasswordStrength("12345987", ""), "This password is entirely numeric.")
	assert.Contains(t, hasher.ValidatePasswordStrength("short", ""),
		"This password is too short. It must contain at least 8 characters.")
	assert.Contains(t, hasher.ValidatePasswordStrength("mypassword", ""), "This password is too common.")
}

func TestBcryptHasher_Helpers(t *testing.T) {
	hasher := &bcryptHasher{}

	assert.True(t, hasher.hasUppercase("Password"))
	assert.False(t, hasher.hasUppercase("password"))
	assert.True(t, hasher.hasLowercase("Password"))
	assert.False(t, hasher.hasLowercase("PASSWORD"))
	assert.True(t, hasher.hasNumbers("Password123"))
	assert.False(t, hasher.hasNumbers("Password"))
	assert.True(t, hasher.hasSpecialChars("Password!"))
	assert.False(t, hasher.hasSpecialChars("Pass word"))
	assert.True(t, hasher.isEntirelyNumeric("0042"))
	assert.False(t, hasher.isEntirelyNumeric("0042a"))
	assert.False(t, hasher.isSimilarToUsername("anything", "al"))

	forbidden := []string{"password", "admin"}
	assert.True(t, hasher.containsForbiddenWords("MyPassword123", forbidden))
	assert.True(t, hasher.containsForbiddenWords("AdminUser", forbidden))
	assert.False(t, hasher.containsForbiddenWords("SecurePass123", forbidden))
}
