// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"fmt"
	"strings"
	"unicode"

	"storefront/config"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/errors"

	"golang.org/x/crypto/bcrypt"
)

const (
	defaultMinPasswordLength = 8
	defaultMaxPasswordLength = 128
	minSimilarityLength      = 3
)

var defaultForbiddenWords = []string{"password", "qwerty", "letmein", "123456"}

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost  int
	rules config.PasswordStrengthConfig
}

// NewBcryptHasher builds the hasher from the auth and passwordStrength config sections.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg.Auth != nil && cfg.Auth.BcryptCost > 0 {
		cost = cfg.Auth.BcryptCost
	}

	return newBcryptHasher(cost, cfg.PasswordStrength)
}

// NewBcryptHasherWithCost creates a hasher with a custom cost and default strength rules.
func NewBcryptHasherWithCost(cost int) service.PasswordHasher {
	return newBcryptHasher(cost, nil)
}

func newBcryptHasher(cost int, rules *config.PasswordStrengthConfig) *bcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	h := &bcryptHasher{cost: cost}
	if rules != nil {
		h.rules = *rules
	}
	if h.rules.MinLength <= 0 {
		h.rules.MinLength = defaultMinPasswordLength
	}
	if h.rules.MaxLength <= 0 {
		h.rules.MaxLength = defaultMaxPasswordLength
	}
	if h.rules.ForbiddenWords == nil {
		h.rules.ForbiddenWords = defaultForbiddenWords
	}

	return h
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt automatically handles salt generation.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	return err == nil
}

// ValidatePasswordStrength checks the password against the configured rules.
// Every violated rule contributes one message.
func (h *bcryptHasher) ValidatePasswordStrength(password, username string) []string {
	var problems []string

	length := len([]rune(password))
	if length < h.rules.MinLength {
		problems = append(problems, fmt.Sprintf(
			"This password is too short. It must contain at least %d characters.", h.rules.MinLength))
	}
	if length > h.rules.MaxLength {
		problems = append(problems, fmt.Sprintf(
			"This password is too long. It must contain at most %d characters.", h.rules.MaxLength))
	}
	if h.rules.RequireUppercase && !h.hasUppercase(password) {
		problems = append(problems, "This password must contain at least one uppercase letter.")
	}
	if h.rules.RequireLowercase && !h.hasLowercase(password) {
		problems = append(problems, "This password must contain at least one lowercase letter.")
	}
	if h.rules.RequireNumbers && !h.hasNumbers(password) {
		problems = append(problems, "This password must contain at least one number.")
	}
	if h.rules.RequireSpecial && !h.hasSpecialChars(password) {
		problems = append(problems, "This password must contain at least one special character.")
	}
	if password != "" && h.isEntirelyNumeric(password) {
		problems = append(problems, "This password is entirely numeric.")
	}
	if h.isSimilarToUsername(password, username) {
		problems = append(problems, "The password is too similar to the username.")
	}
	if h.containsForbiddenWords(password, h.rules.ForbiddenWords) {
		problems = append(problems, "This password is too common.")
	}

	return problems
}

func (h *bcryptHasher) hasUppercase(s string) bool {
	return strings.IndexFunc(s, unicode.IsUpper) >= 0
}

func (h *bcryptHasher) hasLowercase(s string) bool {
	return strings.IndexFunc(s, unicode.IsLower) >= 0
}

func (h *bcryptHasher) hasNumbers(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

func (h *bcryptHasher) hasSpecialChars(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r)
	}) >= 0
}

func (h *bcryptHasher) isEntirelyNumeric(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) }) < 0
}

func (h *bcryptHasher) isSimilarToUsername(password, username string) bool {
	p := strings.ToLower(password)
	u := strings.ToLower(strings.TrimSpace(username))
	if len(u) < minSimilarityLength || len(p) < minSimilarityLength {
		return false
	}

	return strings.Contains(p, u) || strings.Contains(u, p)
}

func (h *bcryptHasher) containsForbiddenWords(s string, words []string) bool {
	lower := strings.ToLower(s)
	for _, word := range words {
		word = strings.ToLower(strings.TrimSpace(word))
		if word != "" && strings.Contains(lower, word) {
			return true
		}
	}

	return false
}
