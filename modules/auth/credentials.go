package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultBcryptCost is the cost used when hashing passwords.
	DefaultBcryptCost = 12
)

// CredentialChecker decides whether a username/password pair identifies a
// subject. Implementations must not reveal which of the two fields mismatched.
type CredentialChecker interface {
	Check(username, password string) (subject string, ok bool)
}

// StaticCredentials checks against a single fixed credential pair using
// constant-time comparison. This is the exact-match behavior the login
// contract depends on.
type StaticCredentials struct {
	username string
	password string
}

// NewStaticCredentials creates a checker for the given credential pair.
func NewStaticCredentials(username, password string) *StaticCredentials {
	return &StaticCredentials{
		username: username,
		password: password,
	}
}

// Check compares both fields in constant time and returns the username as
// the subject on an exact match.
func (c *StaticCredentials) Check(username, password string) (string, bool) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(c.password)) == 1
	if userOK && passOK {
		return c.username, true
	}
	return "", false
}

// BcryptCredentials checks the password against a stored bcrypt hash. Swap
// this in for StaticCredentials when the plaintext comparison is not
// acceptable; callers only see the CredentialChecker interface.
type BcryptCredentials struct {
	username     string
	passwordHash string
}

// NewBcryptCredentials creates a checker for the given username and bcrypt
// password hash.
func NewBcryptCredentials(username, passwordHash string) *BcryptCredentials {
	return &BcryptCredentials{
		username:     username,
		passwordHash: passwordHash,
	}
}

// Check verifies the username and the password hash.
func (c *BcryptCredentials) Check(username, password string) (string, bool) {
	if subtle.ConstantTimeCompare([]byte(username), []byte(c.username)) != 1 {
		return "", false
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.passwordHash), []byte(password)); err != nil {
		return "", false
	}
	return c.username, true
}

// HashPassword generates a bcrypt hash suitable for BcryptCredentials.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), DefaultBcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}
