package admin

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrAuthUnconfigured is returned when neither a password nor a hash is set.
var ErrAuthUnconfigured = errors.New("admin: no password or password hash configured")

// Credentials holds the single admin login. The password is only ever kept as
// a bcrypt hash.
type Credentials struct {
	username     string
	passwordHash []byte
}

// NewCredentials builds credentials from config. passwordHash takes precedence;
// a plaintext password is hashed at startup so the comparison path is always
// bcrypt.
func NewCredentials(username, password, passwordHash string) (*Credentials, error) {
	if username == "" {
		return nil, errors.New("admin: username required")
	}
	if passwordHash != "" {
		if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
			return nil, fmt.Errorf("admin: invalid password hash: %w", err)
		}
		return &Credentials{username: username, passwordHash: []byte(passwordHash)}, nil
	}
	if password == "" {
		return nil, ErrAuthUnconfigured
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("admin: hash password: %w", err)
	}
	return &Credentials{username: username, passwordHash: hash}, nil
}

// Check reports whether the supplied login matches.
func (c *Credentials) Check(username, password string) bool {
	if c == nil {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(c.username), []byte(username)) == 1
	passOK := bcrypt.CompareHashAndPassword(c.passwordHash, []byte(password)) == nil
	return userOK && passOK
}
