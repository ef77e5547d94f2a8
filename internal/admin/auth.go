// Package admin gates the admin panel behind the shared passcode and keeps
// the helpers the panel uses to draft and export tournament documents.
package admin

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidPasscode = errors.New("invalid passcode")
	ErrNoSession       = errors.New("no valid admin session")
)

// Authenticator checks passcodes against the configured one. There is no
// lockout and no rate limit.
type Authenticator struct {
	hash []byte
}

func NewAuthenticator(passcode string) (*Authenticator, error) {
	if passcode == "" {
		return nil, errors.New("admin passcode is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing admin passcode: %w", err)
	}
	return &Authenticator{hash: hash}, nil
}

func (a *Authenticator) Verify(passcode string) error {
	if err := bcrypt.CompareHashAndPassword(a.hash, []byte(passcode)); err != nil {
		return ErrInvalidPasscode
	}
	return nil
}
