// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrNoCredentials   = errors.New("no admin password configured")
)

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// HashIP creates a one-way hash of an IP address so submissions can be
// correlated in logs without recording the address
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:8])
}

// HashPassword returns a bcrypt hash of the password
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Credentials holds the moderator password hash
type Credentials struct {
	hash []byte
}

// NewCredentials builds credentials from a bcrypt hash, or from a plain
// password hashed on the spot when no hash is given
func NewCredentials(password, hash string) (Credentials, error) {
	if hash != "" {
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return Credentials{}, fmt.Errorf("invalid password hash: %w", err)
		}
		return Credentials{hash: []byte(hash)}, nil
	}
	if password == "" {
		return Credentials{}, ErrNoCredentials
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{hash: []byte(hashed)}, nil
}

// Check compares a login attempt against the stored hash
func (c Credentials) Check(password string) error {
	if len(c.hash) == 0 {
		return ErrNoCredentials
	}
	if err := bcrypt.CompareHashAndPassword(c.hash, []byte(password)); err != nil {
		return ErrInvalidPassword
	}
	return nil
}
