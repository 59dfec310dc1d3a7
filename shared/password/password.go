package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is used for new hashes. Hashes made with a lower cost are
// upgraded on the next successful login.
const DefaultCost = bcrypt.DefaultCost

// maxLength is the bcrypt input limit. Longer secrets are rejected instead of
// being silently truncated.
const maxLength = 72

var (
	ErrEmptyPassword     = errors.New("password cannot be empty")
	ErrTooLong           = fmt.Errorf("password cannot be longer than %d bytes", maxLength)
	ErrInvalidPassword   = errors.New("invalid password")
	ErrHashingPassword   = errors.New("error hashing password")
	ErrVerifyingPassword = errors.New("error verifying password")
)

func Hash(password string) (string, error) {
	switch {
	case password == "":
		return "", ErrEmptyPassword
	case len(password) > maxLength:
		return "", ErrTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHashingPassword, err)
	}

	return string(hash), nil
}

// Verify returns ErrInvalidPassword when password does not match hash.
func Verify(password, hash string) error {
	if password == "" || hash == "" {
		return ErrInvalidPassword
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrInvalidPassword
	default:
		return fmt.Errorf("%w: %w", ErrVerifyingPassword, err)
	}
}

// NeedsRehash reports whether hash was made with a cost below DefaultCost or
// cannot be read at all.
func NeedsRehash(hash string) bool {
	cost, err := bcrypt.Cost([]byte(hash))

	return err != nil || cost < DefaultCost
}
