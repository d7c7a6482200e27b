package account

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// NormalizeUsername lowercases username and turns a bare name into an internal email address.
func NormalizeUsername(username string) string {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || strings.Contains(username, "@") {
		return username
	}
	return username + "@" + InternalDomain
}

// IsInternal reports whether email was derived from a bare username.
func IsInternal(email string) bool {
	return strings.HasSuffix(email, "@"+InternalDomain)
}

func hashSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func verifySecret(hash, secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}

func newSessionToken() (string, error) {
	token := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(token); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(token), nil
}

func newResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
