package helper

import (
	"crypto/rand"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

const (
	TemporaryPasswordLength = 12
	MinPasswordLength       = 8
)

const credentialAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPasswordHash(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// GenerateTemporaryPassword draws n characters from crypto/rand.
func GenerateTemporaryPassword(n int) (string, error) {
	if n <= 0 {
		n = TemporaryPasswordLength
	}
	max := big.NewInt(int64(len(credentialAlphabet)))
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = credentialAlphabet[idx.Int64()]
	}
	return string(out), nil
}
