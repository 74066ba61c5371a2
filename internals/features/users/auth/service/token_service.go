package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"campusvibe_backend/internals/configs"
	userModel "campusvibe_backend/internals/features/users/user/model"
)

var ErrMissingSecret = errors.New("JWT_SECRET is not configured")

func jwtSecret() ([]byte, error) {
	if configs.JWTSecret == "" {
		return nil, ErrMissingSecret
	}
	return []byte(configs.JWTSecret), nil
}

func accessTTL() time.Duration {
	if configs.JWTTTL > 0 {
		return configs.JWTTTL
	}
	return 24 * time.Hour
}

// IssueAccessToken signs an HS256 token carrying the user id and role.
// The role claim is informational; the middleware always reloads the user.
func IssueAccessToken(user *userModel.UserModel, now time.Time) (string, time.Time, error) {
	secret, err := jwtSecret()
	if err != nil {
		return "", time.Time{}, err
	}
	exp := now.Add(accessTTL())
	claims := jwt.MapClaims{
		"id":   user.ID,
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  exp.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// ParseAccessToken verifies signature and expiry and returns the user id.
func ParseAccessToken(raw string) (uint, error) {
	secret, err := jwtSecret()
	if err != nil {
		return 0, err
	}

	claims := jwt.MapClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !tok.Valid {
		return 0, fmt.Errorf("invalid token: %w", err)
	}

	switch v := claims["id"].(type) {
	case float64:
		if v > 0 {
			return uint(v), nil
		}
	}
	return 0, errors.New("token has no user id")
}
