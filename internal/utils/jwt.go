package utils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pandhuwib/go-blog-api/internal/model"
)

// ErrInvalidToken is returned for any structural, signature or expiry
// violation. Callers never learn which check failed.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the signed identity payload: the user record minus the password
// hash, plus the registered expiry/issued-at claims.
type Claims struct {
	UserID       int     `json:"id"`
	UserRoleID   int     `json:"userRoleId"`
	UserStatusID int     `json:"userStatusId"`
	Username     string  `json:"username"`
	Name         string  `json:"name"`
	Photo        *string `json:"photo"`
	Email        string  `json:"email"`
	jwt.RegisteredClaims
}

// UserToken is the issued bearer credential as returned to clients.
type UserToken struct {
	Type      string    `json:"type"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// NewUserToken signs an HS256 token for the user, valid for ttlDays. Every
// token carries a random jti, so repeated issuance for the same user always
// yields a distinct token string even within one second.
func NewUserToken(secret string, u model.User, ttlDays int) (UserToken, error) {
	jti := make([]byte, 16)
	if _, err := rand.Read(jti); err != nil {
		return UserToken{}, err
	}

	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlDays) * 24 * time.Hour)
	claims := Claims{
		UserID:       u.ID,
		UserRoleID:   u.UserRoleID,
		UserStatusID: u.UserStatusID,
		Username:     u.Username,
		Name:         u.Name,
		Photo:        u.Photo,
		Email:        u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        hex.EncodeToString(jti),
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return UserToken{}, err
	}
	return UserToken{Type: "bearer", Token: signed, ExpiresAt: exp}, nil
}

// VerifyUserToken checks signature and expiry and returns the claims. Any
// violation yields ErrInvalidToken; a token is never partially trusted.
func VerifyUserToken(secret, raw string) (Claims, error) {
	var claims Claims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}
