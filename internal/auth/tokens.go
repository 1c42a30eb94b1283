// Package auth issues and verifies JWT access and refresh tokens and hashes passwords.
package auth

import (
	"errors"
	"fmt"
	"time"

	"forumapi/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenIssuer   = "forum-api"
	tokenAudience = "forum-client"
)

// ErrInvalidToken is returned for any token that fails parsing or verification.
var ErrInvalidToken = errors.New("invalid token")

// Identity is the payload carried by both token kinds.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// TokenManager signs access and refresh tokens with separate HMAC keys.
type TokenManager struct {
	accessKey  []byte
	refreshKey []byte
	accessAge  time.Duration
	refreshAge time.Duration
	now        func() time.Time
}

// NewTokenManager builds a TokenManager from the configured keys and lifetimes.
func NewTokenManager(cfg *config.Config) *TokenManager {
	return &TokenManager{
		accessKey:  []byte(cfg.AccessTokenKey),
		refreshKey: []byte(cfg.RefreshTokenKey),
		accessAge:  cfg.AccessTokenAge,
		refreshAge: cfg.RefreshTokenAge,
		now:        time.Now,
	}
}

// CreateAccessToken signs a short-lived token for bearer authentication.
func (m *TokenManager) CreateAccessToken(id Identity) (string, error) {
	return m.sign(id, m.accessKey, m.accessAge)
}

// CreateRefreshToken signs a long-lived token that can be exchanged for access tokens.
func (m *TokenManager) CreateRefreshToken(id Identity) (string, error) {
	return m.sign(id, m.refreshKey, m.refreshAge)
}

// VerifyAccessToken checks signature, lifetime, issuer and audience.
func (m *TokenManager) VerifyAccessToken(token string) (Identity, error) {
	return m.verify(token, m.accessKey)
}

// VerifyRefreshToken is VerifyAccessToken for the refresh key.
func (m *TokenManager) VerifyRefreshToken(token string) (Identity, error) {
	return m.verify(token, m.refreshKey)
}

func (m *TokenManager) sign(id Identity, key []byte, age time.Duration) (string, error) {
	if len(key) == 0 {
		return "", fmt.Errorf("token key not configured")
	}

	now := m.now()
	claims := jwt.MapClaims{
		"sub":      id.ID,
		"username": id.Username,
		"iss":      tokenIssuer,
		"aud":      tokenAudience,
		"exp":      now.Add(age).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      generateJTI(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

func (m *TokenManager) verify(tokenString string, key []byte) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return key, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return Identity{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	username, _ := claims["username"].(string)

	return Identity{ID: sub, Username: username}, nil
}

// generateJTI creates a unique JWT ID so two tokens issued in the same second differ.
func generateJTI(now time.Time) string {
	return fmt.Sprintf("%d-%s", now.Unix(), uuid.New().String()[:8])
}
