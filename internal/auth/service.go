// Package auth implements the admin gate: a single shared password checked
// at login, exchanged for a signed session token.
package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// TokenExpiry is how long an admin session token stays valid.
const TokenExpiry = 24 * time.Hour

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrNotConfigured      = errors.New("admin password is not configured")
)

const jwtSecretSettingKey = "admin_jwt_secret"

// Service validates the admin password and issues session tokens.
type Service struct {
	adminPassword string
	jwtSecret     []byte
}

// NewService creates the auth service. adminPassword may be plaintext or a
// bcrypt hash. If jwtSecret is empty a secret is loaded from the settings
// table, generated and persisted on first use.
func NewService(db *sql.DB, adminPassword, jwtSecret string) (*Service, error) {
	secret := []byte(jwtSecret)

	if len(secret) == 0 {
		var err error
		secret, err = loadOrGenerateSecret(db)
		if err != nil {
			return nil, err
		}
	}

	return &Service{
		adminPassword: adminPassword,
		jwtSecret:     secret,
	}, nil
}

func loadOrGenerateSecret(db *sql.DB) ([]byte, error) {
	var value string
	err := db.QueryRowContext(context.Background(),
		"SELECT value FROM settings WHERE key = ?", jwtSecretSettingKey).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return generateAndPersistSecret(db)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load JWT secret: %w", err)
	}

	secret, err := hex.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("failed to decode stored JWT secret: %w", err)
	}
	return secret, nil
}

func generateAndPersistSecret(db *sql.DB) ([]byte, error) {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("failed to generate JWT secret: %w", err)
	}

	_, err := db.ExecContext(context.Background(),
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		jwtSecretSettingKey, hex.EncodeToString(secret))
	if err != nil {
		return nil, fmt.Errorf("failed to persist JWT secret: %w", err)
	}
	return secret, nil
}

// Login verifies the admin password and returns a session token. There is no
// lockout or backoff; a wrong password simply re-prompts.
func (s *Service) Login(password string) (string, error) {
	if s.adminPassword == "" {
		return "", ErrNotConfigured
	}
	if !s.verifyPassword(password) {
		return "", ErrInvalidCredentials
	}
	return s.issueToken()
}

func (s *Service) verifyPassword(password string) bool {
	if strings.HasPrefix(s.adminPassword, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(s.adminPassword), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(s.adminPassword), []byte(password)) == 1
}

func (s *Service) issueToken() (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(TokenExpiry)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken checks a session token and returns ErrInvalidToken unless it
// is a currently valid admin token.
func (s *Service) ValidateToken(tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.jwtSecret, nil
		})
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject != "admin" {
		return ErrInvalidToken
	}
	return nil
}
