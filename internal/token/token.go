// Package token issues and verifies the signed session tokens asserting a
// member identity. Verification never touches the store; everything needed
// is embedded in the claims.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"corkboard/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	issuer   = "corkboard-api"
	audience = "corkboard-web"
	tokenTTL = 24 * time.Hour
)

// ErrInvalidToken covers every verification failure: bad signature, expiry,
// malformed claims, wrong issuer or audience. Callers reject the request
// outright; a present-but-invalid token is never treated as anonymous.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the verified member identity carried by a session token.
type Claims struct {
	UserID   uint
	Nickname string
	Role     models.Role
}

// Manager signs and verifies session tokens with a process-wide secret,
// loaded once at startup and immutable thereafter.
type Manager struct {
	secret []byte
}

func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret)}
}

// Issue signs a session token for the given user.
func (m *Manager) Issue(user *models.User) (string, error) {
	if len(m.secret) == 0 {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(user.ID), 10),
		"nickname": user.Nickname,
		"role":     string(user.Role),
		"iss":      issuer,
		"aud":      audience,
		"exp":      now.Add(tokenTTL).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      generateJTI(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

// Verify validates signature, expiry, issuer and audience, and extracts the
// embedded identity. Any failure returns ErrInvalidToken.
func (m *Manager) Verify(tokenString string) (Claims, error) {
	t, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return m.secret, nil
	})
	if err != nil || !t.Valid {
		return Claims{}, ErrInvalidToken
	}

	mapClaims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	if iss, issOk := mapClaims["iss"].(string); !issOk || iss != issuer {
		return Claims{}, ErrInvalidToken
	}
	if aud, audOk := mapClaims["aud"].(string); !audOk || aud != audience {
		return Claims{}, ErrInvalidToken
	}

	sub, ok := mapClaims["sub"].(string)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil || userID == 0 {
		return Claims{}, ErrInvalidToken
	}

	nickname, _ := mapClaims["nickname"].(string)
	roleStr, _ := mapClaims["role"].(string)
	role := models.Role(roleStr)
	if role != models.RoleAdmin {
		role = models.RoleUser
	}

	return Claims{UserID: uint(userID), Nickname: nickname, Role: role}, nil
}

// generateJTI creates a unique token ID to prevent replay attacks.
func generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
