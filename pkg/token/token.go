// Package token signs and verifies session tokens. The session id (jti)
// links a token to its revocable server-side session record.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/DanekaBm/eventhub/internal/entity"
)

var ErrInvalidToken = errors.New("invalid session token")

type Claims struct {
	jwt.RegisteredClaims
	UserID int64       `json:"user_id"`
	Role   entity.Role `json:"role"`
}

type Manager struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

func NewManager(secret string, expiration time.Duration) *Manager {
	return &Manager{
		secret:     []byte(secret),
		expiration: expiration,
		now:        time.Now,
	}
}

// Issue signs a token for the user and returns it together with the session
// id the caller must register in the session store.
func (m *Manager) Issue(userID int64, role entity.Role) (token string, sessionID string, err error) {
	now := m.now()
	sessionID = uuid.New().String()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiration)),
		},
		UserID: userID,
		Role:   role,
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, sessionID, nil
}

// Parse verifies the signature and expiry and returns the claims.
func (m *Manager) Parse(token string) (*Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == 0 || !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

// Expiration reports the configured token lifetime, used as the session TTL.
func (m *Manager) Expiration() time.Duration {
	return m.expiration
}
