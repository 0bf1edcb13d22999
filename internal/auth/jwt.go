package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shiftclock/shiftclock/internal/models"
)

// TokenTTL is how long an issued token stays valid.
const TokenTTL = 5 * 24 * time.Hour

var (
	ErrInvalidToken = errors.New("invalid token")
)

// Claims are the JWT claims carried by an access token. Role and status are
// informational for clients; the middleware re-resolves both from the worker
// record on every request so revocations and approvals take effect without
// reissuing tokens.
type Claims struct {
	OrgID  string `json:"org"`
	Role   string `json:"role"`
	Status string `json:"status"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 access tokens.
type TokenManager struct {
	secret []byte
	now    func() time.Time
}

// NewTokenManager creates a token manager with the given signing secret.
// The secret must be at least 32 bytes.
func NewTokenManager(secret []byte) (*TokenManager, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("token signing secret must be at least 32 bytes")
	}
	return &TokenManager{secret: secret, now: time.Now}, nil
}

// Issue creates a signed token for the given worker.
func (m *TokenManager) Issue(worker *models.Worker) (string, error) {
	now := m.now()
	claims := Claims{
		OrgID:  worker.OrgID.String(),
		Role:   string(worker.Role),
		Status: string(worker.Status),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   worker.WorkerID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify parses and validates a token, returning the worker ID it was issued
// for. All failures collapse into ErrInvalidToken; callers don't need to
// distinguish malformed from expired.
func (m *TokenManager) Verify(tokenStr string) (uuid.UUID, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("invalid signing method")
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return m.now() }))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !parsed.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}

	workerID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}

	return workerID, nil
}
