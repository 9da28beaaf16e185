// Package session resolves bearer tokens into signed-in users and fans
// out sign-in state changes to the live parts of the service.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"vintage-vault/internal/marketerrors"
	"vintage-vault/internal/models"
	"vintage-vault/utils"

	"github.com/golang-jwt/jwt/v5"
	"k8s.io/utils/clock"
)

// Session is the signed-in user of a request
type Session struct {
	UserID    string      `json:"user_id"`
	Email     string      `json:"email"`
	Role      models.Role `json:"role"`
	Token     string      `json:"-"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// Authenticated reports whether s belongs to a signed-in user; nil is anonymous
func (s *Session) Authenticated() bool {
	return s != nil && s.UserID != ""
}

// IsAdmin reports whether the user holds the admin role
func (s *Session) IsAdmin() bool {
	return s.Authenticated() && s.Role == models.RoleAdmin
}

// Claims is the token payload: standard claims plus the user's email
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// RoleLookup resolves a user's role assignment
type RoleLookup interface {
	GetRole(ctx context.Context, userID string) (models.Role, error)
}

// Manager issues, verifies and revokes session tokens
type Manager struct {
	secret   []byte
	validity time.Duration
	roles    RoleLookup
	clock    clock.PassiveClock
	broker   *Broker

	mu      sync.Mutex
	revoked map[string]time.Time // key: token id -> value: expiry
}

// NewManager creates a Manager signing HS256 tokens with secret
func NewManager(secret []byte, validity time.Duration, roles RoleLookup, clk clock.PassiveClock) *Manager {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Manager{
		secret:   secret,
		validity: validity,
		roles:    roles,
		clock:    clk,
		broker:   NewBroker(),
		revoked:  make(map[string]time.Time),
	}
}

// Broker returns the process-wide session change broker
func (m *Manager) Broker() *Broker {
	return m.broker
}

// Issue signs a token for userID
func (m *Manager) Issue(userID, email string) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("session: %w - empty user id", marketerrors.ErrInvalidInput)
	}
	now := m.clock.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        utils.GenerateID(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.validity)),
		},
		Email: email,
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("session: failed to sign token: %w", err)
	}
	m.broker.Publish(Change{UserID: userID})
	return signed, nil
}

// Verify parses a token and resolves the user's current role
func (m *Manager) Verify(ctx context.Context, tokenString string) (*Session, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.clock.Now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("session: %w - token expired", marketerrors.ErrInvalidToken)
		}
		return nil, fmt.Errorf("session: %w - %v", marketerrors.ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("session: %w - missing subject", marketerrors.ErrInvalidToken)
	}
	if m.isRevoked(claims.ID) {
		return nil, fmt.Errorf("session: %w - signed out", marketerrors.ErrInvalidToken)
	}

	role, err := m.roles.GetRole(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("session: failed to resolve role for user %s: %w", claims.Subject, err)
	}

	s := &Session{
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   role,
		Token:  tokenString,
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, nil
}

// SignOut revokes the session's token and tells every listener the user left
func (m *Manager) SignOut(s *Session) error {
	if !s.Authenticated() {
		return marketerrors.ErrUnauthenticated
	}
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, claims); err != nil {
		return fmt.Errorf("session: %w - %v", marketerrors.ErrInvalidToken, err)
	}

	m.mu.Lock()
	now := m.clock.Now()
	for id, exp := range m.revoked {
		if now.After(exp) {
			delete(m.revoked, id)
		}
	}
	m.revoked[claims.ID] = s.ExpiresAt
	m.mu.Unlock()

	m.broker.Publish(Change{UserID: s.UserID, SignedOut: true})
	utils.Info("Session signed out", map[string]any{"user_id": s.UserID})
	return nil
}

func (m *Manager) isRevoked(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[id]
	return ok
}

type ctxKey struct{}

// WithSession returns a copy of ctx carrying s
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session carried by ctx, or nil
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(ctxKey{}).(*Session)
	return s
}
