package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"

	"tdo/internal/service"
)

// Manager derives session state from the stored token. Validity is evaluated
// lazily on every access; there is no background expiry timer.
type Manager struct {
	store  *Store
	logger *zap.Logger

	// now is the clock used for expiry checks. Overridable in tests.
	now func() time.Time
}

// NewManager creates a session Manager over the given Store.
func NewManager(store *Store, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{store: store, logger: logger, now: time.Now}
}

// CurrentToken returns the stored token only if it is present, its claims
// decode, and its expiry is strictly in the future. Any other state clears
// the store and reports absence; callers never see a decode error.
func (m *Manager) CurrentToken() (string, bool) {
	raw, ok := m.store.Get()
	if !ok {
		return "", false
	}

	claims, err := decodeClaims(raw)
	if err != nil {
		m.logger.Debug("clearing undecodable token", zap.Error(err))
		_ = m.store.Clear()
		return "", false
	}

	// A token without an exp claim is treated the same as an expired one.
	if !claims.VerifyExpiresAt(m.now().Unix(), true) {
		m.logger.Debug("clearing expired token")
		_ = m.store.Clear()
		return "", false
	}

	return raw, true
}

// IsAuthenticated reports whether a valid session exists.
func (m *Manager) IsAuthenticated() bool {
	_, ok := m.CurrentToken()
	return ok
}

// CurrentUser derives the user identity from the token claims.
// The display name is the local part of the email.
func (m *Manager) CurrentUser() (service.User, bool) {
	raw, ok := m.CurrentToken()
	if !ok {
		return service.User{}, false
	}

	claims, err := decodeClaims(raw)
	if err != nil {
		return service.User{}, false
	}

	email, _ := claims["email"].(string)
	user := service.User{
		ID:    subjectString(claims["sub"]),
		Email: email,
		Name:  displayName(email),
	}
	return user, true
}

// SaveToken persists a freshly issued token.
func (m *Manager) SaveToken(raw string) error {
	return m.store.Set(raw)
}

// HasToken reports whether any token is stored, valid or not.
// Used by logout, which must clear stale credentials too.
func (m *Manager) HasToken() bool {
	_, ok := m.store.Get()
	return ok
}

// Logout removes the stored token.
func (m *Manager) Logout() error {
	return m.store.Clear()
}

// decodeClaims parses the token's claims without verifying the signature.
// The client holds no signing secret; the server is the sole authority on
// authenticity, the client only reads sub/email/exp for display and expiry.
func decodeClaims(raw string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// subjectString normalizes the sub claim, which arrives as a string or a
// JSON number depending on the issuer.
func subjectString(sub any) string {
	switch v := sub.(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// displayName extracts the part of the email before the @.
func displayName(email string) string {
	local, _, found := strings.Cut(email, "@")
	if !found || local == "" {
		return "User"
	}
	return local
}
