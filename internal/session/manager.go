package session

import (
	"go.uber.org/zap"

	"github.com/kyraongithub/compliance-gateway/internal/models"
)

// Manager owns the current session with an explicit lifecycle: Init loads
// whatever was persisted, SignIn persists a fresh session from the OAuth
// callback, SignOut clears both. It is injected into every component that
// needs identity rather than read from ambient state.
type Manager struct {
	store   *Store
	current *Session
	logger  *zap.Logger
}

func NewManager(store *Store, logger *zap.Logger) *Manager {
	return &Manager{store: store, logger: logger.With(zap.String("component", "session"))}
}

// Init restores the persisted session, if any. An unreadable session file is
// treated as signed-out rather than an error.
func (m *Manager) Init() error {
	sess, err := m.store.Load()
	if err != nil {
		m.logger.Warn("stored session unreadable, starting signed out", zap.Error(err))
		return nil
	}
	m.current = sess
	return nil
}

func (m *Manager) SignIn(sess *Session) error {
	if err := m.store.Save(sess); err != nil {
		return err
	}
	m.current = sess
	m.logger.Info("signed in", zap.String("email", sess.User.Email), zap.String("role", sess.User.Role))
	return nil
}

func (m *Manager) SignOut() error {
	m.current = nil
	return m.store.Clear()
}

func (m *Manager) Current() *Session {
	return m.current
}

// Token returns the bearer token, or "" when signed out.
func (m *Manager) Token() string {
	if m.current == nil {
		return ""
	}
	return m.current.Token
}

func (m *Manager) IsAuthenticated() bool {
	return m.current != nil
}

func (m *Manager) IsAdmin() bool {
	return m.current != nil && m.current.User.IsAdmin()
}

// Require is the guard in front of protected views: it fails unless a
// session is present, and callers redirect to the login view on failure.
func (m *Manager) Require() error {
	if m.current == nil {
		return ErrNotAuthenticated
	}
	return nil
}

func (m *Manager) User() models.User {
	if m.current == nil {
		return models.User{}
	}
	return m.current.User
}
