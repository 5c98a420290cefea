package session

import (
	"os-help-bot/internal/pkg/logger"
	"os-help-bot/internal/repository/memory"
	"os-help-bot/pkg/store"
)

// Manager handles session operations
type Manager struct {
	sessionRepo *memory.SessionRepository
	logger      logger.ILogger
}

// NewManager creates a new session manager
func NewManager(sessionRepo *memory.SessionRepository, logger logger.ILogger) *Manager {
	return &Manager{sessionRepo: sessionRepo, logger: logger}
}

// LoadOrCreate retrieves or creates the user's in-memory session
func (m *Manager) LoadOrCreate(userID string) *store.Session {
	return m.sessionRepo.LoadOrCreate(userID)
}

// Snapshot reports a user's session without creating one.
func (m *Manager) Snapshot(userID string) (store.Snapshot, bool) {
	session, found := m.sessionRepo.Get(userID)
	if !found {
		return store.Snapshot{}, false
	}
	return session.Snapshot(), true
}

// Reset puts the user back at the start of onboarding.
// Must not be called while holding that user's session lock.
func (m *Manager) Reset(userID string) store.Snapshot {
	session := m.sessionRepo.Reset(userID)
	m.logger.Info("SESSION", "Session reset", map[string]interface{}{"user_id": userID})
	return session.Snapshot()
}

// Active returns the number of users with a session.
func (m *Manager) Active() int {
	return m.sessionRepo.Count()
}
