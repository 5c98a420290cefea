package memory

import (
	"time"

	"os-help-bot/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps one store.Session per user id for the life of the
// process. Sessions never expire.
type SessionRepository struct {
	cache *cache.Cache
	now   func() time.Time
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		cache: cache.New(cache.NoExpiration, 0),
		now:   time.Now,
	}
}

// LoadOrCreate returns the user's session, creating it on first contact.
// Concurrent first contacts all get the session that won the Add.
func (r *SessionRepository) LoadOrCreate(userID string) *store.Session {
	for {
		if x, found := r.cache.Get(userID); found {
			return x.(*store.Session)
		}
		session := store.NewSession(userID, r.now())
		if err := r.cache.Add(userID, session, cache.NoExpiration); err == nil {
			return session
		}
		// Lost the race; a Delete may also have run since, so look again.
	}
}

func (r *SessionRepository) Get(userID string) (*store.Session, bool) {
	if x, found := r.cache.Get(userID); found {
		return x.(*store.Session), true
	}
	return nil, false
}

// Reset returns the user's session to AWAITING_OS, creating it if needed.
func (r *SessionRepository) Reset(userID string) *store.Session {
	session := r.LoadOrCreate(userID)
	session.Lock()
	session.Clear(r.now())
	session.Unlock()
	return session
}

func (r *SessionRepository) Delete(userID string) {
	r.cache.Delete(userID)
}

func (r *SessionRepository) Count() int {
	return r.cache.ItemCount()
}
