package services

import (
	"sync"
	"time"

	"github.com/anandbhavan/museum-chatbot-backend/internal/storage"
)

// SessionManager serializes message processing per session and tracks
// activity for monitoring. Concurrent messages for the same session race on
// the session's read-modify-write, so each session gets its own lock;
// messages for different sessions run in parallel.
type SessionManager struct {
	store      storage.Store
	mu         sync.Mutex
	entries    map[string]*sessionEntry
	sessionTTL time.Duration
}

type sessionEntry struct {
	mu       sync.Mutex
	lastSeen time.Time
}

// Singleton instance
var (
	sessionManagerInstance *SessionManager
	sessionManagerOnce     sync.Once
)

// NewSessionManager creates a new session manager
func NewSessionManager(store storage.Store) *SessionManager {
	sm := &SessionManager{
		store:      store,
		entries:    make(map[string]*sessionEntry),
		sessionTTL: 30 * time.Minute,
	}

	// Start cleanup routine for idle lock entries
	go sm.sweepIdleEntries()

	return sm
}

// GetSessionManager returns the singleton session manager instance
func GetSessionManager() *SessionManager {
	sessionManagerOnce.Do(func() {
		if sessionManagerInstance == nil {
			sessionManagerInstance = &SessionManager{
				entries:    make(map[string]*sessionEntry),
				sessionTTL: 30 * time.Minute,
			}
		}
	})
	return sessionManagerInstance
}

// SetSessionManager sets the global session manager instance (call from main.go)
func SetSessionManager(sm *SessionManager) {
	sessionManagerInstance = sm
}

// Lock acquires the per-session lock and returns the unlock function.
// Messages for the same session are applied one at a time, in arrival order.
func (sm *SessionManager) Lock(sessionID string) func() {
	sm.mu.Lock()
	entry, exists := sm.entries[sessionID]
	if !exists {
		entry = &sessionEntry{}
		sm.entries[sessionID] = entry
	}
	entry.lastSeen = time.Now()
	sm.mu.Unlock()

	entry.mu.Lock()
	return entry.mu.Unlock
}

// ActiveSessions returns the number of sessions with activity inside the
// activity window (for monitoring)
func (sm *SessionManager) ActiveSessions() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	active := 0
	cutoff := time.Now().Add(-sm.sessionTTL)
	for _, entry := range sm.entries {
		if entry.lastSeen.After(cutoff) {
			active++
		}
	}
	return active
}

// sweepIdleEntries periodically drops lock entries for idle sessions.
// The persisted sessions themselves are retained for history.
func (sm *SessionManager) sweepIdleEntries() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		sm.mu.Lock()
		cutoff := time.Now().Add(-sm.sessionTTL)
		for sessionID, entry := range sm.entries {
			if entry.lastSeen.Before(cutoff) && entry.mu.TryLock() {
				entry.mu.Unlock()
				delete(sm.entries, sessionID)
			}
		}
		sm.mu.Unlock()
	}
}

// SessionStats provides session statistics for the admin overview
type SessionStats struct {
	ActiveSessions int   `json:"active_sessions"`
	TotalSessions  int64 `json:"total_sessions"`
}

// GetSessionStats returns current session statistics
func (sm *SessionManager) GetSessionStats() *SessionStats {
	total := int64(0)
	if sm.store != nil {
		total, _ = sm.store.CountSessions()
	}

	return &SessionStats{
		ActiveSessions: sm.ActiveSessions(),
		TotalSessions:  total,
	}
}
