package session

import (
	"sync"

	"equate-backend/internal/chat"
)

// Session is the per-connection state: one conversation, one turn at a
// time. Created on connect, discarded on disconnect; nothing survives the
// process.
type Session struct {
	ID   string
	Conv *chat.Conversation

	turn sync.Mutex
}

// BeginTurn acquires the single-flight turn gate without blocking. A false
// return means a turn is already in flight for this session; concurrent
// turns would corrupt the conversation's per-turn scratch state.
func (s *Session) BeginTurn() bool {
	return s.turn.TryLock()
}

// EndTurn releases the turn gate.
func (s *Session) EndTurn() {
	s.turn.Unlock()
}

// Manager owns the live sessions, keyed by connection identity. Connect
// and Disconnect are the only mutation points.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Connect creates and registers a fresh session for a connection.
func (m *Manager) Connect(connID string) *Session {
	s := &Session{
		ID:   connID,
		Conv: chat.NewConversation(),
	}

	m.mu.Lock()
	m.sessions[connID] = s
	m.mu.Unlock()

	return s
}

// Disconnect discards a session. An in-flight turn is abandoned: it keeps
// running against the discarded state, its output undeliverable.
func (m *Manager) Disconnect(connID string) {
	m.mu.Lock()
	delete(m.sessions, connID)
	m.mu.Unlock()
}

// Get looks up a live session.
func (m *Manager) Get(connID string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[connID]
	return s, ok
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
