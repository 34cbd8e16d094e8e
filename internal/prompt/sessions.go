// Package prompt implements the interactive collection engine: the
// turn-taking state machine that re-prompts for an argument until a value,
// a control flag, or exhaustion, plus the registry of active sessions.
package prompt

import "sync"

type sessionKey struct {
	conversationID string
	authorID       string
}

// Sessions tracks which (conversation, author) pairs currently have an
// active prompt. The dispatcher consults Active to hold back ordinary
// command handling for those pairs; the engine guarantees no entry
// outlives its collect invocation. Safe for concurrent use.
type Sessions struct {
	mu     sync.Mutex
	active map[sessionKey]struct{}
}

// NewSessions creates an empty session registry.
func NewSessions() *Sessions {
	return &Sessions{
		active: make(map[sessionKey]struct{}),
	}
}

// Register marks a prompt as active for the pair.
func (s *Sessions) Register(conversationID, authorID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active[sessionKey{conversationID, authorID}] = struct{}{}
}

// Unregister clears the pair's active prompt marker. Clearing a pair that
// is not registered is a no-op.
func (s *Sessions) Unregister(conversationID, authorID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.active, sessionKey{conversationID, authorID})
}

// Active reports whether the pair has an active prompt.
func (s *Sessions) Active(conversationID, authorID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.active[sessionKey{conversationID, authorID}]
	return ok
}

// Len returns the number of active sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}
