package bot

import (
	"sync"

	"sales_bot/internal/sales"
)

// Step is the per-user conversation state.
type Step int

const (
	StepIdle Step = iota
	StepAwaitingPrice
	StepAwaitingNote
)

// session holds one user's in-progress wizard state. Each session
// carries its own mutex so two rapid events from the same user
// serialize without contending with other users.
type session struct {
	mu sync.Mutex

	step            Step
	pendingItem     string
	pendingCategory sales.Category
}

func (s *session) reset() {
	s.step = StepIdle
	s.pendingItem = ""
	s.pendingCategory = ""
}

// sessionStore is the map of live sessions. The store lock only guards
// map access; per-session serialization is the session's own mutex.
// Sessions are memory-only and lost on restart.
type sessionStore struct {
	mu sync.Mutex
	m  map[int64]*session
}

func newSessionStore() *sessionStore {
	return &sessionStore{m: make(map[int64]*session)}
}

func (s *sessionStore) get(userID int64) *session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.m[userID]
	if sess == nil {
		sess = &session{step: StepIdle}
		s.m[userID] = sess
	}
	return sess
}
