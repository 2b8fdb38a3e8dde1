package bot

import "sync"

type sessionState int

const (
	stateIdle sessionState = iota
	stateAwaitingText
	stateAwaitingDeadline
)

// session is the transient dialog state of one user: which multi-step
// flow is pending and which task it targets. Held in memory only and
// lost on restart.
type session struct {
	state  sessionState
	taskID uint
}

// sessionStore keeps per-user sessions behind a mutex.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[int64]session
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[int64]session)}
}

func (s *sessionStore) get(userID int64) session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[userID]
}

func (s *sessionStore) awaitText(userID int64, taskID uint) {
	s.set(userID, session{state: stateAwaitingText, taskID: taskID})
}

func (s *sessionStore) awaitDeadline(userID int64, taskID uint) {
	s.set(userID, session{state: stateAwaitingDeadline, taskID: taskID})
}

func (s *sessionStore) set(userID int64, sess session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = sess
}

func (s *sessionStore) clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}
