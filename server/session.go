package server

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/tkahng/chopsticks/sticks"
)

var ErrServerFull = errors.New("server at capacity")

// End reasons reported in game_end messages.
const (
	EndEliminated = "eliminated"
	EndMaxTurns   = "max_turns"
)

// Session is one connection's live game against the bot.
type Session struct {
	ID        string
	PlayerID  string
	CreatedAt time.Time

	mu         sync.Mutex
	game       *sticks.Game
	endReason  string
	lastActive time.Time
}

func (s *Session) touch() {
	s.lastActive = time.Now()
}

// SessionStore tracks live sessions, bounded by a maximum count.
type SessionStore struct {
	maxSessions int
	timeout     time.Duration
	newGame     func() *sticks.Game

	mu       sync.RWMutex
	sessions map[string]*Session
	logger   zerolog.Logger
}

func NewSessionStore(maxSessions int, timeout time.Duration, newGame func() *sticks.Game, logger zerolog.Logger) *SessionStore {
	return &SessionStore{
		maxSessions: maxSessions,
		timeout:     timeout,
		newGame:     newGame,
		sessions:    make(map[string]*Session),
		logger:      logger,
	}
}

// Create starts a new game under id.
func (st *SessionStore) Create(id, playerID string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if len(st.sessions) >= st.maxSessions {
		return nil, ErrServerFull
	}
	now := time.Now()
	s := &Session{
		ID:         id,
		PlayerID:   playerID,
		CreatedAt:  now,
		game:       st.newGame(),
		lastActive: now,
	}
	st.sessions[id] = s
	ActiveSessions.Set(float64(len(st.sessions)))
	st.logger.Info().Str("session", id).Str("player", playerID).Msg("session created")
	return s, nil
}

func (st *SessionStore) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

func (st *SessionStore) Remove(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.sessions[id]; ok {
		delete(st.sessions, id)
		ActiveSessions.Set(float64(len(st.sessions)))
		st.logger.Info().Str("session", id).Dur("age", time.Since(s.CreatedAt)).Msg("session removed")
	}
}

func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// AvailableSlots is how many more sessions can be created.
func (st *SessionStore) AvailableSlots() int {
	return st.maxSessions - st.Len()
}

// RemoveStale drops sessions idle for longer than the timeout and returns
// their IDs.
func (st *SessionStore) RemoveStale(now time.Time) []string {
	st.mu.Lock()
	defer st.mu.Unlock()

	var stale []string
	for id, s := range st.sessions {
		s.mu.Lock()
		idle := now.Sub(s.lastActive)
		s.mu.Unlock()
		if idle > st.timeout {
			st.logger.Info().Str("session", id).Dur("idle", idle).Msg("cleaning up stale session")
			delete(st.sessions, id)
			stale = append(stale, id)
		}
	}
	ActiveSessions.Set(float64(len(st.sessions)))
	return stale
}
