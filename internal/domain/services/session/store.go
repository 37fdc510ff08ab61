package session

import (
	"sync"
	"time"
)

// State holds everything tracked per conversation. Persona and language are
// fixed at creation; the counters only ever grow.
type State struct {
	Persona             string    `json:"persona"`
	Language            string    `json:"language"`
	StartedAt           time.Time `json:"startedAt"`
	TurnCount           int       `json:"turnCount"`
	QuestionsAsked      int       `json:"questionsAsked"`
	ElicitationAttempts int       `json:"elicitationAttempts"`
	RedFlags            []string  `json:"redFlags"`
}

// AddRedFlag appends a flag unless it is already present
func (s *State) AddRedFlag(flag string) {
	for _, f := range s.RedFlags {
		if f == flag {
			return
		}
	}
	s.RedFlags = append(s.RedFlags, flag)
}

func (s *State) clone() State {
	out := *s
	out.RedFlags = append([]string(nil), s.RedFlags...)
	return out
}

type entry struct {
	mu    sync.Mutex
	state State
}

// Store is an in-memory session registry. A store-level mutex guards the
// map; each session carries its own lock so concurrent turns for the same
// conversation serialize without blocking other conversations.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
}

// NewStore creates an empty session store
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*entry),
	}
}

// Get returns a copy of the session state
func (s *Store) Get(id string) (State, bool) {
	s.mu.Lock()
	e, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		return State{}, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.clone(), true
}

// CreateIfAbsent inserts the initial state for a session. If another
// request created it first, the existing state wins and is returned.
func (s *Store) CreateIfAbsent(id string, initial State) State {
	s.mu.Lock()
	e, ok := s.sessions[id]
	if !ok {
		e = &entry{state: initial}
		s.sessions[id] = e
	}
	s.mu.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.clone()
}

// Update applies fn to the session state under its lock and returns the
// resulting copy. Returns false if the session does not exist.
func (s *Store) Update(id string, fn func(*State)) (State, bool) {
	s.mu.Lock()
	e, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		return State{}, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	fn(&e.state)
	return e.state.clone(), true
}

// Count returns the number of tracked sessions
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
