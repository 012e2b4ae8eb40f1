package session

import "sync"

// Session is the per-request view of a stored session.
// It is safe for concurrent use.
type Session struct {
	mu        sync.Mutex
	id        string
	values    map[string]string
	modified  bool
	persisted bool
}

// New returns an empty session that has not been stored yet. The id is
// assigned when the session is first committed.
func New() *Session {
	return &Session{values: make(map[string]string)}
}

func restore(id string, values map[string]string) *Session {
	if values == nil {
		values = make(map[string]string)
	}
	return &Session{id: id, values: values, persisted: true}
}

// ID returns the session identifier, or "" if the session was never committed.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Get returns the value stored under key.
func (s *Session) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

// Set stores value under key, replacing any previous value.
func (s *Session) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	s.modified = true
}

// Delete removes key. Deleting a missing key is a no-op.
func (s *Session) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	s.modified = true
}

// Clear removes every value. An empty session is deleted from the store on commit.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.values) == 0 {
		return
	}
	clear(s.values)
	s.modified = true
}

// Len returns the number of stored values.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.values)
}

// Modified reports whether the session changed since it was loaded or last committed.
func (s *Session) Modified() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.modified
}
