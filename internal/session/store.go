package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is one open recording capture for an interview. Chunks are appended
// to a single file until the session is destroyed.
type Session struct {
	InterviewID uuid.UUID
	CreatedAt   time.Time

	mu   sync.Mutex
	file *os.File
	path string
}

// Write appends a chunk to the recording file.
func (s *Session) Write(chunk []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return 0, fmt.Errorf("session for interview %s is closed", s.InterviewID)
	}
	return s.file.Write(chunk)
}

func (s *Session) Path() string {
	return s.path
}

func (s *Session) close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// Store tracks live recording sessions, at most one per interview.
type Store struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	dir      string
}

func NewStore(dir string) *Store {
	return &Store{
		sessions: make(map[uuid.UUID]*Session),
		dir:      dir,
	}
}

// Create opens a new session and its backing file. Fails when a session for
// the interview is already live.
func (st *Store) Create(interviewID uuid.UUID) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, exists := st.sessions[interviewID]; exists {
		return nil, fmt.Errorf("recording session for interview %s already exists", interviewID)
	}

	if err := os.MkdirAll(st.dir, 0o755); err != nil {
		return nil, err
	}
	path := filepath.Join(st.dir, fmt.Sprintf("%s_%d.webm", interviewID, time.Now().Unix()))
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	s := &Session{
		InterviewID: interviewID,
		CreatedAt:   time.Now(),
		file:        file,
		path:        path,
	}
	st.sessions[interviewID] = s
	return s, nil
}

func (st *Store) Lookup(interviewID uuid.UUID) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[interviewID]
	return s, ok
}

// Destroy closes the session file and forgets the session. The recording file
// itself stays on disk.
func (st *Store) Destroy(interviewID uuid.UUID) (*Session, error) {
	st.mu.Lock()
	s, ok := st.sessions[interviewID]
	delete(st.sessions, interviewID)
	st.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("no recording session for interview %s", interviewID)
	}
	if err := s.close(); err != nil {
		return s, err
	}
	return s, nil
}
