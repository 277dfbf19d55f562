package server

import (
	"sync"
	"time"
)

// Comment is an accepted submission. Values of fields other than name,
// email and content are kept in Fields.
type Comment struct {
	ID        string            `json:"id"`
	Name      string            `json:"name,omitempty"`
	Email     string            `json:"email,omitempty"`
	Content   string            `json:"content,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// Store keeps accepted comments.
type Store interface {
	Add(comment Comment) error
	List() ([]Comment, error)
}

// MemoryStore is a Store bounded to a fixed number of recent comments.
type MemoryStore struct {
	mu       sync.RWMutex
	limit    int
	comments []Comment
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore keeps at most limit comments; non-positive limits default
// to 100.
func NewMemoryStore(limit int) *MemoryStore {
	if limit <= 0 {
		limit = 100
	}
	return &MemoryStore{limit: limit}
}

// Add appends comment, evicting the oldest entry when full.
func (s *MemoryStore) Add(comment Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments = append(s.comments, comment)
	if over := len(s.comments) - s.limit; over > 0 {
		s.comments = append([]Comment(nil), s.comments[over:]...)
	}
	return nil
}

// List returns comments newest first.
func (s *MemoryStore) List() ([]Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Comment, 0, len(s.comments))
	for i := len(s.comments) - 1; i >= 0; i-- {
		out = append(out, s.comments[i])
	}
	return out, nil
}
