// Package session keeps the conversations of one interactive session.
package session

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"materia/internal/domain"
)

// Store holds an ordered set of conversations. It always contains at least
// one conversation, and one of them is current.
type Store struct {
	mu            sync.RWMutex
	conversations []*domain.Conversation
	current       string
}

// New returns a store with a single empty conversation.
func New() *Store {
	s := &Store{}
	s.Create()
	return s
}

// Create appends a new empty conversation, makes it current and returns its id.
func (s *Store) Create() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := &domain.Conversation{
		ID:    uuid.NewString(),
		Title: fmt.Sprintf("Chat %d", len(s.conversations)+1),
	}
	s.conversations = append(s.conversations, c)
	s.current = c.ID
	return c.ID
}

// Remove deletes a conversation. The last remaining conversation cannot be
// removed. If the current conversation is removed the first one becomes current.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return domain.ErrConversationNotFound
	}
	if len(s.conversations) == 1 {
		return domain.ErrCannotRemoveLastConversation
	}
	s.conversations = append(s.conversations[:idx], s.conversations[idx+1:]...)
	if s.current == id {
		s.current = s.conversations[0].ID
	}
	return nil
}

// Append adds a message to the end of a conversation.
func (s *Store) Append(id string, role domain.Role, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return domain.ErrConversationNotFound
	}
	c := s.conversations[idx]
	c.Messages = append(c.Messages, domain.Message{Role: role, Content: content})
	return nil
}

// List returns conversation ids in creation order.
func (s *Store) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, len(s.conversations))
	for i, c := range s.conversations {
		ids[i] = c.ID
	}
	return ids
}

// Messages returns a copy of the messages of a conversation.
func (s *Store) Messages(id string) ([]domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return nil, domain.ErrConversationNotFound
	}
	msgs := s.conversations[idx].Messages
	out := make([]domain.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}

// Get returns a snapshot of a conversation.
func (s *Store) Get(id string) (domain.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return domain.Conversation{}, domain.ErrConversationNotFound
	}
	c := *s.conversations[idx]
	c.Messages = append([]domain.Message(nil), c.Messages...)
	return c, nil
}

// Current returns the id of the current conversation.
func (s *Store) Current() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Select makes id the current conversation.
func (s *Store) Select(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(id) < 0 {
		return domain.ErrConversationNotFound
	}
	s.current = id
	return nil
}

// Step moves the current conversation by delta positions, wrapping around,
// and returns the new current id.
func (s *Store) Step(delta int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.conversations)
	idx := s.indexOf(s.current)
	idx = ((idx+delta)%n + n) % n
	s.current = s.conversations[idx].ID
	return s.current
}

// Len returns the number of conversations.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conversations)
}

func (s *Store) indexOf(id string) int {
	for i, c := range s.conversations {
		if c.ID == id {
			return i
		}
	}
	return -1
}
