package users

import (
	"sync"

	"github.com/google/uuid"
)

// User is one record in the user collection. The password hash is
// never serialized back to clients.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Age          int    `json:"age,omitempty"`
	PasswordHash string `json:"-"`
}

// store is an in-memory, insertion-ordered user collection.
type store struct {
	mu    sync.RWMutex
	order []string
	users map[string]User
}

func newStore(seed ...User) *store {
	s := &store{users: make(map[string]User)}
	for _, u := range seed {
		s.Add(u)
	}
	return s
}

// List returns all users in insertion order.
func (s *store) List() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]User, 0, len(s.order))
	for _, id := range s.order {
		list = append(list, s.users[id])
	}
	return list
}

// Get returns the user with the given id.
func (s *store) Get(id string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	return u, ok
}

// Add appends the user to the collection, assigning an id when the
// user doesn't carry one, and returns the stored record.
func (s *store) Add(u User) User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if _, exists := s.users[u.ID]; !exists {
		s.order = append(s.order, u.ID)
	}
	s.users[u.ID] = u
	return u
}

func seedUsers() []User {
	return []User{
		{ID: "1", Name: "alice", Email: "alice@example.com", Age: 34},
		{ID: "2", Name: "bob", Email: "bob@example.com", Age: 28},
		{ID: "3", Name: "carol", Email: "carol@example.com", Age: 45},
	}
}
