package account

import (
	"context"
	"errors"
	"sync"
)

type memoryRepository struct {
	mu    sync.RWMutex
	users map[string]User
}

// NewMemoryRepository builds an in-memory account store used in development
// mode and in tests.
func NewMemoryRepository() Repository {
	return &memoryRepository{users: make(map[string]User)}
}

func (r *memoryRepository) Create(_ context.Context, u User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[u.ID]; exists {
		return errors.New("user exists")
	}
	for _, other := range r.users {
		if other.Email != "" && other.Email == u.Email {
			return errors.New("email taken")
		}
	}
	r.users[u.ID] = u
	return nil
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *memoryRepository) FindByEmail(_ context.Context, email string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *memoryRepository) FindBySocial(_ context.Context, provider, subject string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Provider == provider && u.ProviderSubject == subject {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *memoryRepository) UpdateRole(_ context.Context, id string, role Role) error {
	return r.mutate(id, func(u *User) { u.Role = role })
}

func (r *memoryRepository) UpdateFullName(_ context.Context, id, fullName string) error {
	return r.mutate(id, func(u *User) { u.FullName = fullName })
}

func (r *memoryRepository) UpdateTokenVersion(_ context.Context, id string, version int) error {
	return r.mutate(id, func(u *User) { u.TokenVersion = version })
}

func (r *memoryRepository) mutate(id string, fn func(*User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	fn(&u)
	r.users[id] = u
	return nil
}
