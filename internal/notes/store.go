// Package notes holds the note store boundary. Persistence is an external
// collaborator; the pipeline only ever needs "fetch this owner's note
// content", so the store is an interface with an in-memory implementation.
package notes

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Note is a stored note. Content is what the AI pipeline consumes.
type Note struct {
	ID        string    `json:"id"`
	Owner     string    `json:"owner"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Store is the persistence boundary. All operations are owner-scoped; an
// ownership mismatch behaves exactly like a missing note.
type Store interface {
	Create(owner, content string) *Note
	Get(owner, id string) (*Note, bool)
	List(owner string) []*Note
	Update(owner, id, content string) (*Note, bool)
	Delete(owner, id string) bool
}

// Manager is the in-memory Store.
type Manager struct {
	mu    sync.RWMutex
	notes map[string]*Note // Protected by mu
}

// NewManager creates an empty in-memory store.
func NewManager() *Manager {
	return &Manager{
		notes: make(map[string]*Note),
	}
}

// Create stores a new note for the owner.
func (m *Manager) Create(owner, content string) *Note {
	now := time.Now()
	note := &Note{
		ID:        uuid.New().String(),
		Owner:     owner,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	m.mu.Lock()
	m.notes[note.ID] = note
	m.mu.Unlock()

	return note
}

// Get returns the owner's note, or false when it does not exist or belongs
// to someone else.
func (m *Manager) Get(owner, id string) (*Note, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	note, ok := m.notes[id]
	if !ok || note.Owner != owner {
		return nil, false
	}
	copied := *note
	return &copied, true
}

// List returns all of the owner's notes, newest first.
func (m *Manager) List(owner string) []*Note {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := []*Note{}
	for _, note := range m.notes {
		if note.Owner == owner {
			copied := *note
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

// Update replaces the note content for the owner.
func (m *Manager) Update(owner, id, content string) (*Note, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	note, ok := m.notes[id]
	if !ok || note.Owner != owner {
		return nil, false
	}
	note.Content = content
	note.UpdatedAt = time.Now()
	copied := *note
	return &copied, true
}

// Delete removes the owner's note.
func (m *Manager) Delete(owner, id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	note, ok := m.notes[id]
	if !ok || note.Owner != owner {
		return false
	}
	delete(m.notes, id)
	return true
}
