// Package store keeps the in-memory note collection of the client and
// reconciles it with the results of note service calls.
package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/client"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

// NotesStore is the single source of truth for the notes shown to the user.
//
// Every operation makes one service call and never retries. A failure leaves
// the collection as it was and is recorded in the error slot (Err), which is
// cleared when the next operation starts. The collection is not locked across
// service calls, so overlapping operations apply in completion order.
type NotesStore struct {
	client client.Client
	log    logging.Logger
	now    func() time.Time

	mu       sync.RWMutex
	notes    []models.Note
	selected string
	lastErr  string
	inflight int
}

// Option configures a NotesStore.
type Option func(*NotesStore)

// WithClock replaces time.Now for computing updatedAt on local merges.
func WithClock(now func() time.Time) Option {
	return func(s *NotesStore) { s.now = now }
}

// New returns an empty store backed by c.
func New(c client.Client, log logging.Logger, opts ...Option) *NotesStore {
	s := &NotesStore{
		client: c,
		log:    log.With("component", "notes"),
		now:    time.Now,
		notes:  []models.Note{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// begin clears the error slot and marks an operation in flight. The returned
// func records err and ends the operation.
func (s *NotesStore) begin() func(err error) {
	s.mu.Lock()
	s.lastErr = ""
	s.inflight++
	s.mu.Unlock()

	return func(err error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.inflight--
		if err != nil {
			s.lastErr = client.Message(err)
		}
	}
}

// FetchAll replaces the collection with the notes of the service, most
// recently updated first. On failure the current collection is kept.
func (s *NotesStore) FetchAll(ctx context.Context) (err error) {
	done := s.begin()
	defer func() { done(err) }()

	notes, err := s.client.ListNotes(ctx)
	if err != nil {
		s.log.Warn(ctx, "fetch notes failed", "error", err)
		return err
	}

	fresh := make([]models.Note, 0, len(notes))
	for _, n := range notes {
		n = n.Clone()
		n.ResetClientAttrs()
		fresh = append(fresh, n)
	}
	sortByUpdated(fresh)

	s.mu.Lock()
	s.notes = fresh
	if s.selected != "" && indexOf(s.notes, s.selected) < 0 {
		s.selected = ""
	}
	s.mu.Unlock()

	s.log.Debug(ctx, "notes fetched", "count", len(fresh))
	return nil
}

// Create stores a new note on the service and prepends it to the collection.
func (s *NotesStore) Create(ctx context.Context, in models.NoteInput) (_ *models.Note, err error) {
	done := s.begin()
	defer func() { done(err) }()

	n, err := s.client.CreateNote(ctx, in)
	if err != nil {
		s.log.Warn(ctx, "create note failed", "error", err)
		return nil, err
	}

	note := n.Clone()
	note.ResetClientAttrs()

	s.mu.Lock()
	s.notes = slices.Insert(s.notes, 0, note)
	s.mu.Unlock()

	out := note.Clone()
	return &out, nil
}

// Update sends the new title and content to the service. On success the
// matching entry takes the submitted fields and an updatedAt computed
// locally, never earlier than its createdAt. An id missing from the
// collection is not an error.
func (s *NotesStore) Update(ctx context.Context, id string, in models.NoteInput) (err error) {
	done := s.begin()
	defer func() { done(err) }()

	if err = s.client.UpdateNote(ctx, id, in); err != nil {
		s.log.Warn(ctx, "update note failed", "id", id, "error", err)
		return err
	}

	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.notes, id)
	if i < 0 {
		return nil
	}
	n := &s.notes[i]
	n.Title = in.Title
	n.Content = in.Content
	if now.Before(n.CreatedAt) {
		now = n.CreatedAt
	}
	n.UpdatedAt = now
	return nil
}

// Delete removes the note on the service, then from the collection.
func (s *NotesStore) Delete(ctx context.Context, id string) (err error) {
	done := s.begin()
	defer func() { done(err) }()

	if err = s.client.DeleteNote(ctx, id); err != nil {
		s.log.Warn(ctx, "delete note failed", "id", id, "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := indexOf(s.notes, id); i >= 0 {
		s.notes = slices.Delete(s.notes, i, i+1)
	}
	if s.selected == id {
		s.selected = ""
	}
	return nil
}

// Get reloads one note from the service and merges it into the collection,
// keeping its client-only attributes. A note not yet in the collection is
// prepended.
func (s *NotesStore) Get(ctx context.Context, id string) (_ *models.Note, err error) {
	done := s.begin()
	defer func() { done(err) }()

	n, err := s.client.GetNote(ctx, id)
	if err != nil {
		s.log.Warn(ctx, "get note failed", "id", id, "error", err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fresh := n.Clone()
	if i := indexOf(s.notes, id); i >= 0 {
		old := s.notes[i]
		fresh.Category, fresh.Tags, fresh.Priority, fresh.Favorite = old.Category, old.Tags, old.Priority, old.Favorite
		s.notes[i] = fresh
	} else {
		fresh.ResetClientAttrs()
		s.notes = slices.Insert(s.notes, 0, fresh)
	}

	out := fresh.Clone()
	return &out, nil
}

// Clear empties the collection, the selection and the error slot. It is used
// when the session ends.
func (s *NotesStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = []models.Note{}
	s.selected = ""
	s.lastErr = ""
}

// Notes returns a copy of the collection.
func (s *NotesStore) Notes() []models.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Note, len(s.notes))
	for i, n := range s.notes {
		out[i] = n.Clone()
	}
	return out
}

// Note looks id up in the collection without calling the service.
func (s *NotesStore) Note(id string) (*models.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := indexOf(s.notes, id)
	if i < 0 {
		return nil, false
	}
	n := s.notes[i].Clone()
	return &n, true
}

// View applies q to a snapshot of the collection.
func (s *NotesStore) View(q Query) []models.Note {
	return Apply(s.Notes(), q)
}

// Select makes id the current note. It reports false when id is unknown.
func (s *NotesStore) Select(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if indexOf(s.notes, id) < 0 {
		return false
	}
	s.selected = id
	return true
}

// Selected returns the current note, or nil.
func (s *NotesStore) Selected() *models.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := indexOf(s.notes, s.selected)
	if s.selected == "" || i < 0 {
		return nil
	}
	n := s.notes[i].Clone()
	return &n
}

// ToggleFavorite flips the favorite flag of id and returns the new value.
func (s *NotesStore) ToggleFavorite(id string) (favorite bool, ok bool) {
	ok = s.modify(id, func(n *models.Note) {
		n.Favorite = !n.Favorite
		favorite = n.Favorite
	})
	return favorite, ok
}

func (s *NotesStore) SetCategory(id, category string) bool {
	return s.modify(id, func(n *models.Note) { n.Category = category })
}

func (s *NotesStore) SetTags(id string, tags []string) bool {
	tags = slices.Compact(slices.Sorted(slices.Values(tags)))
	return s.modify(id, func(n *models.Note) { n.Tags = tags })
}

func (s *NotesStore) SetPriority(id string, p models.Priority) bool {
	return s.modify(id, func(n *models.Note) { n.Priority = p })
}

// modify applies fn to the note with id. Client-only attributes change
// without a service call.
func (s *NotesStore) modify(id string, fn func(n *models.Note)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.notes, id)
	if i < 0 {
		return false
	}
	fn(&s.notes[i])
	return true
}

// Err returns the message of the last failed operation, "" if none.
func (s *NotesStore) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// IsLoading reports whether any operation is in flight.
func (s *NotesStore) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inflight > 0
}

func indexOf(notes []models.Note, id string) int {
	return slices.IndexFunc(notes, func(n models.Note) bool { return n.ID == id })
}
