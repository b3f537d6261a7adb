// Package editor implements a note draft with debounced auto-save.
package editor

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

// DefaultAutoSaveDelay is the pause after the last edit before a draft is saved.
const DefaultAutoSaveDelay = 2 * time.Second

// ErrClosed is returned by Save after Close.
var ErrClosed = errors.New("editor closed")

// Saver persists drafts. *store.NotesStore implements it.
type Saver interface {
	Create(ctx context.Context, in models.NoteInput) (*models.Note, error)
	Update(ctx context.Context, id string, in models.NoteInput) error
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the logger used for auto-save failures.
func WithLogger(l logging.Logger) Option {
	return func(e *Editor) { e.log = l }
}

// OnAutoSave registers fn to be called after every auto-save attempt with
// its result. fn runs on the timer goroutine.
func OnAutoSave(fn func(err error)) Option {
	return func(e *Editor) { e.onAutoSave = fn }
}

// Editor holds one draft. Edits re-arm a timer that saves the draft once
// delay has passed without further edits. A non-positive delay disables
// auto-save. Close stops the timer; nothing is saved after Close returns.
type Editor struct {
	saver      Saver
	delay      time.Duration
	log        logging.Logger
	onAutoSave func(err error)

	ctx    context.Context
	cancel context.CancelFunc

	// saveMu serializes saves so a draft is never created twice.
	saveMu sync.Mutex

	mu      sync.Mutex
	id      string
	title   string
	content string
	rev     uint64
	saved   uint64
	timer   *time.Timer
	closed  bool
}

// New opens an editor on note, or on an empty draft when note is nil.
func New(saver Saver, note *models.Note, delay time.Duration, opts ...Option) *Editor {
	ctx, cancel := context.WithCancel(context.Background())
	e := &Editor{
		saver:  saver,
		delay:  delay,
		log:    logging.Discard(),
		ctx:    ctx,
		cancel: cancel,
	}
	if note != nil {
		e.id = note.ID
		e.title = note.Title
		e.content = note.Content
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Editor) SetTitle(title string) {
	e.edit(func() { e.title = title })
}

func (e *Editor) SetContent(content string) {
	e.edit(func() { e.content = content })
}

func (e *Editor) edit(apply func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	apply()
	e.rev++

	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	if e.delay > 0 && !e.draftLocked().Blank() {
		e.timer = time.AfterFunc(e.delay, e.autoSave)
	}
}

func (e *Editor) autoSave() {
	err := e.Save(e.ctx)
	if errors.Is(err, ErrClosed) {
		return
	}
	if err != nil {
		e.log.Warn(e.ctx, "auto-save failed", "note_id", e.ID(), "error", err)
	}
	if e.onAutoSave != nil {
		e.onAutoSave(err)
	}
}

// Save persists the draft: the first save of a new draft creates the note,
// later saves update it. A draft with blank title and content is not saved.
// The input is trimmed and an empty title becomes models.DefaultTitle.
func (e *Editor) Save(ctx context.Context) error {
	e.saveMu.Lock()
	defer e.saveMu.Unlock()

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	draft := e.draftLocked()
	id, rev := e.id, e.rev
	if draft.Blank() || rev == e.saved {
		e.mu.Unlock()
		return nil
	}
	e.mu.Unlock()

	in := draft.Normalize()
	if id == "" {
		n, err := e.saver.Create(ctx, in)
		if err != nil {
			return err
		}
		id = n.ID
	} else if err := e.saver.Update(ctx, id, in); err != nil {
		return err
	}

	e.mu.Lock()
	e.id = id
	e.saved = rev
	e.mu.Unlock()
	return nil
}

// Close stops the auto-save timer, cancels an auto-save in flight and waits
// for it to finish. Close is idempotent.
func (e *Editor) Close() {
	e.mu.Lock()
	e.closed = true
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.mu.Unlock()

	e.cancel()

	e.saveMu.Lock()
	defer e.saveMu.Unlock()
}

// ID returns the id of the saved note, "" until the first save of a new draft.
func (e *Editor) ID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.id
}

// Draft returns the current, unnormalized title and content.
func (e *Editor) Draft() models.NoteInput {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draftLocked()
}

func (e *Editor) draftLocked() models.NoteInput {
	return models.NoteInput{Title: e.title, Content: e.content}
}

// Dirty reports unsaved edits.
func (e *Editor) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rev != e.saved
}

func (e *Editor) Stats() models.TextStats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return models.StatsOf(e.content)
}
