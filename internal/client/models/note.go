// Package models defines client-side data models used by the gophnotes client.
package models

import (
	"slices"
	"strings"
	"time"
)

// DefaultTitle replaces an empty title when a draft is saved.
const DefaultTitle = "Untitled"

// Priority is a client-only importance marker.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority maps user input onto a Priority. The second value is false for
// unknown input.
func ParsePriority(s string) (Priority, bool) {
	switch p := Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, true
	}
	return "", false
}

// Note is a text note owned by a user.
//
// ID, UserID, Title, Content and the timestamps come from the notes service.
// Category, Tags, Priority and Favorite exist only on the client: they are
// never sent to the service and ResetClientAttrs puts them back to defaults
// whenever the collection is fetched again.
type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Category string   `json:"-"`
	Tags     []string `json:"-"`
	Priority Priority `json:"-"`
	Favorite bool     `json:"-"`
}

// ResetClientAttrs restores the client-only attributes to their defaults.
func (n *Note) ResetClientAttrs() {
	n.Category = ""
	n.Tags = nil
	n.Priority = PriorityMedium
	n.Favorite = false
}

// Valid reports whether the note timestamps are consistent (UpdatedAt >= CreatedAt).
func (n Note) Valid() bool {
	return !n.UpdatedAt.Before(n.CreatedAt)
}

// Clone returns a deep copy of the note.
func (n Note) Clone() Note {
	n.Tags = slices.Clone(n.Tags)
	return n
}

// NoteInput is the payload accepted by create and update calls.
type NoteInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Normalize trims surrounding whitespace and coerces an empty title to DefaultTitle.
func (in NoteInput) Normalize() NoteInput {
	out := NoteInput{
		Title:   strings.TrimSpace(in.Title),
		Content: strings.TrimSpace(in.Content),
	}
	if out.Title == "" {
		out.Title = DefaultTitle
	}
	return out
}

// Blank reports whether both fields are empty after trimming.
func (in NoteInput) Blank() bool {
	return strings.TrimSpace(in.Title) == "" && strings.TrimSpace(in.Content) == ""
}
