package store

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
)

// DefaultRecentWindow is how far back FilterRecent looks by default.
const DefaultRecentWindow = 3 * 24 * time.Hour

// SortKey selects the ordering of a view.
type SortKey string

const (
	SortByUpdated SortKey = "updated"
	SortByCreated SortKey = "created"
	SortByTitle   SortKey = "title"
)

// ParseSortKey accepts "title", "created" and "updated".
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortByUpdated, SortByCreated, SortByTitle:
		return k, nil
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// Filter narrows a view.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterFavorites Filter = "favorites"
	FilterRecent    Filter = "recent"
)

// ParseFilter accepts "all", "favorites" and "recent".
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case FilterAll, FilterFavorites, FilterRecent:
		return f, nil
	}
	return "", fmt.Errorf("unknown filter %q", s)
}

// Query describes a view over the collection. Zero fields mean: no search
// term, all notes, any category, sorted by updatedAt.
type Query struct {
	Term     string
	Filter   Filter
	Category string
	Sort     SortKey

	// Now and RecentWindow drive FilterRecent; zero values mean time.Now()
	// and DefaultRecentWindow.
	Now          time.Time
	RecentWindow time.Duration
}

// Search keeps notes whose title or content contains term, ignoring case.
// A blank term keeps everything.
func Search(notes []models.Note, term string) []models.Note {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return clone(notes)
	}
	return keep(notes, func(n models.Note) bool {
		return strings.Contains(strings.ToLower(n.Title), term) ||
			strings.Contains(strings.ToLower(n.Content), term)
	})
}

// FilterRecentNotes keeps notes updated strictly after now-window.
func FilterRecentNotes(notes []models.Note, now time.Time, window time.Duration) []models.Note {
	cutoff := now.Add(-window)
	return keep(notes, func(n models.Note) bool { return n.UpdatedAt.After(cutoff) })
}

func FilterFavoriteNotes(notes []models.Note) []models.Note {
	return keep(notes, func(n models.Note) bool { return n.Favorite })
}

// FilterCategory keeps notes in category, compared case-insensitively.
func FilterCategory(notes []models.Note, category string) []models.Note {
	return keep(notes, func(n models.Note) bool { return strings.EqualFold(n.Category, category) })
}

// Sort returns a sorted copy of notes: by title ascending, or by created or
// updated time with the most recent first. Ties keep their input order.
func Sort(notes []models.Note, by SortKey) []models.Note {
	out := clone(notes)
	switch by {
	case SortByTitle:
		slices.SortStableFunc(out, func(a, b models.Note) int { return cmp.Compare(a.Title, b.Title) })
	case SortByCreated:
		slices.SortStableFunc(out, func(a, b models.Note) int { return b.CreatedAt.Compare(a.CreatedAt) })
	default:
		sortByUpdated(out)
	}
	return out
}

// Apply runs search, filter and sort as described by q.
func Apply(notes []models.Note, q Query) []models.Note {
	out := Search(notes, q.Term)

	switch q.Filter {
	case FilterFavorites:
		out = FilterFavoriteNotes(out)
	case FilterRecent:
		now, window := q.Now, q.RecentWindow
		if now.IsZero() {
			now = time.Now()
		}
		if window <= 0 {
			window = DefaultRecentWindow
		}
		out = FilterRecentNotes(out, now, window)
	}

	if q.Category != "" {
		out = FilterCategory(out, q.Category)
	}

	return Sort(out, q.Sort)
}

func sortByUpdated(notes []models.Note) {
	slices.SortStableFunc(notes, func(a, b models.Note) int { return b.UpdatedAt.Compare(a.UpdatedAt) })
}

func keep(notes []models.Note, pred func(models.Note) bool) []models.Note {
	out := make([]models.Note, 0, len(notes))
	for _, n := range notes {
		if pred(n) {
			out = append(out, n.Clone())
		}
	}
	return out
}

func clone(notes []models.Note) []models.Note {
	out := make([]models.Note, len(notes))
	for i, n := range notes {
		out[i] = n.Clone()
	}
	return out
}
