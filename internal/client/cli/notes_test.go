package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/stretchr/testify/require"
)

// loadedApp returns an App whose store holds the three seed notes.
func loadedApp(t *testing.T, input string) (*App, *bytes.Buffer) {
	t.Helper()
	a, _, out := newTestApp(t, input)
	require.NoError(t, a.Refresh(context.Background()))
	out.Reset()
	return a, out
}

func noteByTitle(t *testing.T, a *App, title string) models.Note {
	t.Helper()
	for _, n := range a.notes.Notes() {
		if n.Title == title {
			return n
		}
	}
	t.Fatalf("note %q not found", title)
	return models.Note{}
}

func TestRefresh_PrintsCount(t *testing.T) {
	a, _, out := newTestApp(t, "")
	require.NoError(t, a.Refresh(context.Background()))
	require.Contains(t, out.String(), "Loaded 3 notes")
}

func TestList(t *testing.T) {
	a, out := loadedApp(t, "")
	ctx := context.Background()

	require.NoError(t, a.List(ctx, nil))
	require.Contains(t, out.String(), "TITLE")
	require.Contains(t, out.String(), "Welcome to Your Notes App")
	require.Contains(t, out.String(), "Ideas for Weekend")

	out.Reset()
	require.NoError(t, a.List(ctx, []string{"favorites"}))
	require.Contains(t, out.String(), "No notes found")

	n := noteByTitle(t, a, "Ideas for Weekend")
	require.NoError(t, a.Favorite(ctx, []string{n.ID}))

	out.Reset()
	require.NoError(t, a.List(ctx, []string{"title", "favorites"}))
	require.Contains(t, out.String(), "Ideas for Weekend")
	require.NotContains(t, out.String(), "Welcome to Your Notes App")
}

func TestList_BadArgument(t *testing.T) {
	a, out := loadedApp(t, "")
	require.Error(t, a.List(context.Background(), []string{"sideways"}))
	require.Contains(t, out.String(), "Usage: list")
}

func TestSearch(t *testing.T) {
	a, out := loadedApp(t, "")
	ctx := context.Background()

	require.NoError(t, a.Search(ctx, []string{"WEEKEND"}))
	require.Contains(t, out.String(), "Ideas for Weekend")
	require.NotContains(t, out.String(), "Meeting Notes")

	out.Reset()
	require.NoError(t, a.Search(ctx, nil))
	require.Contains(t, out.String(), "Usage: search <term>")
}

func TestShow_ByPrefix(t *testing.T) {
	a, out := loadedApp(t, "")
	n := noteByTitle(t, a, "Meeting Notes - Project Planning")

	require.NoError(t, a.Show(context.Background(), []string{shortID(n.ID)}))
	require.Contains(t, out.String(), "id: "+n.ID)
	require.Contains(t, out.String(), "Next meeting scheduled for Friday at 2 PM.")
	require.Contains(t, out.String(), "words")

	sel := a.notes.Selected()
	require.NotNil(t, sel)
	require.Equal(t, n.ID, sel.ID)
}

func TestShow_Errors(t *testing.T) {
	a, out := loadedApp(t, "")
	ctx := context.Background()

	require.NoError(t, a.Show(ctx, nil))
	require.Contains(t, out.String(), "Usage: show <id>")

	require.Error(t, a.Show(ctx, []string{"missing"}))
	require.Contains(t, out.String(), "Error: Note not found")
}

func TestNew_SavesNote(t *testing.T) {
	a, out := loadedApp(t, "Groceries\nmilk\neggs\n\n")

	require.NoError(t, a.New(context.Background()))
	require.Contains(t, out.String(), "Note saved")

	notes := a.notes.Notes()
	require.Len(t, notes, 4)
	require.Equal(t, "Groceries", notes[0].Title)
	require.Equal(t, "milk\neggs", notes[0].Content)
}

func TestNew_UntitledGetsDefaultTitle(t *testing.T) {
	a, _ := loadedApp(t, "\nbody only\n\n")

	require.NoError(t, a.New(context.Background()))
	require.Equal(t, models.DefaultTitle, a.notes.Notes()[0].Title)
}

func TestNew_BlankDraftIsNotSaved(t *testing.T) {
	a, out := loadedApp(t, "\n\n")

	require.NoError(t, a.New(context.Background()))
	require.Contains(t, out.String(), "Nothing to save")
	require.Len(t, a.notes.Notes(), 3)
}

func TestEdit_EmptyAnswersKeepValues(t *testing.T) {
	a, out := loadedApp(t, "\nfresh body\n\n")
	n := noteByTitle(t, a, "Ideas for Weekend")

	require.NoError(t, a.Edit(context.Background(), []string{n.ID}))
	require.Contains(t, out.String(), "Note saved")

	got, ok := a.notes.Note(n.ID)
	require.True(t, ok)
	require.Equal(t, "Ideas for Weekend", got.Title)
	require.Equal(t, "fresh body", got.Content)
	require.False(t, got.UpdatedAt.Before(got.CreatedAt))
}

func TestEdit_NoChanges(t *testing.T) {
	a, out := loadedApp(t, "\n\n")
	n := noteByTitle(t, a, "Ideas for Weekend")

	require.NoError(t, a.Edit(context.Background(), []string{n.ID}))
	require.Contains(t, out.String(), "No changes")
}

func TestDelete(t *testing.T) {
	a, out := loadedApp(t, "n\ny\n")
	n := noteByTitle(t, a, "Ideas for Weekend")
	ctx := context.Background()

	require.NoError(t, a.Delete(ctx, []string{n.ID}))
	require.Contains(t, out.String(), "Cancelled")
	require.Len(t, a.notes.Notes(), 3)

	require.NoError(t, a.Delete(ctx, []string{n.ID}))
	require.Contains(t, out.String(), `Delete "Ideas for Weekend"?`)
	require.Contains(t, out.String(), "Note deleted")
	require.Len(t, a.notes.Notes(), 2)
}

func TestLocalAttributes(t *testing.T) {
	a, out := loadedApp(t, "")
	n := noteByTitle(t, a, "Meeting Notes - Project Planning")
	ctx := context.Background()

	require.NoError(t, a.Favorite(ctx, []string{n.ID}))
	require.Contains(t, out.String(), "Added to favorites")
	require.NoError(t, a.Categorize(ctx, []string{n.ID, "work", "stuff"}))
	require.NoError(t, a.Tag(ctx, []string{n.ID, "q3", "planning", "q3"}))
	require.NoError(t, a.Prioritize(ctx, []string{n.ID, "HIGH"}))
	require.Contains(t, out.String(), "Priority set to high")

	got, ok := a.notes.Note(n.ID)
	require.True(t, ok)
	require.True(t, got.Favorite)
	require.Equal(t, "work stuff", got.Category)
	require.Equal(t, []string{"planning", "q3"}, got.Tags)
	require.Equal(t, models.PriorityHigh, got.Priority)

	require.NoError(t, a.Favorite(ctx, []string{n.ID}))
	require.Contains(t, out.String(), "Removed from favorites")
}

func TestLocalAttributes_Errors(t *testing.T) {
	a, out := loadedApp(t, "")
	ctx := context.Background()

	require.Error(t, a.Favorite(ctx, []string{"missing"}))
	require.Contains(t, out.String(), "Error: note not found in the local list")

	require.NoError(t, a.Prioritize(ctx, []string{"missing", "urgent"}))
	require.Contains(t, out.String(), "Usage: priority <id> low|medium|high")

	require.NoError(t, a.Tag(ctx, nil))
	require.Contains(t, out.String(), "Usage: tags <id> <tag>...")
}

func TestResolveID(t *testing.T) {
	a, _ := loadedApp(t, "")
	n := noteByTitle(t, a, "Ideas for Weekend")

	require.Equal(t, n.ID, a.resolveID(n.ID))
	require.Equal(t, n.ID, a.resolveID(n.ID[:8]))
	require.Equal(t, "", a.resolveID(""))
	require.Equal(t, "zzz", a.resolveID("zzz"))
}
