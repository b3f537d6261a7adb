package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophnotes/internal/client/editor"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/client/store"
)

// getMultiline is a test seam for GetMultiline.
var getMultiline = GetMultiline

// Refresh reloads the collection from the service.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.notes.FetchAll(ctx); err != nil {
		return a.fail(err)
	}
	a.printf("Loaded %d notes", len(a.notes.Notes()))
	return nil
}

// List prints the collection. Arguments pick a filter (all, favorites,
// recent) and a sort key (title, created, updated) in any order.
func (a *App) List(ctx context.Context, args []string) error {
	q := store.Query{RecentWindow: a.config.RecentWindow}
	for _, arg := range args {
		if f, err := store.ParseFilter(arg); err == nil {
			q.Filter = f
			continue
		}
		if k, err := store.ParseSortKey(arg); err == nil {
			q.Sort = k
			continue
		}
		a.printf("Usage: list [all|favorites|recent] [title|created|updated]")
		return fmt.Errorf("bad list argument %q", arg)
	}

	a.printView(a.notes.View(q))
	return nil
}

func (a *App) Search(ctx context.Context, args []string) error {
	term := strings.Join(args, " ")
	if strings.TrimSpace(term) == "" {
		a.printf("Usage: search <term>")
		return nil
	}
	a.printView(a.notes.View(store.Query{Term: term}))
	return nil
}

func (a *App) printView(notes []models.Note) {
	if len(notes) == 0 {
		a.printf("No notes found. Type 'new' to create one.")
		return
	}
	writeNoteList(a.out, notes)
}

// Show reloads one note from the service and prints it.
func (a *App) Show(ctx context.Context, args []string) error {
	id, ok := a.noteID(args, "show <id>")
	if !ok {
		return nil
	}

	n, err := a.notes.Get(ctx, id)
	if err != nil {
		return a.fail(err)
	}
	a.notes.Select(n.ID)
	writeNote(a.out, *n)
	return nil
}

// New writes a new note. The draft is auto-saved while the content is
// being typed and saved once more when input ends.
func (a *App) New(ctx context.Context) error {
	ed := a.openEditor(nil)
	defer ed.Close()

	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	ed.SetTitle(title)

	content, err := getMultiline(a.reader, "Content", a.out)
	if err != nil {
		return err
	}
	ed.SetContent(content)

	return a.finishEditing(ctx, ed, true)
}

// Edit changes the title and content of a note. Empty answers keep the
// current values.
func (a *App) Edit(ctx context.Context, args []string) error {
	id, ok := a.noteID(args, "edit <id>")
	if !ok {
		return nil
	}

	n, found := a.notes.Note(id)
	if !found {
		var err error
		if n, err = a.notes.Get(ctx, id); err != nil {
			return a.fail(err)
		}
	}

	ed := a.openEditor(n)
	defer ed.Close()

	title, err := getSimpleText(a.reader, fmt.Sprintf("Title [%s]", n.Title), a.out)
	if err != nil {
		return err
	}
	if title != "" {
		ed.SetTitle(title)
	}

	content, err := getMultiline(a.reader, "Content (empty keeps the current text)", a.out)
	if err != nil {
		return err
	}
	if content != "" {
		ed.SetContent(content)
	}

	return a.finishEditing(ctx, ed, false)
}

func (a *App) openEditor(n *models.Note) *editor.Editor {
	return editor.New(a.notes, n, a.config.AutoSaveDelay,
		editor.WithLogger(a.log),
		editor.OnAutoSave(func(err error) {
			if err == nil {
				printlnFn("(draft auto-saved)")
			}
		}),
	)
}

// finishEditing saves what auto-save has not saved yet.
func (a *App) finishEditing(ctx context.Context, ed *editor.Editor, isNew bool) error {
	if ed.Draft().Blank() {
		a.printf("Nothing to save")
		return nil
	}
	if !ed.Dirty() {
		if isNew && ed.ID() != "" {
			a.printf("Note saved (%s)", shortID(ed.ID()))
		} else {
			a.printf("No changes")
		}
		return nil
	}

	st := ed.Stats()
	if st.OverLimit {
		a.printf("Warning: content is %d characters, above the recommended %d", st.Chars, models.ContentSoftLimit)
	}

	if err := ed.Save(ctx); err != nil {
		return a.fail(err)
	}
	a.printf("Note saved (%s)", shortID(ed.ID()))
	return nil
}

// Delete asks for confirmation and deletes a note.
func (a *App) Delete(ctx context.Context, args []string) error {
	id, ok := a.noteID(args, "delete <id>")
	if !ok {
		return nil
	}

	prompt := "Delete this note?"
	if n, found := a.notes.Note(id); found {
		prompt = fmt.Sprintf("Delete %q?", n.Title)
	}
	if !GetConfirmation(a.reader, prompt, a.out) {
		a.printf("Cancelled")
		return nil
	}

	if err := a.notes.Delete(ctx, id); err != nil {
		return a.fail(err)
	}
	a.printf("Note deleted")
	return nil
}

func (a *App) Favorite(ctx context.Context, args []string) error {
	id, ok := a.noteID(args, "fav <id>")
	if !ok {
		return nil
	}
	fav, found := a.notes.ToggleFavorite(id)
	if !found {
		return a.fail(errUnknownNote)
	}
	if fav {
		a.printf("Added to favorites")
	} else {
		a.printf("Removed from favorites")
	}
	return nil
}

func (a *App) Categorize(ctx context.Context, args []string) error {
	id, ok := a.noteID(args, "category <id> <name>")
	if !ok {
		return nil
	}
	if !a.notes.SetCategory(id, strings.Join(args[1:], " ")) {
		return a.fail(errUnknownNote)
	}
	a.printf("Category updated")
	return nil
}

func (a *App) Tag(ctx context.Context, args []string) error {
	id, ok := a.noteID(args, "tags <id> <tag>...")
	if !ok {
		return nil
	}
	if !a.notes.SetTags(id, args[1:]) {
		return a.fail(errUnknownNote)
	}
	a.printf("Tags updated")
	return nil
}

func (a *App) Prioritize(ctx context.Context, args []string) error {
	if len(args) != 2 {
		a.printf("Usage: priority <id> low|medium|high")
		return nil
	}
	p, valid := models.ParsePriority(args[1])
	if !valid {
		a.printf("Usage: priority <id> low|medium|high")
		return nil
	}
	if !a.notes.SetPriority(a.resolveID(args[0]), p) {
		return a.fail(errUnknownNote)
	}
	a.printf("Priority set to %s", p)
	return nil
}

// noteID takes the note id from the first argument, printing usage when it
// is missing.
func (a *App) noteID(args []string, usage string) (string, bool) {
	if len(args) == 0 {
		a.printf("Usage: %s", usage)
		return "", false
	}
	return a.resolveID(args[0]), true
}

// resolveID expands a unique id prefix, as printed by list, to the full id.
// Anything else is returned unchanged.
func (a *App) resolveID(arg string) string {
	var match string
	for _, n := range a.notes.Notes() {
		if n.ID == arg {
			return arg
		}
		if strings.HasPrefix(n.ID, arg) {
			if match != "" {
				return arg
			}
			match = n.ID
		}
	}
	if match == "" {
		return arg
	}
	return match
}
