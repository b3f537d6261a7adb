package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	RefreshToken(ctx context.Context) error

	List(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	New(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Favorite(ctx context.Context, args []string) error
	Categorize(ctx context.Context, args []string) error
	Tag(ctx context.Context, args []string) error
	Prioritize(ctx context.Context, args []string) error
	Refresh(ctx context.Context) error
	Stats(ctx context.Context) error
}

const (
	helpGuest  = "Available commands: register, login, stats, exit"
	helpMember = "Available commands: (l)ist [all|favorites|recent] [title|created|updated], search <term>, " +
		"show <id>, new, edit <id>, delete <id>, fav <id>, category <id> <name>, tags <id> <tag>..., " +
		"priority <id> low|medium|high, refresh, token, stats, logout, exit"
)

// runREPL starts a simple read-eval-print loop for the gophnotes client.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on 'a'. The loop exits on EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
//	Not logged in:
//	  - help             show available commands
//	  - register         create an account
//	  - login            authenticate
//	  - stats            request counts per operation
//	  - exit | quit      leave the program
//
//	Logged in:
//	  - list             list notes, optionally filtered and sorted
//	  - search <term>    notes whose title or content contains term
//	  - show <id>        reload and print one note
//	  - new              write a new note
//	  - edit <id>        edit a note
//	  - delete <id>      delete a note
//	  - fav <id>         toggle the favorite flag
//	  - category, tags, priority   set local-only attributes
//	  - refresh          reload notes from the service
//	  - token            refresh the access token
//	  - logout           log out
//
// Errors returned by handlers are ignored here; handlers report their own
// errors.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("gn> %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpMember)
			} else {
				printlnFn(helpGuest)
			}
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		case "register":
			_ = a.Register(ctx)
			continue
		case "login":
			_ = a.Login(ctx)
			continue
		case "stats":
			_ = a.Stats(ctx)
			continue
		}

		if !a.isLoggedIn() {
			if isMemberCommand(cmd) {
				printlnFn("Please log in first")
			} else {
				printlnFn("Unknown command:", cmd)
			}
			continue
		}

		switch cmd {
		case "l", "list":
			_ = a.List(ctx, args)
		case "search":
			_ = a.Search(ctx, args)
		case "show":
			_ = a.Show(ctx, args)
		case "new":
			_ = a.New(ctx)
		case "edit":
			_ = a.Edit(ctx, args)
		case "delete", "rm":
			_ = a.Delete(ctx, args)
		case "fav":
			_ = a.Favorite(ctx, args)
		case "category":
			_ = a.Categorize(ctx, args)
		case "tags":
			_ = a.Tag(ctx, args)
		case "priority":
			_ = a.Prioritize(ctx, args)
		case "refresh":
			_ = a.Refresh(ctx)
		case "token":
			_ = a.RefreshToken(ctx)
		case "logout":
			_ = a.Logout(ctx)
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func isMemberCommand(cmd string) bool {
	switch cmd {
	case "l", "list", "search", "show", "new", "edit", "delete", "rm", "fav",
		"category", "tags", "priority", "refresh", "token", "logout":
		return true
	}
	return false
}
