// Package cli provides the interactive gophnotes command-line client.
//
// It wires configuration, the local token database, the notes service client
// (HTTP or the in-memory mock), the session and notes stores, and a REPL.
// Typical flow: restore the saved session, log in or register, then list,
// read and edit notes. New and edited notes are auto-saved while typing.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
