// Package client talks to the notes service.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) covering the
//     auth endpoints (Login, Register, Refresh) and note CRUD (ListNotes,
//     GetNote, CreateNote, UpdateNote, DeleteNote).
//  2. HTTPClient, a resty-based implementation of the REST contract. Every
//     response is the {success, message, data} envelope; keys are renamed from
//     snake_case to camelCase (CamelizeKeys) before binding to models.
//  3. MockClient, an in-memory implementation with the same semantics and an
//     optional artificial latency, used for offline demos and tests.
//  4. Local persistence bootstrap (InitDatabase, RunMigrations) for the
//     SQLite database that keeps the access token between runs.
//
// # Error Handling
//
// Failures are returned as *Error values whose kind can be matched with
// errors.Is against ErrAuthFailed, ErrFetchFailed, ErrCreateFailed,
// ErrUpdateFailed, ErrDeleteFailed, ErrNotFound and ErrNetwork. The error text
// is the service message, or a generic fallback when the service gave none.
// Calls are attempted exactly once.
//
// # Concurrency
//
// HTTPClient and MockClient are safe for concurrent use. All operations accept
// a context.Context and honor cancellation.
package client
