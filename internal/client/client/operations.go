package client

// operation describes one endpoint of the contract: how its failures are
// classified and which message is used when the service gives none.
type operation struct {
	name     string
	kind     error
	fallback string
	// byID marks operations addressing a single note; a 404 on them is ErrNotFound.
	byID bool
}

var (
	opLogin    = operation{name: "login", kind: ErrAuthFailed, fallback: "Login failed"}
	opRegister = operation{name: "register", kind: ErrAuthFailed, fallback: "Registration failed"}
	opRefresh  = operation{name: "refresh", kind: ErrAuthFailed, fallback: "Token refresh failed"}
	opList     = operation{name: "list_notes", kind: ErrFetchFailed, fallback: "Failed to fetch notes"}
	opGet      = operation{name: "get_note", kind: ErrFetchFailed, fallback: "Failed to fetch note", byID: true}
	opCreate   = operation{name: "create_note", kind: ErrCreateFailed, fallback: "Failed to create note"}
	opUpdate   = operation{name: "update_note", kind: ErrUpdateFailed, fallback: "Failed to update note", byID: true}
	opDelete   = operation{name: "delete_note", kind: ErrDeleteFailed, fallback: "Failed to delete note", byID: true}
)

const notFoundMessage = "Note not found"

func (op operation) fail(message string) *Error {
	if message == "" {
		message = op.fallback
	}
	return newError(op.kind, message)
}

func (op operation) notFound(message string) *Error {
	if message == "" {
		message = notFoundMessage
	}
	return newError(ErrNotFound, message)
}
