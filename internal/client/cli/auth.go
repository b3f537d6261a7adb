package cli

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var confirmPassword = func(w io.Writer) ([]byte, error) { return GetPasswordPrompt(w, "Confirm password: ") }

var (
	errPasswordMismatch = errors.New("passwords do not match")
	errUnknownNote      = errors.New("note not found in the local list, try 'refresh'")
)

// Register prompts for an email, a password and its confirmation, and
// creates the account. The session is not established: the user logs in
// afterwards. Password buffers are wiped before returning.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := validateCredentials(email, password); err != nil {
		return a.fail(err)
	}

	confirm, err := confirmPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if string(confirm) != string(password) {
		return a.fail(errPasswordMismatch)
	}

	if _, err := a.auth.Register(ctx, models.Credentials{Email: email, Password: string(password)}); err != nil {
		return a.fail(err)
	}

	a.printf("Registration successful! Please log in.")
	return nil
}

// Login prompts for credentials, authenticates and loads the notes.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		a.printf("Already logged in as %s", a.getStatus())
		return nil
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := validateCredentials(email, password); err != nil {
		return a.fail(err)
	}

	user, err := a.auth.Login(ctx, models.Credentials{Email: strings.TrimSpace(email), Password: string(password)})
	if err != nil {
		return a.fail(err)
	}

	a.printf("Welcome, %s!", user.Email)
	return a.Refresh(ctx)
}

// Logout ends the session, removes the persisted token and forgets the notes.
func (a *App) Logout(ctx context.Context) error {
	a.notes.Clear()
	if err := a.auth.Logout(ctx); err != nil {
		return a.fail(err)
	}
	a.printf("Logged out")
	return nil
}

// RefreshToken exchanges the access token for a new one.
func (a *App) RefreshToken(ctx context.Context) error {
	if err := a.auth.Refresh(ctx); err != nil {
		return a.fail(err)
	}
	a.printf("Token refreshed")
	return nil
}
