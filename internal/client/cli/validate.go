package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MinPasswordLength is enforced on the prompt before credentials are sent.
const MinPasswordLength = 6

var validate = validator.New(validator.WithRequiredStructEnabled())

type credentialsForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// validateCredentials checks the email format and the password length and
// returns a message suitable for the user.
func validateCredentials(email string, password []byte) error {
	err := validate.Struct(credentialsForm{Email: email, Password: string(password)})
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "email":
			msgs = append(msgs, "Please enter a valid email address")
		case "min":
			msgs = append(msgs, fmt.Sprintf("Password must be at least %d characters", MinPasswordLength))
		default:
			msgs = append(msgs, fe.Error())
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
