package commands

import (
	"errors"
	"strings"

	"paquexpress/internal/pkg/errs"
	"paquexpress/internal/pkg/guard"
)

var (
	ErrLoginCommandIsNotConstructed = errors.New(
		"LoginCommand must be created via NewLoginCommand constructor",
	)
	ErrEmailIsRequired    = errs.NewValueIsRequiredError("email")
	ErrPasswordIsRequired = errs.NewValueIsRequiredError("password")
)

// LoginCommand carries the credentials of one login attempt.
//
// Example:
//
//	cmd, err := NewLoginCommand("a@x.com", "secret123")
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
type LoginCommand struct {
	email    string
	password string

	guard guard.ConstructorGuard
}

// NewLoginCommand trims the email. The password is kept byte for byte.
func NewLoginCommand(email, password string) (LoginCommand, error) {
	command := LoginCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setEmail(email),
		command.setPassword(password),
	); err != nil {
		return LoginCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c LoginCommand) Validate() error {
	return c.guard.Validate(ErrLoginCommandIsNotConstructed)
}

func (c LoginCommand) Email() string {
	return c.email
}

func (c LoginCommand) Password() string {
	return c.password
}

func (c *LoginCommand) setEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmailIsRequired
	}
	c.email = email
	return nil
}

func (c *LoginCommand) setPassword(password string) error {
	if password == "" {
		return ErrPasswordIsRequired
	}
	c.password = password
	return nil
}
