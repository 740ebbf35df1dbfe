package agent

import (
	"errors"
	"fmt"
	"strings"

	"paquexpress/internal/pkg/errs"
	"paquexpress/internal/pkg/guard"
)

var (
	// ErrAgentIsNotConstructed is returned when an Agent was not built by RestoreAgent.
	ErrAgentIsNotConstructed = errors.New("Agent must be created via RestoreAgent constructor")
	// ErrNameIsRequired is returned for an empty display name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrEmailIsRequired is returned for an empty login email.
	ErrEmailIsRequired = errs.NewValueIsRequiredError("email")
	// ErrPasswordHashIsRequired is returned for an empty password hash.
	ErrPasswordHashIsRequired = errs.NewValueIsRequiredError("password hash")
)

// Profile is the minimal agent projection handed to authenticated requests.
type Profile struct {
	ID   int64
	Name string
}

// Agent is a delivery person identified by a numeric id and a unique email.
//
// Invariants:
//   - id is positive
//   - name, email and password hash are non-empty
//   - the core never mutates an Agent
//
// Example:
//
//	a, err := agent.RestoreAgent(7, "Ana", "a@x.com", hash)
//	if err != nil {
//	    // corrupted row
//	}
//	profile := a.Profile()
type Agent struct {
	id           int64
	name         string
	email        string
	passwordHash string
	guard        guard.ConstructorGuard
}

// RestoreAgent rebuilds an Agent read from storage. All violations are
// reported together.
func RestoreAgent(id int64, name, email, passwordHash string) (*Agent, error) {
	a := &Agent{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		a.setID(id),
		a.setName(name),
		a.setEmail(email),
		a.setPasswordHash(passwordHash),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// Validate reports whether the agent was built by RestoreAgent.
func (a *Agent) Validate() error {
	if a == nil {
		return ErrAgentIsNotConstructed
	}
	return a.guard.Validate(ErrAgentIsNotConstructed)
}

// IsEqual compares agents by id.
func (a *Agent) IsEqual(other *Agent) bool {
	return other != nil && a.id == other.id
}

func (a *Agent) ID() int64 {
	return a.id
}

func (a *Agent) Name() string {
	return a.name
}

func (a *Agent) Email() string {
	return a.email
}

// PasswordHash returns the stored self-describing hash.
func (a *Agent) PasswordHash() string {
	return a.passwordHash
}

// Profile returns the id and display name only.
func (a *Agent) Profile() Profile {
	return Profile{ID: a.id, Name: a.name}
}

func (a *Agent) setID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not greater than 0", id))
	}
	a.id = id
	return nil
}

func (a *Agent) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameIsRequired
	}
	a.name = name
	return nil
}

func (a *Agent) setEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return ErrEmailIsRequired
	}
	a.email = email
	return nil
}

func (a *Agent) setPasswordHash(hash string) error {
	if hash == "" {
		return ErrPasswordHashIsRequired
	}
	a.passwordHash = hash
	return nil
}
