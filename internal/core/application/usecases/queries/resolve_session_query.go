// Package queries contains read operations. Queries never open a unit of work
// and never modify state.
package queries

import (
	"errors"
	"strings"

	"paquexpress/internal/pkg/errs"
	"paquexpress/internal/pkg/guard"
)

var (
	ErrResolveSessionQueryIsNotConstructed = errors.New(
		"ResolveSessionQuery must be created via NewResolveSessionQuery constructor",
	)
	ErrTokenIsRequired = errs.NewValueIsRequiredError("token")
)

// ResolveSessionQuery turns a bearer token into the profile of the agent it
// was issued to.
//
// Example:
//
//	query, err := NewResolveSessionQuery(bearer)
//	if err != nil {
//	    return err
//	}
//	profile, err := handler.Handle(ctx, query)
type ResolveSessionQuery struct {
	token string

	guard guard.ConstructorGuard
}

// NewResolveSessionQuery trims the token and rejects an empty one.
func NewResolveSessionQuery(token string) (ResolveSessionQuery, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return ResolveSessionQuery{}, ErrTokenIsRequired
	}
	return ResolveSessionQuery{token: token, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q ResolveSessionQuery) Validate() error {
	return q.guard.Validate(ErrResolveSessionQueryIsNotConstructed)
}

func (q ResolveSessionQuery) Token() string {
	return q.token
}
