package queries

import (
	"context"
	"errors"
	"fmt"

	"paquexpress/internal/core/domain/model/agent"
	"paquexpress/internal/core/ports"
	"paquexpress/internal/pkg/errs"
	"paquexpress/internal/pkg/token"
)

// ErrCouldNotValidateCredentials is returned for a bad token and for a token
// whose agent no longer exists.
var ErrCouldNotValidateCredentials = errs.NewUnauthorizedError("could not validate credentials")

// ResolveSessionQueryHandler verifies a token and loads the agent on every
// call. Nothing is cached, so a deleted agent loses access immediately.
type ResolveSessionQueryHandler struct {
	verifier token.Verifier
	agents   ports.AgentRepository
}

func NewResolveSessionQueryHandler(verifier token.Verifier, agents ports.AgentRepository) ResolveSessionQueryHandler {
	return ResolveSessionQueryHandler{verifier: verifier, agents: agents}
}

// Handle returns ErrCouldNotValidateCredentials for every credential failure.
// Storage failures are returned wrapped.
func (h ResolveSessionQueryHandler) Handle(ctx context.Context, query ResolveSessionQuery) (agent.Profile, error) {
	if err := query.Validate(); err != nil {
		return agent.Profile{}, err
	}

	agentID, err := h.verifier.Verify(query.Token())
	if err != nil {
		return agent.Profile{}, ErrCouldNotValidateCredentials
	}

	a, err := h.agents.Get(ctx, agentID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return agent.Profile{}, ErrCouldNotValidateCredentials
	}
	if err != nil {
		return agent.Profile{}, fmt.Errorf("load agent %d: %w", agentID, err)
	}

	return a.Profile(), nil
}
