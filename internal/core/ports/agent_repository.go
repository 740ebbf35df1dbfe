// Package ports defines the persistence contracts the application layer
// depends on. Adapters under internal/adapters/out implement them.
package ports

import (
	"context"

	"paquexpress/internal/core/domain/model/agent"
)

// AgentRepository reads agents. Agents are created out-of-band, so the
// contract has no write methods.
type AgentRepository interface {
	// GetByEmail finds an agent by exact email match.
	// Returns an errs.ObjectNotFoundError when no agent has that email.
	GetByEmail(ctx context.Context, email string) (*agent.Agent, error)

	// Get finds an agent by id.
	// Returns an errs.ObjectNotFoundError when no agent has that id.
	Get(ctx context.Context, id int64) (*agent.Agent, error)
}
