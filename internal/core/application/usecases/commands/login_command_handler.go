package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"paquexpress/internal/core/ports"
	"paquexpress/internal/pkg/errs"
	"paquexpress/internal/pkg/metrics"
	"paquexpress/internal/pkg/password"
	"paquexpress/internal/pkg/token"

	"github.com/google/uuid"
)

// TokenTypeBearer is the only token type issued.
const TokenTypeBearer = "bearer"

// ErrInvalidCredentials is returned for an unknown email and for a wrong
// password alike.
var ErrInvalidCredentials = errs.NewUnauthorizedError("invalid credentials")

// LoginResult is returned on successful login.
type LoginResult struct {
	Token     string
	TokenType string
	AgentID   int64
	AgentName string
}

// LoginCommandHandler authenticates an agent and issues a bearer token.
//
// Flow: look up the agent by email, verify the password, issue a token.
// When the email is unknown the password is still verified against a dummy
// hash of the same cost, so both failures take comparable time.
//
// Example:
//
//	handler, err := NewLoginCommandHandler(agents, hasher, issuer, 30*time.Minute, m)
//	result, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrUnauthorized) {
//	    // 401 invalid credentials
//	}
type LoginCommandHandler struct {
	agents    ports.AgentRepository
	hasher    password.Hasher
	issuer    token.Issuer
	ttl       time.Duration
	metrics   *metrics.Metrics
	dummyHash string
}

// NewLoginCommandHandler precomputes the dummy hash with hasher, which is the
// only way it can fail.
func NewLoginCommandHandler(
	agents ports.AgentRepository,
	hasher password.Hasher,
	issuer token.Issuer,
	ttl time.Duration,
	m *metrics.Metrics,
) (LoginCommandHandler, error) {
	dummyHash, err := hasher.Hash(uuid.NewString())
	if err != nil {
		return LoginCommandHandler{}, fmt.Errorf("prepare dummy password hash: %w", err)
	}

	return LoginCommandHandler{
		agents:    agents,
		hasher:    hasher,
		issuer:    issuer,
		ttl:       ttl,
		metrics:   m,
		dummyHash: dummyHash,
	}, nil
}

// Handle returns ErrInvalidCredentials for any credential failure. Storage and
// signing failures are returned wrapped and count as server errors.
func (h LoginCommandHandler) Handle(ctx context.Context, command LoginCommand) (LoginResult, error) {
	if err := command.Validate(); err != nil {
		return LoginResult{}, err
	}

	agent, err := h.agents.GetByEmail(ctx, command.Email())
	if errors.Is(err, errs.ErrObjectNotFound) {
		h.hasher.Verify(command.Password(), h.dummyHash)
		h.metrics.RecordLogin(metrics.ResultUnauthorized)
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		h.metrics.RecordLogin(metrics.ResultError)
		return LoginResult{}, fmt.Errorf("look up agent: %w", err)
	}

	if !h.hasher.Verify(command.Password(), agent.PasswordHash()) {
		h.metrics.RecordLogin(metrics.ResultUnauthorized)
		return LoginResult{}, ErrInvalidCredentials
	}

	signed, err := h.issuer.Issue(agent.ID(), h.ttl)
	if err != nil {
		h.metrics.RecordLogin(metrics.ResultError)
		return LoginResult{}, fmt.Errorf("issue token: %w", err)
	}

	h.metrics.RecordLogin(metrics.ResultSuccess)
	return LoginResult{
		Token:     signed,
		TokenType: TokenTypeBearer,
		AgentID:   agent.ID(),
		AgentName: agent.Name(),
	}, nil
}
