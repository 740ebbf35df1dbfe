package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"paquexpress/internal/core/application/usecases/commands"
	"paquexpress/internal/core/domain/model/agent"
	"paquexpress/internal/pkg/errs"
	"paquexpress/internal/pkg/metrics"
	"paquexpress/internal/pkg/password"
	"paquexpress/internal/pkg/token"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockAgentRepository struct{ mock.Mock }

func (m *MockAgentRepository) GetByEmail(ctx context.Context, email string) (*agent.Agent, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agent.Agent), args.Error(1)
}

func (m *MockAgentRepository) Get(ctx context.Context, id int64) (*agent.Agent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agent.Agent), args.Error(1)
}

type failingIssuer struct{}

func (failingIssuer) Issue(int64, time.Duration) (string, error) {
	return "", errors.New("signing failed")
}

type loginFixture struct {
	repo    *MockAgentRepository
	hasher  *password.BcryptHasher
	issuer  *token.JWTIssuer
	metrics *metrics.Metrics
	handler commands.LoginCommandHandler
	agent   *agent.Agent
}

func newLoginFixture(t *testing.T) loginFixture {
	t.Helper()

	hasher, err := password.NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	issuer, err := token.NewJWTIssuer([]byte("test-secret"), "HS256")
	require.NoError(t, err)

	hash, err := hasher.Hash("secret123")
	require.NoError(t, err)

	a, err := agent.RestoreAgent(7, "Ana", "ana@paquexpress.mx", hash)
	require.NoError(t, err)

	repo := new(MockAgentRepository)
	m := metrics.NewMetrics(prometheus.NewRegistry())

	handler, err := commands.NewLoginCommandHandler(repo, hasher, issuer, 30*time.Minute, m)
	require.NoError(t, err)

	return loginFixture{repo: repo, hasher: hasher, issuer: issuer, metrics: m, handler: handler, agent: a}
}

func TestLoginCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	f := newLoginFixture(t)
	cmd, err := commands.NewLoginCommand("ana@paquexpress.mx", "secret123")
	require.NoError(t, err)

	f.repo.On("GetByEmail", ctx, "ana@paquexpress.mx").Return(f.agent, nil).Once()

	result, err := f.handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, commands.TokenTypeBearer, result.TokenType)
	assert.Equal(t, int64(7), result.AgentID)
	assert.Equal(t, "Ana", result.AgentName)

	agentID, err := f.issuer.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), agentID)

	assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.LoginsTotal.WithLabelValues(metrics.ResultSuccess)), 0)
	f.repo.AssertExpectations(t)
}

func TestLoginCommandHandler_Handle_InvalidCredentialsAreIndistinguishable(t *testing.T) {
	ctx := t.Context()
	f := newLoginFixture(t)

	wrongPassword, err := commands.NewLoginCommand("ana@paquexpress.mx", "wrong")
	require.NoError(t, err)
	unknownEmail, err := commands.NewLoginCommand("nobody@paquexpress.mx", "secret123")
	require.NoError(t, err)

	f.repo.On("GetByEmail", ctx, "ana@paquexpress.mx").Return(f.agent, nil).Once()
	f.repo.On("GetByEmail", ctx, "nobody@paquexpress.mx").
		Return(nil, errs.NewObjectNotFoundError("email", "nobody@paquexpress.mx")).Once()

	_, errWrongPassword := f.handler.Handle(ctx, wrongPassword)
	_, errUnknownEmail := f.handler.Handle(ctx, unknownEmail)

	require.ErrorIs(t, errWrongPassword, errs.ErrUnauthorized)
	require.ErrorIs(t, errUnknownEmail, errs.ErrUnauthorized)
	assert.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error())
	assert.Equal(t, commands.ErrInvalidCredentials, errWrongPassword)
	assert.Equal(t, commands.ErrInvalidCredentials, errUnknownEmail)

	assert.InDelta(t, 2, testutil.ToFloat64(f.metrics.LoginsTotal.WithLabelValues(metrics.ResultUnauthorized)), 0)
	f.repo.AssertExpectations(t)
}

func TestLoginCommandHandler_Handle_RepositoryError(t *testing.T) {
	ctx := t.Context()
	f := newLoginFixture(t)
	cmd, err := commands.NewLoginCommand("ana@paquexpress.mx", "secret123")
	require.NoError(t, err)

	f.repo.On("GetByEmail", ctx, "ana@paquexpress.mx").Return(nil, errors.New("connection refused")).Once()

	_, err = f.handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.NotErrorIs(t, err, errs.ErrUnauthorized)
	require.EqualError(t, err, "look up agent: connection refused")
	assert.InDelta(t, 1, testutil.ToFloat64(f.metrics.LoginsTotal.WithLabelValues(metrics.ResultError)), 0)
}

func TestLoginCommandHandler_Handle_IssueError(t *testing.T) {
	ctx := t.Context()
	f := newLoginFixture(t)
	cmd, err := commands.NewLoginCommand("ana@paquexpress.mx", "secret123")
	require.NoError(t, err)

	handler, err := commands.NewLoginCommandHandler(f.repo, f.hasher, failingIssuer{}, time.Minute, nil)
	require.NoError(t, err)

	f.repo.On("GetByEmail", ctx, "ana@paquexpress.mx").Return(f.agent, nil).Once()

	_, err = handler.Handle(ctx, cmd)

	require.EqualError(t, err, "issue token: signing failed")
}

func TestLoginCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	f := newLoginFixture(t)
	cmd := commands.LoginCommand{} // not constructed properly

	_, err := f.handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrLoginCommandIsNotConstructed)
	f.repo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
}
