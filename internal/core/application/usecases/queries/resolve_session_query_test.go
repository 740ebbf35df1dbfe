package queries_test

import (
	"testing"

	"paquexpress/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResolveSessionQuery_Success(t *testing.T) {
	query, err := queries.NewResolveSessionQuery(" abc.def.ghi ")

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, "abc.def.ghi", query.Token())
}

func TestNewResolveSessionQuery_EmptyToken(t *testing.T) {
	_, err := queries.NewResolveSessionQuery("   ")

	require.ErrorIs(t, err, queries.ErrTokenIsRequired)
}

func TestResolveSessionQuery_Validate_ZeroValue(t *testing.T) {
	var query queries.ResolveSessionQuery // zero value, not constructed via constructor

	err := query.Validate()

	require.ErrorIs(t, err, queries.ErrResolveSessionQueryIsNotConstructed)
}
