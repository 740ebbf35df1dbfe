package queries_test

import (
	"testing"

	"paquexpress/internal/core/application/usecases/queries"
	"paquexpress/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetAssignedPackagesQuery(t *testing.T) {
	t.Run("valid agent id", func(t *testing.T) {
		query, err := queries.NewGetAssignedPackagesQuery(7)

		require.NoError(t, err)
		require.NoError(t, query.Validate())
		assert.Equal(t, int64(7), query.AgentID())
	})

	t.Run("non positive agent id", func(t *testing.T) {
		_, err := queries.NewGetAssignedPackagesQuery(0)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestGetAssignedPackagesQuery_Validate_ZeroValue(t *testing.T) {
	var query queries.GetAssignedPackagesQuery // zero value, not constructed via constructor

	err := query.Validate()

	require.ErrorIs(t, err, queries.ErrGetAssignedPackagesQueryIsNotConstructed)
}
