package commands_test

import (
	"testing"

	"paquexpress/internal/core/application/usecases/commands"
	"paquexpress/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoginCommand_Success(t *testing.T) {
	// Act
	cmd, err := commands.NewLoginCommand("  ana@paquexpress.mx ", "secret123")

	// Assert
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, "ana@paquexpress.mx", cmd.Email())
	assert.Equal(t, "secret123", cmd.Password())
}

func TestNewLoginCommand_KeepsPasswordWhitespace(t *testing.T) {
	cmd, err := commands.NewLoginCommand("ana@paquexpress.mx", " secret ")

	require.NoError(t, err)
	assert.Equal(t, " secret ", cmd.Password())
}

func TestNewLoginCommand_MissingFields(t *testing.T) {
	// Act
	cmd, err := commands.NewLoginCommand("   ", "")

	// Assert
	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrEmailIsRequired)
	require.ErrorIs(t, err, commands.ErrPasswordIsRequired)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Zero(t, cmd)
}

func TestLoginCommand_Validate_ZeroValue(t *testing.T) {
	// Arrange
	var cmd commands.LoginCommand // zero value, not constructed via constructor

	// Act
	err := cmd.Validate()

	// Assert
	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrLoginCommandIsNotConstructed)
}
