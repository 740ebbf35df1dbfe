package commands_test

import (
	"testing"

	"paquexpress/internal/core/application/usecases/commands"
	"paquexpress/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegisterDeliveryCommand_Success(t *testing.T) {
	// Act
	cmd, err := commands.NewRegisterDeliveryCommand(7, 42, 19.4326, -99.1332, " http://cdn.local/p.jpg ")

	// Assert
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, int64(7), cmd.AgentID())
	assert.Equal(t, int64(42), cmd.PackageID())
	assert.InDelta(t, 19.4326, cmd.Location().Latitude(), 0)
	assert.InDelta(t, -99.1332, cmd.Location().Longitude(), 0)
	assert.Equal(t, "http://cdn.local/p.jpg", cmd.PhotoURL())
}

func TestNewRegisterDeliveryCommand_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		agentID   int64
		packageID int64
		lat, lon  float64
		photoURL  string
		wantErr   error
	}{
		{name: "zero agent id", agentID: 0, packageID: 42, photoURL: "p.jpg", wantErr: errs.ErrValueIsInvalid},
		{name: "negative package id", agentID: 7, packageID: -1, photoURL: "p.jpg", wantErr: errs.ErrValueIsInvalid},
		{name: "latitude out of range", agentID: 7, packageID: 42, lat: 90.5, photoURL: "p.jpg", wantErr: errs.ErrValueIsOutOfRange},
		{name: "longitude out of range", agentID: 7, packageID: 42, lon: -181, photoURL: "p.jpg", wantErr: errs.ErrValueIsOutOfRange},
		{name: "blank photo url", agentID: 7, packageID: 42, photoURL: "  ", wantErr: commands.ErrPhotoEvidenceURLIsRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := commands.NewRegisterDeliveryCommand(tt.agentID, tt.packageID, tt.lat, tt.lon, tt.photoURL)

			require.Error(t, err)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, cmd)
		})
	}
}

func TestNewRegisterDeliveryCommand_ReportsAllViolations(t *testing.T) {
	_, err := commands.NewRegisterDeliveryCommand(0, 0, 100, 200, "")

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	require.ErrorIs(t, err, commands.ErrPhotoEvidenceURLIsRequired)
}

func TestRegisterDeliveryCommand_Validate_ZeroValue(t *testing.T) {
	// Arrange
	var cmd commands.RegisterDeliveryCommand // zero value, not constructed via constructor

	// Act
	err := cmd.Validate()

	// Assert
	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrRegisterDeliveryCommandIsNotConstructed)
}
