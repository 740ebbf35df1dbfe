package delivery_test

import (
	"testing"
	"time"

	"paquexpress/internal/core/domain/model/delivery"
	"paquexpress/internal/core/domain/model/kernel"
	"paquexpress/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord(t *testing.T) {
	point, _ := kernel.NewGeoPoint(19.4, -99.1)
	at := time.Date(2026, 3, 1, 10, 30, 0, 0, time.FixedZone("CST", -6*3600))

	t.Run("should create record with fresh id", func(t *testing.T) {
		r, err := delivery.NewRecord(42, 7, point, "http://x/p.jpg", at)

		require.NoError(t, err)
		require.NoError(t, r.Validate())
		require.NoError(t, r.ID().Validate())
		assert.Equal(t, int64(42), r.PackageID())
		assert.Equal(t, int64(7), r.AgentID())
		assert.Equal(t, point, r.Location())
		assert.Equal(t, "http://x/p.jpg", r.PhotoURL())
		assert.True(t, at.Equal(r.DeliveredAt()))
		assert.Equal(t, time.UTC, r.DeliveredAt().Location())
	})

	t.Run("two records never share an id", func(t *testing.T) {
		r1, _ := delivery.NewRecord(42, 7, point, "http://x/p.jpg", at)
		r2, _ := delivery.NewRecord(42, 7, point, "http://x/p.jpg", at)

		assert.False(t, r1.ID().IsEqual(r2.ID()))
	})

	t.Run("should report every invalid field", func(t *testing.T) {
		r, err := delivery.NewRecord(0, -1, kernel.GeoPoint{}, "  ", at)

		require.Error(t, err)
		assert.Nil(t, r)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.ErrorIs(t, err, kernel.ErrGeoPointIsNotConstructed)
		require.ErrorIs(t, err, delivery.ErrPhotoURLIsRequired)
		assert.Contains(t, err.Error(), "package id")
		assert.Contains(t, err.Error(), "agent id")
	})
}

func TestRestoreRecord(t *testing.T) {
	point, _ := kernel.NewGeoPoint(-33.9, 151.2)
	id := kernel.NewUUID()

	r, err := delivery.RestoreRecord(id, 1, 2, point, "http://x/q.jpg", time.Unix(0, 0))
	require.NoError(t, err)
	assert.True(t, id.IsEqual(r.ID()))

	_, err = delivery.RestoreRecord(kernel.UUID{}, 1, 2, point, "http://x/q.jpg", time.Unix(0, 0))
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestRecord_Validate(t *testing.T) {
	var nilRecord *delivery.Record
	assert.Equal(t, delivery.ErrRecordIsNotConstructed, nilRecord.Validate())
	assert.Equal(t, delivery.ErrRecordIsNotConstructed, (&delivery.Record{}).Validate())
}
