package parcelrepo_test

import (
	"context"
	"testing"

	"paquexpress/internal/adapters/out/postgres/parcelrepo"
	"paquexpress/internal/adapters/out/postgres/pgtest"
	"paquexpress/internal/core/domain/model/parcel"
	"paquexpress/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

// ParcelRepositoryIntegrationTestSuite verifies parcel locking and the
// conditional delivered update against PostgreSQL.
type ParcelRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *parcelrepo.GormParcelRepository
}

func (suite *ParcelRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *ParcelRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())

	suite.repository = parcelrepo.NewGormParcelRepository(suite.database.DB)

	suite.Require().NoError(suite.database.InsertAgent(7, "Ana Torres", "a@x.com", "hash"))
	suite.Require().NoError(suite.database.InsertAgent(8, "Luis Pérez", "l@x.com", "hash"))
	suite.Require().NoError(suite.database.InsertPackage(42, "PQX-0042", "Av. Reforma 1", "ASSIGNED", 7))
	suite.Require().NoError(suite.database.InsertPackage(43, "PQX-0043", "Calle 5", "DELIVERED", 7))
}

func (suite *ParcelRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestGetAssignedForUpdate_Owner() {
	p, err := suite.repository.GetAssignedForUpdate(suite.T().Context(), 42, 7)

	suite.Require().NoError(err)
	suite.Equal(int64(42), p.ID())
	suite.Equal("PQX-0042", p.Code())
	suite.Equal("Av. Reforma 1", p.Destination())
	suite.Equal(parcel.Assigned, p.Status())
	suite.Equal(int64(7), p.AgentID())
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestGetAssignedForUpdate_DeliveredIsReadable() {
	p, err := suite.repository.GetAssignedForUpdate(suite.T().Context(), 43, 7)

	suite.Require().NoError(err)
	suite.Equal(parcel.Delivered, p.Status())
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestGetAssignedForUpdate_ForeignAgent() {
	p, err := suite.repository.GetAssignedForUpdate(suite.T().Context(), 42, 8)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Nil(p)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestGetAssignedForUpdate_Unknown() {
	_, err := suite.repository.GetAssignedForUpdate(suite.T().Context(), 999, 7)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestMarkDelivered_Success() {
	ctx := suite.T().Context()
	p, err := suite.repository.GetAssignedForUpdate(ctx, 42, 7)
	suite.Require().NoError(err)
	suite.Require().NoError(p.Deliver(7))

	suite.Require().NoError(suite.repository.MarkDelivered(ctx, p))

	state, err := suite.database.PackageState(42)
	suite.Require().NoError(err)
	suite.Equal("DELIVERED", state)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestMarkDelivered_ZeroRowsIsConflict() {
	ctx := suite.T().Context()
	p, err := suite.repository.GetAssignedForUpdate(ctx, 42, 7)
	suite.Require().NoError(err)
	suite.Require().NoError(p.Deliver(7))

	// Another request delivered it in between.
	suite.Require().NoError(suite.database.DB.Exec("UPDATE packages SET delivery_state = 'DELIVERED' WHERE id = 42").Error)

	err = suite.repository.MarkDelivered(ctx, p)

	suite.Require().ErrorIs(err, errs.ErrConflict)
	suite.Contains(err.Error(), "package already delivered or id incorrect")

	state, err := suite.database.PackageState(42)
	suite.Require().NoError(err)
	suite.Equal("DELIVERED", state)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestMarkDelivered_RequiresDeliveredState() {
	p, err := suite.repository.GetAssignedForUpdate(suite.T().Context(), 42, 7)
	suite.Require().NoError(err)

	err = suite.repository.MarkDelivered(suite.T().Context(), p)

	suite.Require().ErrorIs(err, parcelrepo.ErrNotDelivered)
	state, err := suite.database.PackageState(42)
	suite.Require().NoError(err)
	suite.Equal("ASSIGNED", state)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestMarkDelivered_Unconstructed() {
	err := suite.repository.MarkDelivered(suite.T().Context(), &parcel.Parcel{})

	suite.Require().ErrorIs(err, parcel.ErrParcelIsNotConstructed)
}

func (suite *ParcelRepositoryIntegrationTestSuite) TestGetAssignedForUpdate_LocksRow() {
	ctx := suite.T().Context()

	tx := suite.database.DB.WithContext(ctx).Begin()
	suite.Require().NoError(tx.Error)
	defer tx.Rollback()

	locked := parcelrepo.NewGormParcelRepository(tx)
	_, err := locked.GetAssignedForUpdate(ctx, 42, 7)
	suite.Require().NoError(err)

	// A second locking read without waiting must fail while the lock is held.
	other := suite.database.DB.WithContext(ctx).Begin()
	suite.Require().NoError(other.Error)
	defer other.Rollback()

	var id int64
	err = other.Raw("SELECT id FROM packages WHERE id = 42 FOR UPDATE NOWAIT").Scan(&id).Error
	suite.Require().Error(err)
}

func TestParcelRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ParcelRepositoryIntegrationTestSuite))
}
