package main

import (
	"bytes"
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"paquexpress/internal/adapters/out/postgres/pgtest"
	"paquexpress/internal/pkg/errs"
	"paquexpress/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

const seedYAML = `
agents:
  - name: Ana Torres
    email: ana@paquexpress.mx
    password: secret123
  - name: Luis Pérez
    email: luis@paquexpress.mx
    password: hunter22
packages:
  - code: PQX-0042
    destination: Av. Reforma 1, CDMX
    agent: ana@paquexpress.mx
  - code: PQX-0043
    destination: Calle 5, Puebla
    state: delivered
    agent: ana@paquexpress.mx
  - code: PQX-0044
    destination: Calle 9, Toluca
    agent: luis@paquexpress.mx
`

func TestReadSeedFile(t *testing.T) {
	seedFile, err := ReadSeedFile(strings.NewReader(seedYAML))

	require.NoError(t, err)
	require.Len(t, seedFile.Agents, 2)
	require.Len(t, seedFile.Packages, 3)
	assert.Equal(t, "ana@paquexpress.mx", seedFile.Packages[0].Agent)
	assert.Equal(t, "delivered", seedFile.Packages[1].State)
}

func TestReadSeedFile_Empty(t *testing.T) {
	seedFile, err := ReadSeedFile(strings.NewReader(""))

	require.NoError(t, err)
	assert.Empty(t, seedFile.Agents)
	assert.Empty(t, seedFile.Packages)
}

func TestReadSeedFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
	}{
		{
			name:    "missing password",
			yaml:    "agents:\n  - name: Ana\n    email: a@x.com\n",
			wantErr: errs.ErrValueIsRequired,
		},
		{
			name:    "unknown state",
			yaml:    "packages:\n  - code: P1\n    destination: D\n    agent: a@x.com\n    state: LOST\n",
			wantErr: errs.ErrValueIsInvalid,
		},
		{
			name:    "package without agent",
			yaml:    "packages:\n  - code: P1\n    destination: D\n",
			wantErr: errs.ErrValueIsRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadSeedFile(strings.NewReader(tt.yaml))

			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestReadSeedFile_UnknownKey(t *testing.T) {
	_, err := ReadSeedFile(strings.NewReader("couriers:\n  - name: Ana\n"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode seed file")
}

func TestHashPasswordCmd(t *testing.T) {
	t.Setenv("BCRYPT_COST", "4")

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"--env-file", filepath.Join(t.TempDir(), "absent.env"), "hash-password", "secret123"})

	require.NoError(t, root.Execute())

	hash := strings.TrimSpace(out.String())
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("secret123")))

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, 4, cost)
}

func TestHashPasswordCmd_RequiresArgument(t *testing.T) {
	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"hash-password"})

	require.Error(t, root.Execute())
}

// SeedIntegrationTestSuite loads seed files into PostgreSQL through lib/pq.
type SeedIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	db       *sql.DB
	hasher   *password.BcryptHasher
}

func (suite *SeedIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database

	db, err := sql.Open("postgres", database.DSN)
	suite.Require().NoError(err)
	suite.db = db

	hasher, err := password.NewBcryptHasher(bcrypt.MinCost)
	suite.Require().NoError(err)
	suite.hasher = hasher
}

func (suite *SeedIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
}

func (suite *SeedIntegrationTestSuite) TearDownSuite() {
	if suite.db != nil {
		_ = suite.db.Close()
	}
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

func (suite *SeedIntegrationTestSuite) count(table string) int64 {
	var n int64
	suite.Require().NoError(suite.database.DB.Raw("SELECT count(*) FROM " + table).Scan(&n).Error)
	return n
}

func (suite *SeedIntegrationTestSuite) TestSeed_LoadsAgentsAndPackages() {
	seedFile, err := ReadSeedFile(strings.NewReader(seedYAML))
	suite.Require().NoError(err)

	result, err := Seed(suite.T().Context(), suite.db, suite.hasher, seedFile)

	suite.Require().NoError(err)
	suite.Equal(SeedResult{Agents: 2, Packages: 3}, result)
	suite.Equal(int64(2), suite.count("agents"))
	suite.Equal(int64(3), suite.count("packages"))

	var hash string
	suite.Require().NoError(suite.database.DB.Raw(
		"SELECT password_hash FROM agents WHERE email = ?", "ana@paquexpress.mx",
	).Scan(&hash).Error)
	suite.True(suite.hasher.Verify("secret123", hash))

	var state string
	var agentEmail string
	suite.Require().NoError(suite.database.DB.Raw(`
		SELECT p.delivery_state, a.email
		FROM packages p JOIN agents a ON a.id = p.assigned_agent_id
		WHERE p.unique_code = ?`, "PQX-0043",
	).Row().Scan(&state, &agentEmail))
	suite.Equal("DELIVERED", state)
	suite.Equal("ana@paquexpress.mx", agentEmail)
}

func (suite *SeedIntegrationTestSuite) TestSeed_PackagesForExistingAgent() {
	suite.Require().NoError(suite.database.InsertAgent(7, "Ana Torres", "ana@paquexpress.mx", "hash"))

	result, err := Seed(suite.T().Context(), suite.db, suite.hasher, SeedFile{
		Packages: []SeedPackage{{Code: "PQX-0042", Destination: "Av. Reforma 1", Agent: "ana@paquexpress.mx"}},
	})

	suite.Require().NoError(err)
	suite.Equal(SeedResult{Packages: 1}, result)

	state, err := suite.database.PackageState(1)
	suite.Require().NoError(err)
	suite.Equal("ASSIGNED", state)
}

func (suite *SeedIntegrationTestSuite) TestSeed_UnknownAgentRollsBack() {
	_, err := Seed(suite.T().Context(), suite.db, suite.hasher, SeedFile{
		Agents:   []SeedAgent{{Name: "Ana", Email: "ana@paquexpress.mx", Password: "secret123"}},
		Packages: []SeedPackage{{Code: "PQX-0042", Destination: "Av. Reforma 1", Agent: "nobody@paquexpress.mx"}},
	})

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Equal(int64(0), suite.count("agents"))
	suite.Equal(int64(0), suite.count("packages"))
}

func (suite *SeedIntegrationTestSuite) TestSeed_DuplicateCodeRollsBack() {
	_, err := Seed(suite.T().Context(), suite.db, suite.hasher, SeedFile{
		Agents: []SeedAgent{{Name: "Ana", Email: "ana@paquexpress.mx", Password: "secret123"}},
		Packages: []SeedPackage{
			{Code: "PQX-0042", Destination: "Av. Reforma 1", Agent: "ana@paquexpress.mx"},
			{Code: "PQX-0042", Destination: "Calle 5", Agent: "ana@paquexpress.mx"},
		},
	})

	suite.Require().Error(err)
	suite.Equal(int64(0), suite.count("agents"))
	suite.Equal(int64(0), suite.count("packages"))
}

func TestSeedIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(SeedIntegrationTestSuite))
}
