package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"paquexpress/internal/adapters/out/postgres/agentrepo"
	"paquexpress/internal/core/domain/model/parcel"
	"paquexpress/internal/pkg/errs"
	"paquexpress/internal/pkg/password"

	"github.com/lib/pq"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Default timeout for seed command.
const defaultSeedTimeout = 30 * time.Second

// SeedFile is the YAML layout read by the seed command.
//
//	agents:
//	  - name: Ana Torres
//	    email: ana@paquexpress.mx
//	    password: secret123
//	packages:
//	  - code: PQX-0042
//	    destination: Av. Reforma 1, CDMX
//	    agent: ana@paquexpress.mx
type SeedFile struct {
	Agents   []SeedAgent   `yaml:"agents"`
	Packages []SeedPackage `yaml:"packages"`
}

type SeedAgent struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

// SeedPackage references its agent by email. State defaults to ASSIGNED.
type SeedPackage struct {
	Code        string `yaml:"code"`
	Destination string `yaml:"destination"`
	State       string `yaml:"state"`
	Agent       string `yaml:"agent"`
}

// SeedResult counts inserted rows.
type SeedResult struct {
	Agents   int
	Packages int
}

type seedConfig struct {
	file    string
	timeout time.Duration
}

// NewSeedCmd creates the seed subcommand.
func NewSeedCmd() *cobra.Command {
	cfg := &seedConfig{}

	seed := &cobra.Command{
		Use:   "seed",
		Short: "Load agents and packages from a YAML file",
		Long: `Inserts agents (passwords are hashed with BCRYPT_COST) and bulk-loads their
packages with COPY, all in one transaction. Existing rows are not updated:
a duplicate email or package code aborts the whole load.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd, cfg)
		},
	}

	seed.Flags().StringVar(&cfg.file, "file", "seed.yaml", "YAML file with agents and packages")
	seed.Flags().DurationVar(&cfg.timeout, "timeout", defaultSeedTimeout, "timeout for database operations (e.g., 30s, 1m)")

	return seed
}

func runSeed(cmd *cobra.Command, cfg *seedConfig) error {
	appConfig, err := loadConfig()
	if err != nil {
		return err
	}

	f, err := os.Open(cfg.file)
	if err != nil {
		return fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	seedFile, err := ReadSeedFile(f)
	if err != nil {
		return err
	}

	hasher, err := password.NewBcryptHasher(appConfig.BcryptCost)
	if err != nil {
		return err
	}

	db, err := openDatabase(appConfig)
	if err != nil {
		return err
	}
	defer db.Close()

	// Use cmd.Context() to respect SIGINT/SIGTERM signals
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.timeout)
	defer cancel()

	result, err := Seed(ctx, db, hasher, seedFile)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "seeded %d agents and %d packages\n", result.Agents, result.Packages)
	return err
}

// ReadSeedFile decodes and checks a seed file. Unknown keys are rejected.
func ReadSeedFile(r io.Reader) (SeedFile, error) {
	var seedFile SeedFile

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&seedFile); err != nil && !errors.Is(err, io.EOF) {
		return SeedFile{}, fmt.Errorf("decode seed file: %w", err)
	}

	if err := seedFile.Validate(); err != nil {
		return SeedFile{}, err
	}
	return seedFile, nil
}

// Validate checks required fields and states. Package agents may refer to
// agents already in the database, so they are resolved during Seed.
func (s SeedFile) Validate() error {
	var problems []error

	for i, a := range s.Agents {
		if strings.TrimSpace(a.Name) == "" {
			problems = append(problems, errs.NewValueIsRequiredError(fmt.Sprintf("agents[%d].name", i)))
		}
		if strings.TrimSpace(a.Email) == "" {
			problems = append(problems, errs.NewValueIsRequiredError(fmt.Sprintf("agents[%d].email", i)))
		}
		if a.Password == "" {
			problems = append(problems, errs.NewValueIsRequiredError(fmt.Sprintf("agents[%d].password", i)))
		}
	}

	for i, p := range s.Packages {
		if strings.TrimSpace(p.Code) == "" {
			problems = append(problems, errs.NewValueIsRequiredError(fmt.Sprintf("packages[%d].code", i)))
		}
		if strings.TrimSpace(p.Destination) == "" {
			problems = append(problems, errs.NewValueIsRequiredError(fmt.Sprintf("packages[%d].destination", i)))
		}
		if strings.TrimSpace(p.Agent) == "" {
			problems = append(problems, errs.NewValueIsRequiredError(fmt.Sprintf("packages[%d].agent", i)))
		}
		if _, err := p.status(); err != nil {
			problems = append(problems, fmt.Errorf("packages[%d]: %w", i, err))
		}
	}

	return errors.Join(problems...)
}

func (p SeedPackage) status() (parcel.Status, error) {
	if p.State == "" {
		return parcel.Assigned, nil
	}
	return parcel.ParseStatus(strings.ToUpper(p.State))
}

// Seed inserts the agents with GORM and copies the packages with COPY FROM
// STDIN in the same transaction. db must use the lib/pq driver.
func Seed(ctx context.Context, db *sql.DB, hasher password.Hasher, seedFile SeedFile) (SeedResult, error) {
	gormDB, err := gorm.Open(
		gorm_postgres.New(gorm_postgres.Config{Conn: db}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		return SeedResult{}, fmt.Errorf("open gorm session: %w", err)
	}

	agents := make([]agentrepo.AgentDTO, len(seedFile.Agents))
	for i, a := range seedFile.Agents {
		hash, hashErr := hasher.Hash(a.Password)
		if hashErr != nil {
			return SeedResult{}, fmt.Errorf("hash password of %s: %w", a.Email, hashErr)
		}
		agents[i] = agentrepo.AgentDTO{
			Name:         strings.TrimSpace(a.Name),
			Email:        strings.TrimSpace(a.Email),
			PasswordHash: hash,
		}
	}

	err = gormDB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(agents) > 0 {
			if err := tx.Create(&agents).Error; err != nil {
				return fmt.Errorf("insert agents: %w", err)
			}
		}

		agentIDs, err := resolveAgents(tx, seedFile.Packages)
		if err != nil {
			return err
		}

		sqlTx, ok := tx.Statement.ConnPool.(*sql.Tx)
		if !ok {
			return errors.New("seed transaction is not a database/sql transaction")
		}
		return copyPackages(ctx, sqlTx, seedFile.Packages, agentIDs)
	})
	if err != nil {
		return SeedResult{}, err
	}

	return SeedResult{Agents: len(agents), Packages: len(seedFile.Packages)}, nil
}

func resolveAgents(tx *gorm.DB, packages []SeedPackage) (map[string]int64, error) {
	emails := make([]string, 0, len(packages))
	for _, p := range packages {
		emails = append(emails, strings.TrimSpace(p.Agent))
	}
	if len(emails) == 0 {
		return map[string]int64{}, nil
	}

	var found []agentrepo.AgentDTO
	if err := tx.Where("email IN ?", emails).Find(&found).Error; err != nil {
		return nil, fmt.Errorf("look up package agents: %w", err)
	}

	ids := make(map[string]int64, len(found))
	for _, a := range found {
		ids[a.Email] = a.ID
	}
	for _, email := range emails {
		if _, ok := ids[email]; !ok {
			return nil, errs.NewObjectNotFoundError("agent email", email)
		}
	}
	return ids, nil
}

func copyPackages(ctx context.Context, tx *sql.Tx, packages []SeedPackage, agentIDs map[string]int64) error {
	if len(packages) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(
		"packages", "unique_code", "destination_address", "delivery_state", "assigned_agent_id",
	))
	if err != nil {
		return fmt.Errorf("prepare package copy: %w", err)
	}

	for _, p := range packages {
		status, _ := p.status()
		if _, err = stmt.ExecContext(ctx,
			strings.TrimSpace(p.Code),
			strings.TrimSpace(p.Destination),
			status.String(),
			agentIDs[strings.TrimSpace(p.Agent)],
		); err != nil {
			_ = stmt.Close()
			return fmt.Errorf("copy package %s: %w", p.Code, err)
		}
	}

	if _, err = stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		return fmt.Errorf("flush package copy: %w", err)
	}
	return stmt.Close()
}
