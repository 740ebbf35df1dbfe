package cmd

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	apihttp "paquexpress/internal/adapters/in/http"
	"paquexpress/internal/adapters/in/http/openapi"
	"paquexpress/internal/adapters/out/postgres"
	"paquexpress/internal/adapters/out/postgres/agentrepo"
	"paquexpress/internal/core/application/usecases/commands"
	"paquexpress/internal/core/application/usecases/queries"
	"paquexpress/internal/jobs"
	"paquexpress/internal/pkg/metrics"
	"paquexpress/internal/pkg/password"
	"paquexpress/internal/pkg/token"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	registry   *prometheus.Registry
	metrics    *metrics.Metrics
	hasher     *password.BcryptHasher
	issuer     *token.JWTIssuer
	logger     *slog.Logger
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	hasher, err := password.NewBcryptHasher(cfg.BcryptCost)
	if err != nil {
		return CompositionRoot{}, err
	}

	issuer, err := token.NewJWTIssuer(
		[]byte(cfg.JWTSecret),
		cfg.JWTAlgorithm,
		token.WithDefaultTTL(cfg.AccessTokenTTL),
	)
	if err != nil {
		return CompositionRoot{}, err
	}

	registry := metrics.NewRegistry()

	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		registry:   registry,
		metrics:    metrics.NewMetrics(registry),
		hasher:     hasher,
		issuer:     issuer,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) CreateLoginCommandHandler() (commands.LoginCommandHandler, error) {
	return commands.NewLoginCommandHandler(
		agentrepo.NewGormAgentRepository(c.gormDB),
		c.hasher,
		c.issuer,
		c.cfg.AccessTokenTTL,
		c.metrics,
	)
}

func (c *CompositionRoot) CreateRegisterDeliveryCommandHandler() commands.RegisterDeliveryCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRegisterDeliveryCommandHandler(f, time.Now, c.metrics)
}

func (c *CompositionRoot) CreateResolveSessionQueryHandler() queries.ResolveSessionQueryHandler {
	return queries.NewResolveSessionQueryHandler(c.issuer, agentrepo.NewGormAgentRepository(c.gormDB))
}

func (c *CompositionRoot) CreateGetAssignedPackagesQueryHandler() queries.GetAssignedPackagesQueryHandler {
	return queries.NewGetAssignedPackagesQueryHandler(c.gormDB)
}

// CreateRouter builds the echo instance serving the API, /metrics and the
// OpenAPI document.
func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	loginHandler, err := c.CreateLoginCommandHandler()
	if err != nil {
		return nil, err
	}

	validator, err := openapi.NewValidator()
	if err != nil {
		return nil, err
	}

	server := apihttp.NewServer(
		loginHandler,
		c.CreateRegisterDeliveryCommandHandler(),
		c.CreateGetAssignedPackagesQueryHandler(),
	)

	sessions := c.CreateResolveSessionQueryHandler()

	return apihttp.NewRouter(apihttp.RouterConfig{
		Server:    server,
		Sessions:  sessions,
		Validator: validator,
		Gatherer:  c.registry,
		Logger:    c.logger.With("component", "http"),
	}), nil
}

func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	sqlDB, err := c.sqlDB()
	if err != nil {
		return nil, err
	}
	return jobs.NewJobManager(sqlDB, c.metrics, c.cfg.PoolStatsSchedule, c.logger), nil
}

func (c *CompositionRoot) sqlDB() (*sql.DB, error) {
	sqlDB, err := c.gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB from gorm: %w", err)
	}
	return sqlDB, nil
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}
