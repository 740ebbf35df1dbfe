package agentrepo

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"paquexpress/internal/core/domain/model/agent"
	"paquexpress/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAgentRepository implements ports.AgentRepository using GORM.
type GormAgentRepository struct {
	db *gorm.DB
}

func NewGormAgentRepository(db *gorm.DB) *GormAgentRepository {
	return &GormAgentRepository{db: db}
}

// GetByEmail matches the email exactly, after trimming surrounding spaces.
func (r *GormAgentRepository) GetByEmail(ctx context.Context, email string) (*agent.Agent, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, errs.NewValueIsRequiredError("email")
	}

	var dto AgentDTO
	if err := r.db.WithContext(ctx).Where("email = ?", email).Take(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("agent", email)
		}
		return nil, err
	}

	return toDomain(dto)
}

// Get retrieves an agent by id.
func (r *GormAgentRepository) Get(ctx context.Context, id int64) (*agent.Agent, error) {
	var dto AgentDTO
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("agent", strconv.FormatInt(id, 10))
		}
		return nil, err
	}

	return toDomain(dto)
}
