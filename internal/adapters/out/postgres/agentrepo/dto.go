// Package agentrepo maps agents between the domain model and the agents table.
package agentrepo

import (
	"paquexpress/internal/core/domain/model/agent"
)

// AgentDTO is a row of the agents table. The admin seed command inserts it
// directly, leaving ID zero so the sequence assigns it.
type AgentDTO struct {
	ID           int64  `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	Email        string `gorm:"not null;uniqueIndex"`
	PasswordHash string `gorm:"column:password_hash;not null"`
}

func (AgentDTO) TableName() string {
	return "agents"
}

func toDomain(dto AgentDTO) (*agent.Agent, error) {
	return agent.RestoreAgent(dto.ID, dto.Name, dto.Email, dto.PasswordHash)
}
