package service

import (
	"context"

	"github.com/kiosk404/roster/internal/rosterd/service/agents/domain/entity"
)

// AgentService is the application-level service interface for agent records.
//
// Implementations validate input before it reaches the record store. Field
// problems come back as validation.Errors wrapped in errno.ErrInvalidAgent;
// unknown ids as errno.ErrAgentNotFound.
type AgentService interface {
	ListAgents(ctx context.Context) ([]*entity.Agent, error)
	GetAgent(ctx context.Context, id int64) (*entity.Agent, error)
	CreateAgent(ctx context.Context, in *entity.AgentInput) (*entity.Agent, error)
	UpdateAgent(ctx context.Context, id int64, in *entity.AgentInput) (*entity.Agent, error)
	DeleteAgent(ctx context.Context, id int64) error

	// ReplaceAgents swaps the whole collection, e.g. when restoring a backup.
	ReplaceAgents(ctx context.Context, agents []*entity.Agent) error

	// Subscribe calls fn after every applied change until cancel is called.
	Subscribe(fn func(entity.ChangeEvent)) (cancel func())
}
