package service

import (
	"context"
	"fmt"

	"github.com/kiosk404/roster/internal/rosterd/service/agents/domain/entity"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/domain/validation"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/pkg/errno"
	"github.com/kiosk404/roster/pkg/logger"
)

type agentServiceImpl struct {
	store     *RecordStore
	validator *validation.Validator
}

// NewAgentService creates the local AgentService over store.
func NewAgentService(store *RecordStore, validator *validation.Validator) AgentService {
	return &agentServiceImpl{
		store:     store,
		validator: validator,
	}
}

func (a *agentServiceImpl) ListAgents(_ context.Context) ([]*entity.Agent, error) {
	return a.store.List(), nil
}

func (a *agentServiceImpl) GetAgent(_ context.Context, id int64) (*entity.Agent, error) {
	agent, ok := a.store.Get(id)
	if !ok {
		return nil, notFound(id)
	}
	return agent, nil
}

func (a *agentServiceImpl) CreateAgent(_ context.Context, in *entity.AgentInput) (*entity.Agent, error) {
	if err := a.validator.Validate(in); err != nil {
		return nil, invalid(err)
	}
	agent := a.store.Add(in.ToAgent(0))
	logger.Info("[AgentService] created agent %d (%s)", agent.ID, agent.Name)
	return agent, nil
}

func (a *agentServiceImpl) UpdateAgent(_ context.Context, id int64, in *entity.AgentInput) (*entity.Agent, error) {
	if err := a.validator.Validate(in); err != nil {
		return nil, invalid(err)
	}
	agent := in.ToAgent(id)
	if !a.store.Update(agent).Found() {
		return nil, notFound(id)
	}
	logger.Info("[AgentService] updated agent %d", id)
	return agent, nil
}

func (a *agentServiceImpl) DeleteAgent(_ context.Context, id int64) error {
	if !a.store.Delete(id).Found() {
		return notFound(id)
	}
	logger.Info("[AgentService] deleted agent %d", id)
	return nil
}

func (a *agentServiceImpl) ReplaceAgents(_ context.Context, agents []*entity.Agent) error {
	for i, agent := range agents {
		if agent == nil {
			continue
		}
		// A backup's age was right on the day it was entered.
		if err := a.validator.ValidateRecord(agent, validation.SkipAgeCrossCheck()); err != nil {
			return fmt.Errorf("record %d: %w", i, invalid(err))
		}
	}
	if err := a.store.ReplaceAll(agents); err != nil {
		return err
	}
	logger.Info("[AgentService] replaced collection with %d agents", a.store.Len())
	return nil
}

func (a *agentServiceImpl) Subscribe(fn func(entity.ChangeEvent)) (cancel func()) {
	return a.store.Subscribe(fn)
}

func notFound(id int64) error {
	return fmt.Errorf("agent %d: %w", id, errno.ErrAgentNotFound)
}

func invalid(err error) error {
	return fmt.Errorf("%w: %w", errno.ErrInvalidAgent, err)
}
