package entity

import (
	"fmt"

	"github.com/kiosk404/roster/pkg/utils/json"
)

// EncodeSnapshot serializes the collection as a JSON array. An empty
// collection encodes as [] rather than null.
func EncodeSnapshot(agents []*Agent) ([]byte, error) {
	if agents == nil {
		agents = []*Agent{}
	}
	data, err := json.Marshal(agents)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal agents: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a JSON array of agents. null entries are dropped.
func DecodeSnapshot(data []byte) ([]*Agent, error) {
	var agents []*Agent
	if err := json.Unmarshal(data, &agents); err != nil {
		return nil, fmt.Errorf("failed to unmarshal agents: %w", err)
	}
	out := make([]*Agent, 0, len(agents))
	for _, a := range agents {
		if a != nil {
			out = append(out, a)
		}
	}
	return out, nil
}
