package entity

import "time"

// ChangeKind names the mutation that produced a ChangeEvent.
type ChangeKind string

const (
	ChangeAdded    ChangeKind = "added"
	ChangeUpdated  ChangeKind = "updated"
	ChangeDeleted  ChangeKind = "deleted"
	ChangeReplaced ChangeKind = "replaced"
	// ChangeReloaded is emitted when the collection was re-read from storage
	// after an external change.
	ChangeReloaded ChangeKind = "reloaded"
)

// ChangeEvent is pushed to store subscribers after every applied mutation.
// AgentID is zero for bulk changes; Agents is the collection after the
// change, in store order.
type ChangeEvent struct {
	Kind    ChangeKind `json:"kind"`
	AgentID int64      `json:"agent_id,omitempty"`
	Agents  []*Agent   `json:"agents"`
	At      time.Time  `json:"at"`
}
