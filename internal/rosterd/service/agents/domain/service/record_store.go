package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kiosk404/roster/internal/rosterd/service/agents/domain/entity"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/domain/repo"
	"github.com/kiosk404/roster/internal/rosterd/service/agents/pkg/errno"
	"github.com/kiosk404/roster/pkg/logger"
)

// DefaultStorageKey is the storage key the collection is persisted under.
const DefaultStorageKey = "agents"

// Outcome reports whether a keyed mutation found its target.
type Outcome int

const (
	// Applied means a record with the id existed and the mutation ran.
	Applied Outcome = iota
	// NotFound means no record had the id; nothing changed.
	NotFound
)

// Found reports whether the mutation found its target.
func (o Outcome) Found() bool { return o == Applied }

func (o Outcome) String() string {
	if o == Applied {
		return "applied"
	}
	return "not-found"
}

// RecordStore is the ordered, persisted collection of agents.
//
// Every applied mutation runs to completion before the next one starts:
// the in-memory change, a best-effort write of the whole collection to the
// key-value storage, then subscriber notification. Storage failures never
// surface to callers; memory stays authoritative for the process lifetime.
//
// The store does not validate records; callers go through AgentService.
type RecordStore struct {
	mu     sync.RWMutex
	agents []*entity.Agent
	lastID int64

	kv             repo.KeyValueStorage
	key            string
	clock          func() time.Time
	onPersistError func(error)

	// issued numbers events under mu; events are delivered strictly in
	// that order, one at a time.
	issued    uint64
	notifyMu  sync.Mutex
	turn      *sync.Cond
	delivered uint64

	subMu   sync.Mutex
	subs    []subscriber
	nextSub uint64
}

type subscriber struct {
	id uint64
	fn func(entity.ChangeEvent)
}

// StoreOption configures a RecordStore.
type StoreOption func(*RecordStore)

// WithStorageKey overrides DefaultStorageKey.
func WithStorageKey(key string) StoreOption {
	return func(s *RecordStore) {
		if key != "" {
			s.key = key
		}
	}
}

// WithStoreClock sets the clock used for id assignment and event stamps.
func WithStoreClock(clock func() time.Time) StoreOption {
	return func(s *RecordStore) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithPersistErrorHandler registers a callback for swallowed storage errors.
func WithPersistErrorHandler(fn func(error)) StoreOption {
	return func(s *RecordStore) {
		s.onPersistError = fn
	}
}

// NewRecordStore creates a store and hydrates it from kv. A missing or
// unreadable snapshot yields an empty collection.
func NewRecordStore(ctx context.Context, kv repo.KeyValueStorage, opts ...StoreOption) *RecordStore {
	s := &RecordStore{
		kv:    kv,
		key:   DefaultStorageKey,
		clock: time.Now,
	}
	s.turn = sync.NewCond(&s.notifyMu)
	for _, opt := range opts {
		opt(s)
	}

	s.agents = s.load(ctx)
	s.lastID = maxID(s.agents)
	logger.Info("[Store] hydrated %d agents from key %q", len(s.agents), s.key)
	return s
}

// List returns a copy of the collection in insertion order.
func (s *RecordStore) List() []*entity.Agent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return entity.CloneAgents(s.agents)
}

// Len returns the number of records.
func (s *RecordStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.agents)
}

// Get returns a copy of the first record with id.
func (s *RecordStore) Get(id int64) (*entity.Agent, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.agents[i].Clone(), true
	}
	return nil, false
}

// Add appends agent under a freshly assigned id and returns the stored copy.
// Any id already set on agent is ignored.
func (s *RecordStore) Add(agent *entity.Agent) *entity.Agent {
	s.mu.Lock()
	rec := agent.Clone()
	rec.ID = s.nextIDLocked()
	s.agents = append(s.agents, rec)
	ev := s.eventLocked(entity.ChangeAdded, rec.ID)
	s.persistLocked()
	s.unlockAndNotify(ev)
	return rec.Clone()
}

// Update replaces the first record whose id matches agent.ID, keeping its
// position. An unknown id is a no-op.
func (s *RecordStore) Update(agent *entity.Agent) Outcome {
	s.mu.Lock()
	i := s.indexOf(agent.ID)
	if i < 0 {
		s.mu.Unlock()
		return NotFound
	}
	s.agents[i] = agent.Clone()
	ev := s.eventLocked(entity.ChangeUpdated, agent.ID)
	s.persistLocked()
	s.unlockAndNotify(ev)
	return Applied
}

// Delete removes every record with id. An unknown id is a no-op.
func (s *RecordStore) Delete(id int64) Outcome {
	s.mu.Lock()
	kept := make([]*entity.Agent, 0, len(s.agents))
	for _, a := range s.agents {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	if len(kept) == len(s.agents) {
		s.mu.Unlock()
		return NotFound
	}
	s.agents = kept
	ev := s.eventLocked(entity.ChangeDeleted, id)
	s.persistLocked()
	s.unlockAndNotify(ev)
	return Applied
}

// ReplaceAll swaps the whole collection. Records with a zero id get a fresh
// one; duplicate non-zero ids are rejected and leave the store unchanged.
func (s *RecordStore) ReplaceAll(agents []*entity.Agent) error {
	next := entity.CloneAgents(agents)
	seen := make(map[int64]bool, len(next))
	for _, a := range next {
		if a.ID == 0 {
			continue
		}
		if seen[a.ID] {
			return fmt.Errorf("agent id %d: %w", a.ID, errno.ErrDuplicateID)
		}
		seen[a.ID] = true
	}

	s.mu.Lock()
	if m := maxID(next); m > s.lastID {
		s.lastID = m
	}
	for _, a := range next {
		if a.ID == 0 {
			a.ID = s.nextIDLocked()
		}
	}
	s.agents = next
	ev := s.eventLocked(entity.ChangeReplaced, 0)
	s.persistLocked()
	s.unlockAndNotify(ev)
	return nil
}

// Reload re-reads the collection from storage without writing it back, for
// when the storage was changed from outside the process.
func (s *RecordStore) Reload(ctx context.Context) {
	agents := s.load(ctx)

	s.mu.Lock()
	s.agents = agents
	if m := maxID(agents); m > s.lastID {
		s.lastID = m
	}
	ev := s.eventLocked(entity.ChangeReloaded, 0)
	logger.Info("[Store] reloaded %d agents from key %q", len(agents), s.key)
	s.unlockAndNotify(ev)
}

// Subscribe registers fn to be called after every applied mutation, in
// subscription order, on the mutating goroutine. Events arrive in the order
// the mutations were applied. fn may read the store but must not mutate it.
// The returned func cancels the subscription.
func (s *RecordStore) Subscribe(fn func(entity.ChangeEvent)) (cancel func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscriber{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// unlockAndNotify releases mu and delivers ev once every earlier event has
// been delivered. Later mutations and reads proceed while subscribers run.
func (s *RecordStore) unlockAndNotify(ev entity.ChangeEvent) {
	s.issued++
	ticket := s.issued
	s.mu.Unlock()

	s.notifyMu.Lock()
	for s.delivered+1 != ticket {
		s.turn.Wait()
	}
	s.notifyMu.Unlock()

	defer func() {
		s.notifyMu.Lock()
		s.delivered = ticket
		s.turn.Broadcast()
		s.notifyMu.Unlock()
	}()
	s.notify(ev)
}

func (s *RecordStore) notify(ev entity.ChangeEvent) {
	s.subMu.Lock()
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	s.subMu.Unlock()

	for _, sub := range subs {
		sub.fn(ev)
	}
}

// nextIDLocked issues max(last+1, now in ms): unique, increasing, and not
// reused after a delete.
func (s *RecordStore) nextIDLocked() int64 {
	id := s.clock().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *RecordStore) indexOf(id int64) int {
	for i, a := range s.agents {
		if a.ID == id {
			return i
		}
	}
	return -1
}

func (s *RecordStore) eventLocked(kind entity.ChangeKind, id int64) entity.ChangeEvent {
	return entity.ChangeEvent{
		Kind:    kind,
		AgentID: id,
		Agents:  entity.CloneAgents(s.agents),
		At:      s.clock(),
	}
}

func (s *RecordStore) persistLocked() {
	data, err := entity.EncodeSnapshot(s.agents)
	if err == nil {
		err = s.kv.Set(context.Background(), s.key, data)
	}
	if err != nil {
		logger.Warn("[Store] failed to persist %d agents to key %q: %v", len(s.agents), s.key, err)
		if s.onPersistError != nil {
			s.onPersistError(err)
		}
	}
}

func (s *RecordStore) load(ctx context.Context) []*entity.Agent {
	data, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, repo.ErrKeyNotFound) {
		return []*entity.Agent{}
	}
	if err != nil {
		logger.Warn("[Store] failed to read key %q, starting empty: %v", s.key, err)
		return []*entity.Agent{}
	}
	agents, err := entity.DecodeSnapshot(data)
	if err != nil {
		logger.Warn("[Store] corrupt snapshot under key %q, starting empty: %v", s.key, err)
		return []*entity.Agent{}
	}
	return agents
}

func maxID(agents []*entity.Agent) int64 {
	var m int64
	for _, a := range agents {
		if a.ID > m {
			m = a.ID
		}
	}
	return m
}
