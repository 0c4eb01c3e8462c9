package service

import (
	"encoding/json"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Queued action types.
const (
	ActionLog            = "LOG"
	ActionCPReport       = "CP_REPORT"
	ActionCRReport       = "CR_REPORT"
	ActionPersonalReport = "PERSONAL_REPORT"
)

// ErrSyncInFlight is returned when Sync is called while a previous pass is
// still running. The caller simply tries again later.
var ErrSyncInFlight = errors.New("a sync pass is already running")

// QueuedAction is one pending write waiting for connectivity.
type QueuedAction struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Payload    json.RawMessage `json:"payload"`
	Timestamp  time.Time       `json:"timestamp"`
	RetryCount int             `json:"retry_count"`
}

// QueueStorage persists the pending-action list as a single serialized
// array. Implementations must survive process restarts (except MemoryStorage,
// which exists for tests).
type QueueStorage interface {
	Load() ([]QueuedAction, error)
	Save(actions []QueuedAction) error
}

// FileStorage keeps the queue in one JSON file.
type FileStorage struct {
	Path string
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{Path: path}
}

func (s *FileStorage) Load() ([]QueuedAction, error) {
	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return []QueuedAction{}, nil
	}
	if err != nil {
		return nil, err
	}
	var actions []QueuedAction
	if err := json.Unmarshal(data, &actions); err != nil {
		return nil, err
	}
	return actions, nil
}

func (s *FileStorage) Save(actions []QueuedAction) error {
	data, err := json.Marshal(actions)
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path, data, 0o644)
}

// MemoryStorage is the in-memory fake used in tests.
type MemoryStorage struct {
	mu      sync.Mutex
	actions []QueuedAction
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (s *MemoryStorage) Load() ([]QueuedAction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]QueuedAction, len(s.actions))
	copy(out, s.actions)
	return out, nil
}

func (s *MemoryStorage) Save(actions []QueuedAction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions = make([]QueuedAction, len(actions))
	copy(s.actions, actions)
	return nil
}

// Replayer applies one queued action against the remote store, using the
// same write path as the online case.
type Replayer interface {
	Replay(action QueuedAction) error
}

// ReplayerFunc adapts a function to the Replayer interface.
type ReplayerFunc func(action QueuedAction) error

func (f ReplayerFunc) Replay(action QueuedAction) error { return f(action) }

// Queue is the offline write queue. Enqueue is always local and never fails
// due to network state; Sync replays pending actions in insertion order once
// the caller has detected connectivity.
type Queue struct {
	storage QueueStorage

	mu      sync.Mutex // guards storage mutation
	syncing sync.Mutex // single-flight guard for Sync
	now     func() time.Time
}

func NewQueue(storage QueueStorage) *Queue {
	return &Queue{storage: storage, now: time.Now}
}

// Enqueue appends a durable record for later replay. The ID is generated
// locally; no server round-trip happens here.
func (q *Queue) Enqueue(actionType string, payload json.RawMessage) (QueuedAction, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	actions, err := q.storage.Load()
	if err != nil {
		return QueuedAction{}, err
	}

	action := QueuedAction{
		ID:        uuid.NewString(),
		Type:      actionType,
		Payload:   payload,
		Timestamp: q.now(),
	}
	actions = append(actions, action)
	if err := q.storage.Save(actions); err != nil {
		return QueuedAction{}, err
	}
	return action, nil
}

// Pending returns a snapshot of the queue in insertion order.
func (q *Queue) Pending() ([]QueuedAction, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.storage.Load()
}

// SyncResult summarizes one sync pass.
type SyncResult struct {
	Synced    int      `json:"synced"`
	Failed    int      `json:"failed"`
	FailedIDs []string `json:"failed_ids,omitempty"`
}

// Sync replays the queue FIFO against the replayer. An entry is removed only
// on confirmed success; a failing entry keeps its position (and bumps its
// retry count) without blocking the entries behind it. Only one sync pass
// runs at a time.
//
// Known gap: there is no idempotency key. A crash between a successful
// remote write and the local dequeue replays that entry on the next pass and
// double-inserts it.
func (q *Queue) Sync(replayer Replayer) (SyncResult, error) {
	if !q.syncing.TryLock() {
		return SyncResult{}, ErrSyncInFlight
	}
	defer q.syncing.Unlock()

	q.mu.Lock()
	actions, err := q.storage.Load()
	q.mu.Unlock()
	if err != nil {
		return SyncResult{}, err
	}

	var result SyncResult
	remaining := make([]QueuedAction, 0, len(actions))

	for _, action := range actions {
		if err := replayer.Replay(action); err != nil {
			action.RetryCount++
			remaining = append(remaining, action)
			result.Failed++
			result.FailedIDs = append(result.FailedIDs, action.ID)
			continue
		}
		result.Synced++
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	// Entries enqueued while the pass ran are appended behind the survivors.
	current, err := q.storage.Load()
	if err != nil {
		return result, err
	}
	if len(current) > len(actions) {
		remaining = append(remaining, current[len(actions):]...)
	}
	if err := q.storage.Save(remaining); err != nil {
		return result, err
	}
	return result, nil
}
