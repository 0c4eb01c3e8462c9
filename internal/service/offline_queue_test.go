package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
)

type recordingReplayer struct {
	replayed []string // action IDs in call order
	failIDs  map[string]bool
}

func (r *recordingReplayer) Replay(action QueuedAction) error {
	r.replayed = append(r.replayed, action.ID)
	if r.failIDs[action.ID] {
		return errors.New("remote store unreachable")
	}
	return nil
}

func enqueueN(t *testing.T, q *Queue, n int) []QueuedAction {
	t.Helper()
	actions := make([]QueuedAction, 0, n)
	for i := 0; i < n; i++ {
		payload, _ := json.Marshal(map[string]int{"seq": i})
		a, err := q.Enqueue(ActionLog, payload)
		if err != nil {
			t.Fatalf("enqueue %d: %v", i, err)
		}
		actions = append(actions, a)
	}
	return actions
}

// TestSyncRoundTrip: three actions queued while disconnected are replayed in
// insertion order and the queue drains.
func TestSyncRoundTrip(t *testing.T) {
	q := NewQueue(NewMemoryStorage())
	actions := enqueueN(t, q, 3)

	replayer := &recordingReplayer{}
	result, err := q.Sync(replayer)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if result.Synced != 3 || result.Failed != 0 {
		t.Errorf("result = %+v, want 3 synced 0 failed", result)
	}

	for i, a := range actions {
		if replayer.replayed[i] != a.ID {
			t.Errorf("replay order[%d] = %s, want %s", i, replayer.replayed[i], a.ID)
		}
	}

	pending, _ := q.Pending()
	if len(pending) != 0 {
		t.Errorf("queue holds %d entries after full sync, want 0", len(pending))
	}
}

// TestSyncPartialFailure: the first entry fails, the second succeeds; only
// the failing entry survives, in its original position.
func TestSyncPartialFailure(t *testing.T) {
	q := NewQueue(NewMemoryStorage())
	actions := enqueueN(t, q, 2)

	replayer := &recordingReplayer{failIDs: map[string]bool{actions[0].ID: true}}
	result, err := q.Sync(replayer)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if result.Synced != 1 || result.Failed != 1 {
		t.Errorf("result = %+v, want 1 synced 1 failed", result)
	}
	if len(replayer.replayed) != 2 {
		t.Errorf("one failure blocked the rest: replayed %d, want 2", len(replayer.replayed))
	}

	pending, _ := q.Pending()
	if len(pending) != 1 || pending[0].ID != actions[0].ID {
		t.Fatalf("pending = %v, want exactly the failed first entry", pending)
	}
	if pending[0].RetryCount != 1 {
		t.Errorf("retryCount = %d, want 1", pending[0].RetryCount)
	}

	// Next pass with the remote recovered drains the survivor.
	replayer = &recordingReplayer{}
	if _, err := q.Sync(replayer); err != nil {
		t.Fatalf("second sync: %v", err)
	}
	pending, _ = q.Pending()
	if len(pending) != 0 {
		t.Errorf("queue holds %d entries after recovery, want 0", len(pending))
	}
}

// TestSyncSingleFlight: a second Sync during an in-flight pass is refused
// instead of double-submitting the snapshot.
func TestSyncSingleFlight(t *testing.T) {
	q := NewQueue(NewMemoryStorage())
	enqueueN(t, q, 1)

	blocked := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		_, err := q.Sync(ReplayerFunc(func(QueuedAction) error {
			close(blocked)
			<-release
			return nil
		}))
		done <- err
	}()

	<-blocked
	if _, err := q.Sync(ReplayerFunc(func(QueuedAction) error { return nil })); err != ErrSyncInFlight {
		t.Errorf("concurrent sync error = %v, want ErrSyncInFlight", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first sync: %v", err)
	}
}

// TestEnqueueDuringSyncIsKept: entries added while a pass runs survive it.
func TestEnqueueDuringSyncIsKept(t *testing.T) {
	q := NewQueue(NewMemoryStorage())
	enqueueN(t, q, 1)

	var late QueuedAction
	_, err := q.Sync(ReplayerFunc(func(QueuedAction) error {
		payload, _ := json.Marshal(map[string]string{"late": "yes"})
		late, _ = q.Enqueue(ActionCPReport, payload)
		return nil
	}))
	if err != nil {
		t.Fatalf("sync: %v", err)
	}

	pending, _ := q.Pending()
	if len(pending) != 1 || pending[0].ID != late.ID {
		t.Fatalf("pending = %v, want only the late entry", pending)
	}
}

// TestFileStorageSurvivesReopen: the durable queue outlives the process; a
// fresh Queue over the same file sees the pending entries.
func TestFileStorageSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "offline_queue.json")

	q1 := NewQueue(NewFileStorage(path))
	actions := enqueueN(t, q1, 2)

	q2 := NewQueue(NewFileStorage(path))
	pending, err := q2.Pending()
	if err != nil {
		t.Fatalf("load after reopen: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("pending after reopen = %d, want 2", len(pending))
	}
	for i := range actions {
		if pending[i].ID != actions[i].ID || pending[i].Type != actions[i].Type {
			t.Errorf("entry %d changed across reopen: %+v vs %+v", i, pending[i], actions[i])
		}
	}
}

func TestFileStorageEmptyFileMissing(t *testing.T) {
	s := NewFileStorage(filepath.Join(t.TempDir(), "does-not-exist.json"))
	actions, err := s.Load()
	if err != nil {
		t.Fatalf("load of missing file: %v", err)
	}
	if len(actions) != 0 {
		t.Errorf("missing file yielded %d actions", len(actions))
	}
}

func TestSyncDispatchUnknownType(t *testing.T) {
	svc := &SyncService{}
	err := svc.Replay(QueuedAction{ID: "x", Type: "BOGUS"})
	if err == nil {
		t.Fatal("unknown action type replayed without error")
	}
	if want := fmt.Sprintf("unknown queued action type %q", "BOGUS"); err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}
