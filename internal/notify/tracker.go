// Package notify turns successive notification polls into an unread signal.
//
// The tracker has two states. A poll that returns more notifications than
// the previous one moves it from Quiescent to Unread; only an explicit
// acknowledgment (the user opening the panel) moves it back. Polling cadence
// and transport belong to the caller.
package notify

import (
	"context"
	"slices"
	"sync"

	"github.com/gauthierbraillon/bragboard/internal/apperr"
	"github.com/gauthierbraillon/bragboard/internal/model"
)

// State is the tracker's unread state.
type State int

const (
	Quiescent State = iota
	Unread
)

func (s State) String() string {
	if s == Unread {
		return "unread"
	}
	return "quiescent"
}

// Next is the pure transition applied on every poll.
func Next(state State, previousCount int, collection []model.Notification) State {
	if len(collection) > previousCount {
		return Unread
	}
	return state
}

// Snapshot is the persisted part of a tracker.
type Snapshot struct {
	Count  int        `json:"count"`
	Unread bool       `json:"unread"`
	Hidden []model.ID `json:"hidden,omitempty"`
}

// Tracker holds the last observed collection and the unread state. It is safe
// for concurrent use.
type Tracker struct {
	mu     sync.Mutex
	state  State
	count  int
	items  []model.Notification
	hidden map[model.ID]bool
}

// NewTracker returns a quiescent tracker that has seen nothing.
func NewTracker() *Tracker {
	return &Tracker{hidden: make(map[model.ID]bool)}
}

// Observe feeds one poll result and returns the new state.
func (t *Tracker) Observe(collection []model.Notification) State {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = Next(t.state, t.count, collection)
	t.count = len(collection)
	t.items = append([]model.Notification(nil), collection...)

	present := make(map[model.ID]bool, len(collection))
	for _, n := range collection {
		present[n.ID] = true
	}
	for id := range t.hidden {
		if !present[id] {
			delete(t.hidden, id)
		}
	}
	return t.state
}

// Acknowledge clears the unread state.
func (t *Tracker) Acknowledge() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = Quiescent
}

// Dismiss hides one notification from the displayed list. Nothing is deleted
// on the server and the observed count is unchanged.
func (t *Tracker) Dismiss(id model.ID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hidden[id] = true
}

// Deleter removes a notification on the server.
type Deleter interface {
	DeleteNotification(ctx context.Context, id model.ID) error
}

// DismissRemote hides a notification and deletes it on the server. The local
// hide stands even when the delete fails.
func (t *Tracker) DismissRemote(ctx context.Context, id model.ID, deleter Deleter) error {
	t.Dismiss(id)
	if err := deleter.DeleteNotification(ctx, id); err != nil {
		return apperr.Wrap("dismiss notification", err)
	}
	return nil
}

// Visible returns the last observed notifications minus dismissed ones.
func (t *Tracker) Visible() []model.Notification {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]model.Notification, 0, len(t.items))
	for _, n := range t.items {
		if !t.hidden[n.ID] {
			out = append(out, n)
		}
	}
	return out
}

// State returns the current state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// BadgeCount is the number shown on the bell: visible notifications while
// unread, zero otherwise.
func (t *Tracker) BadgeCount() int {
	if t.State() != Unread {
		return 0
	}
	return len(t.Visible())
}

// Snapshot captures what must survive a restart.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	snap := Snapshot{Count: t.count, Unread: t.state == Unread}
	for id := range t.hidden {
		snap.Hidden = append(snap.Hidden, id)
	}
	slices.Sort(snap.Hidden)
	return snap
}

// Restore replaces the tracker's state with snap. The displayed list stays
// empty until the next Observe.
func (t *Tracker) Restore(snap Snapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.count = max(snap.Count, 0)
	t.state = Quiescent
	if snap.Unread {
		t.state = Unread
	}
	t.items = nil
	t.hidden = make(map[model.ID]bool, len(snap.Hidden))
	for _, id := range snap.Hidden {
		t.hidden[id] = true
	}
}
