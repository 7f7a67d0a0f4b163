package ledger

import (
	"sync"

	"github.com/zohuyhieuzo03/ExpenseTracker/internal/model"
)

// PendingTracker holds at most one uncommitted draft per user. Staging a
// new draft replaces any previous one without warning; taking the draft
// returns the user to idle.
type PendingTracker struct {
	mu     sync.Mutex
	drafts map[int64]model.Draft
}

func NewPendingTracker() *PendingTracker {
	return &PendingTracker{drafts: make(map[int64]model.Draft)}
}

// Stage opens a draft for the user, discarding any draft already open.
func (t *PendingTracker) Stage(userID int64, d model.Draft) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.drafts[userID] = d
}

// Take removes and returns the user's draft, if one is open.
func (t *PendingTracker) Take(userID int64) (model.Draft, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	d, ok := t.drafts[userID]
	if ok {
		delete(t.drafts, userID)
	}
	return d, ok
}
