package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zohuyhieuzo03/ExpenseTracker/internal/model"
)

func TestPendingTrackerSingleSlot(t *testing.T) {
	tr := NewPendingTracker()

	tr.Stage(1, model.Draft{Kind: model.DraftNew, Amount: 100, Note: "first"})
	tr.Stage(1, model.Draft{Kind: model.DraftNew, Amount: 200, Note: "second"})

	d, ok := tr.Take(1)
	assert.True(t, ok)
	assert.Equal(t, "second", d.Note)

	_, ok = tr.Take(1)
	assert.False(t, ok, "draft must be consumed by Take")
}

func TestPendingTrackerPerUser(t *testing.T) {
	tr := NewPendingTracker()

	tr.Stage(1, model.Draft{Kind: model.DraftNew, Amount: 10, Note: "alice"})
	tr.Stage(2, model.Draft{Kind: model.DraftEdit, TargetID: 4, Amount: 20, Note: "bob"})

	d1, ok := tr.Take(1)
	assert.True(t, ok)
	assert.Equal(t, "alice", d1.Note)

	d2, ok := tr.Take(2)
	assert.True(t, ok)
	assert.Equal(t, model.DraftEdit, d2.Kind)
	assert.Equal(t, int64(4), d2.TargetID)
}

func TestPendingTrackerIdleTake(t *testing.T) {
	tr := NewPendingTracker()

	_, ok := tr.Take(9)
	assert.False(t, ok)
}
