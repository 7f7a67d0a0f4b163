package model

// DraftKind tags what a pending draft will become once a category is
// chosen.
type DraftKind int

const (
	// DraftNew is an expense not yet written to the ledger.
	DraftNew DraftKind = iota
	// DraftEdit is a change to an existing record.
	DraftEdit
)

// Draft is an uncommitted add or edit waiting for a category choice.
// A user has at most one draft at a time.
type Draft struct {
	Kind     DraftKind
	TargetID int64 // edit target, unset for DraftNew
	Amount   float64
	Note     string
}
