package domain

import "time"

// Item identifies a target or draggable image by its filename stem (e.g. "pair3").
type Item string

// None is the item rendered for an empty slot.
const None Item = ""

// PhaseCount is the number of phases in a session.
const PhaseCount = 2

// Slot is a target position and its current occupant.
type Slot struct {
	Target   Item `json:"target"`
	Occupant Item `json:"occupant,omitempty"`
}

// Empty reports whether nothing has been dropped into the slot.
func (s Slot) Empty() bool { return s.Occupant == None }

// PlacementOutcome describes the side effects of a placement for the presentation layer.
type PlacementOutcome struct {
	Status PlacementStatus `json:"status"`
	Placed Item            `json:"placed,omitempty"` // newly marked placed
	Freed  Item            `json:"freed,omitempty"`  // displaced occupant, now available
	// Vacated is the index of the slot the item moved out of, or -1.
	Vacated int `json:"vacated"`
}

// Pairing is one target and what was placed on it.
type Pairing struct {
	Target Item `json:"target"`
	Item   Item `json:"item,omitempty"`
}

// PhaseResult is the committed target -> item mapping of one logical phase.
type PhaseResult struct {
	Phase   int       `json:"phase"`
	Entries []Pairing `json:"entries"`
}

// Report is a finished session as persisted to the results directory.
type Report struct {
	SessionCode string
	CreatedAt   time.Time
	Results     [PhaseCount]PhaseResult
}

// ReportMeta is a lightweight listing entry for a saved report.
type ReportMeta struct {
	Name        string    `json:"name"`
	SessionCode string    `json:"sessionCode"`
	CreatedAt   time.Time `json:"createdAt"`
	Size        int64     `json:"size"`
}

// SlotView is a slot as rendered by a presentation adapter.
type SlotView struct {
	Index    int  `json:"index"`
	Target   Item `json:"target"`
	Occupant Item `json:"occupant,omitempty"`
}

// PoolView is a draggable as rendered by a presentation adapter.
type PoolView struct {
	Item   Item `json:"item"`
	Placed bool `json:"placed"`
}

// PendingView is a conflicting placement awaiting a yes/no answer.
type PendingView struct {
	Item Item `json:"item"`
	Slot int  `json:"slot"`
}

// SessionView is everything a presentation adapter needs to draw one session.
type SessionView struct {
	ID       string       `json:"id"`
	Code     string       `json:"code"`
	State    string       `json:"state"`
	Step     int          `json:"step"`  // 1 or 2, the order the participant sees
	Phase    int          `json:"phase"` // logical phase index
	Slots    []SlotView   `json:"slots"`
	Pool     []PoolView   `json:"pool"`
	Complete bool         `json:"complete"` // action button enabled
	Pending  *PendingView `json:"pending,omitempty"`
	Action   string       `json:"action"` // button label
}
