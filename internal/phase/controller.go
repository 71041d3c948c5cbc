// Package phase sequences the two phases of a session: it picks their order,
// shuffles each draggable pool, gates advancing on a complete board and keeps
// the committed results.
package phase

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"svw.info/pairing/internal/assets"
	"svw.info/pairing/internal/board"
	"svw.info/pairing/internal/domain"
	"svw.info/pairing/internal/report"
)

// Controller owns one participant session. It is not safe for concurrent use.
type Controller struct {
	sets    [domain.PhaseCount]assets.PhaseSet
	rng     *rand.Rand
	code    string
	state   domain.State
	order   [domain.PhaseCount]int
	step    int
	board   *board.Board
	results [domain.PhaseCount]*domain.PhaseResult
}

// New returns an uninitialized controller drawing order and shuffles from rng.
func New(sets [domain.PhaseCount]assets.PhaseSet, rng *rand.Rand) *Controller {
	return &Controller{sets: sets, rng: rng}
}

// Start records the session code, picks the phase order uniformly at random
// and loads the first phase. An empty code leaves the controller untouched.
func (c *Controller) Start(code string) error {
	if c.state != domain.Uninitialized {
		return domain.ErrAlreadyStarted
	}
	if strings.TrimSpace(code) == "" {
		return domain.ErrEmptySessionCode
	}
	order := [domain.PhaseCount]int{0, 1}
	if c.rng.Intn(2) == 1 {
		order = [domain.PhaseCount]int{1, 0}
	}
	return c.StartWithOrder(code, order)
}

// StartWithOrder is Start with a fixed phase order.
func (c *Controller) StartWithOrder(code string, order [domain.PhaseCount]int) error {
	if c.state != domain.Uninitialized {
		return domain.ErrAlreadyStarted
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return domain.ErrEmptySessionCode
	}
	if order[0] == order[1] || order[0] < 0 || order[0] >= domain.PhaseCount || order[1] < 0 || order[1] >= domain.PhaseCount {
		return fmt.Errorf("phase order %v is not a permutation", order)
	}
	c.code = code
	c.order = order
	c.step = 0
	c.state = domain.PhaseOneActive
	c.load()
	return nil
}

func (c *Controller) load() {
	set := c.sets[c.order[c.step]]
	pool := append([]domain.Item(nil), set.Draggables...)
	c.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	c.board = board.New(c.order[c.step], set.Targets, pool)
}

// OnBoardComplete reports whether the advance/save action should be enabled.
func (c *Controller) OnBoardComplete() bool {
	if c.state != domain.PhaseOneActive && c.state != domain.PhaseTwoActive {
		return false
	}
	return c.board.IsComplete()
}

// Advance commits the active board under its logical phase index and either
// loads the second phase or finalizes the session. An incomplete board is
// rejected with ErrNotComplete and nothing is committed.
func (c *Controller) Advance() (domain.Transition, error) {
	switch c.state {
	case domain.Uninitialized:
		return 0, domain.ErrNotStarted
	case domain.Finalized:
		return 0, domain.ErrFinalized
	}
	if !c.board.IsComplete() {
		return 0, domain.ErrNotComplete
	}
	snap := c.board.Snapshot()
	c.results[snap.Phase] = &snap

	if c.step == 0 {
		c.step = 1
		c.state = domain.PhaseTwoActive
		c.load()
		return domain.TransitionNextPhase, nil
	}
	c.state = domain.Finalized
	return domain.TransitionSave, nil
}

func (c *Controller) committed() ([domain.PhaseCount]domain.PhaseResult, error) {
	var out [domain.PhaseCount]domain.PhaseResult
	if c.state != domain.Finalized {
		return out, domain.ErrNotComplete
	}
	for i, r := range c.results {
		out[i] = *r
	}
	return out, nil
}

// ExportResults renders the report of a finalized session, phase 0 first.
func (c *Controller) ExportResults() (string, error) {
	res, err := c.committed()
	if err != nil {
		return "", err
	}
	return report.String(res), nil
}

// Report returns the finalized session stamped with now.
func (c *Controller) Report(now time.Time) (domain.Report, error) {
	res, err := c.committed()
	if err != nil {
		return domain.Report{}, err
	}
	return domain.Report{SessionCode: c.code, CreatedAt: now, Results: res}, nil
}

// Board returns the active board; nil before Start. After finalization it is
// the last board shown.
func (c *Controller) Board() *board.Board { return c.board }

// State returns where the session is in its lifecycle.
func (c *Controller) State() domain.State { return c.state }

// Code returns the trimmed session code given to Start.
func (c *Controller) Code() string { return c.code }

// Order returns the logical phase indices in presentation order.
func (c *Controller) Order() [domain.PhaseCount]int { return c.order }

// Step returns 0 while the first presented phase is active, 1 afterwards.
func (c *Controller) Step() int { return c.step }

// Result returns the committed result of a logical phase.
func (c *Controller) Result(phase int) (domain.PhaseResult, bool) {
	if phase < 0 || phase >= domain.PhaseCount || c.results[phase] == nil {
		return domain.PhaseResult{}, false
	}
	return *c.results[phase], true
}

func (c *Controller) active() (*board.Board, error) {
	switch c.state {
	case domain.Uninitialized:
		return nil, domain.ErrNotStarted
	case domain.Finalized:
		return nil, domain.ErrFinalized
	}
	return c.board, nil
}

// Place forwards a drop to the active board.
func (c *Controller) Place(item domain.Item, slot int) (domain.PlacementOutcome, error) {
	b, err := c.active()
	if err != nil {
		return domain.PlacementOutcome{Vacated: -1}, err
	}
	return b.Place(item, slot)
}

// Confirm answers a pending conflicting placement with yes.
func (c *Controller) Confirm() (domain.PlacementOutcome, error) {
	b, err := c.active()
	if err != nil {
		return domain.PlacementOutcome{Vacated: -1}, err
	}
	return b.Confirm()
}

// Cancel answers a pending conflicting placement with no.
func (c *Controller) Cancel() (bool, error) {
	b, err := c.active()
	if err != nil {
		return false, err
	}
	return b.Cancel(), nil
}

// Remove clears a slot of the active board.
func (c *Controller) Remove(slot int) (domain.Item, error) {
	b, err := c.active()
	if err != nil {
		return domain.None, err
	}
	return b.Remove(slot)
}
