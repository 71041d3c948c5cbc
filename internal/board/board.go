// Package board holds the occupancy of the target slots of one phase and
// reconciles every drop so that an item sits in at most one slot.
package board

import (
	"fmt"

	"svw.info/pairing/internal/domain"
)

type pending struct {
	item domain.Item
	slot int
}

// Board is the slot occupancy of the active phase. It is not safe for
// concurrent use; callers serialise access.
type Board struct {
	phase   int
	slots   []domain.Slot
	pool    []domain.Item
	known   map[domain.Item]struct{}
	pending *pending
}

// New creates an empty board for the given targets, in display order, and
// draggable pool, in the order it is shown to the participant.
func New(phase int, targets, pool []domain.Item) *Board {
	b := &Board{
		phase: phase,
		slots: make([]domain.Slot, len(targets)),
		pool:  append([]domain.Item(nil), pool...),
		known: make(map[domain.Item]struct{}, len(pool)),
	}
	for i, t := range targets {
		b.slots[i] = domain.Slot{Target: t}
	}
	for _, it := range pool {
		b.known[it] = struct{}{}
	}
	return b
}

// Phase returns the logical phase index the board was loaded for.
func (b *Board) Phase() int { return b.phase }

// Len returns the number of slots.
func (b *Board) Len() int { return len(b.slots) }

func (b *Board) checkSlot(slot int) error {
	if slot < 0 || slot >= len(b.slots) {
		return fmt.Errorf("%w: %d (board has %d slots)", domain.ErrInvalidSlotIndex, slot, len(b.slots))
	}
	return nil
}

func (b *Board) checkItem(item domain.Item) error {
	if _, ok := b.known[item]; !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownItem, item)
	}
	return nil
}

// SlotOf returns the index of the slot holding item, or -1.
func (b *Board) SlotOf(item domain.Item) int {
	if item == domain.None {
		return -1
	}
	for i := range b.slots {
		if b.slots[i].Occupant == item {
			return i
		}
	}
	return -1
}

// Place drops item onto slot.
//
// Dropping an item onto the slot it already occupies is a no-op. Dropping an
// item that is placed elsewhere onto an occupied slot is a conflict: nothing
// changes, the placement is parked and NeedsConfirmation is returned until the
// caller answers with Confirm or Cancel. Every other case applies at once.
func (b *Board) Place(item domain.Item, slot int) (domain.PlacementOutcome, error) {
	if err := b.checkSlot(slot); err != nil {
		return domain.PlacementOutcome{Vacated: -1}, err
	}
	if err := b.checkItem(item); err != nil {
		return domain.PlacementOutcome{Vacated: -1}, err
	}
	b.pending = nil

	target := b.slots[slot]
	if target.Occupant == item {
		return domain.PlacementOutcome{Status: domain.NoOp, Vacated: -1}, nil
	}
	src := b.SlotOf(item)
	if src >= 0 && !target.Empty() {
		b.pending = &pending{item: item, slot: slot}
		return domain.PlacementOutcome{Status: domain.NeedsConfirmation, Vacated: -1}, nil
	}
	return b.apply(item, slot, src), nil
}

// Confirm completes the parked conflicting placement: the target's occupant is
// freed, the item leaves its previous slot and takes the target.
func (b *Board) Confirm() (domain.PlacementOutcome, error) {
	p := b.pending
	if p == nil {
		return domain.PlacementOutcome{Vacated: -1}, domain.ErrNoPendingPlacement
	}
	b.pending = nil
	if b.slots[p.slot].Occupant == p.item {
		return domain.PlacementOutcome{Status: domain.NoOp, Vacated: -1}, nil
	}
	return b.apply(p.item, p.slot, b.SlotOf(p.item)), nil
}

// Cancel declines the parked placement. It reports whether one was pending.
func (b *Board) Cancel() bool {
	ok := b.pending != nil
	b.pending = nil
	return ok
}

// Pending returns the parked conflicting placement, if any.
func (b *Board) Pending() (domain.Item, int, bool) {
	if b.pending == nil {
		return domain.None, -1, false
	}
	return b.pending.item, b.pending.slot, true
}

func (b *Board) apply(item domain.Item, slot, src int) domain.PlacementOutcome {
	out := domain.PlacementOutcome{
		Status:  domain.Applied,
		Placed:  item,
		Freed:   b.slots[slot].Occupant,
		Vacated: -1,
	}
	if src >= 0 {
		b.slots[src].Occupant = domain.None
		out.Vacated = src
	}
	b.slots[slot].Occupant = item
	return out
}

// Remove clears slot and returns the item that became available, if any.
func (b *Board) Remove(slot int) (domain.Item, error) {
	if err := b.checkSlot(slot); err != nil {
		return domain.None, err
	}
	b.pending = nil
	freed := b.slots[slot].Occupant
	b.slots[slot].Occupant = domain.None
	return freed, nil
}

// IsComplete reports whether every slot is occupied.
func (b *Board) IsComplete() bool {
	for _, s := range b.slots {
		if s.Empty() {
			return false
		}
	}
	return true
}

// Snapshot returns the current target -> item mapping in display order.
func (b *Board) Snapshot() domain.PhaseResult {
	res := domain.PhaseResult{Phase: b.phase, Entries: make([]domain.Pairing, len(b.slots))}
	for i, s := range b.slots {
		res.Entries[i] = domain.Pairing{Target: s.Target, Item: s.Occupant}
	}
	return res
}

// Slots returns a copy of the slots in display order.
func (b *Board) Slots() []domain.Slot {
	return append([]domain.Slot(nil), b.slots...)
}

// Pool returns the draggable items in display order.
func (b *Board) Pool() []domain.Item {
	return append([]domain.Item(nil), b.pool...)
}

// Placed reports whether item currently occupies a slot.
func (b *Board) Placed(item domain.Item) bool { return b.SlotOf(item) >= 0 }
