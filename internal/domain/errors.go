package domain

import "errors"

var (
	ErrInvalidSlotIndex   = errors.New("invalid slot index")
	ErrUnknownItem        = errors.New("item is not part of this phase")
	ErrNotComplete        = errors.New("not every slot is filled")
	ErrIOFailure          = errors.New("results could not be written")
	ErrEmptySessionCode   = errors.New("session code is empty")
	ErrNoPendingPlacement = errors.New("no placement awaiting confirmation")
	ErrNotStarted         = errors.New("session not started")
	ErrAlreadyStarted     = errors.New("session already started")
	ErrFinalized          = errors.New("session already finalized")
	ErrSessionNotFound    = errors.New("session not found")
)
