package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"svw.info/pairing/internal/assets"
	"svw.info/pairing/internal/domain"
	"svw.info/pairing/internal/phase"
	"svw.info/pairing/internal/ports"
)

// Service keeps the live participant sessions and drives them on behalf of a
// presentation adapter. Sessions are independent; calls on one session are
// serialised.
type Service struct {
	Storage ports.Storage
	Sets    [domain.PhaseCount]assets.PhaseSet
	Logger  *slog.Logger
	// Seed is the base seed when non-zero: the n-th session started is seeded
	// with Seed+n, so runs are reproducible while participants still see
	// different orders. Zero seeds each session from the clock.
	Seed  int64
	Now   func() time.Time
	NewID func() string

	started  atomic.Int64
	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	mu    sync.Mutex
	id    string
	ctrl  *phase.Controller
	saved *domain.ReportMeta
}

func NewService(st ports.Storage, sets [domain.PhaseCount]assets.PhaseSet, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		Storage:  st,
		Sets:     sets,
		Logger:   logger,
		Now:      time.Now,
		NewID:    uuid.NewString,
		sessions: make(map[string]*session),
	}
}

var errNotConfigured = errors.New("usecase dependency not configured")

// Start opens a session for the participant code. An empty code opens nothing.
func (u *Service) Start(ctx context.Context, code string) (domain.SessionView, error) {
	seed := u.Now().UnixNano()
	if u.Seed != 0 {
		seed = u.Seed + u.started.Add(1) - 1
	}
	ctrl := phase.New(u.Sets, rand.New(rand.NewSource(seed)))
	if err := ctrl.Start(code); err != nil {
		return domain.SessionView{}, err
	}
	s := &session{id: u.NewID(), ctrl: ctrl}

	u.mu.Lock()
	if u.sessions == nil {
		u.sessions = make(map[string]*session)
	}
	u.sessions[s.id] = s
	u.mu.Unlock()

	u.Logger.Info("session started", "session", s.id, "code", ctrl.Code(), "order", ctrl.Order(), "seed", seed)
	return view(s), nil
}

// with runs fn with the session locked.
func (u *Service) with(id string, fn func(s *session) error) error {
	u.mu.Lock()
	s, ok := u.sessions[id]
	u.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s)
}

func (u *Service) View(ctx context.Context, id string) (domain.SessionView, error) {
	var v domain.SessionView
	err := u.with(id, func(s *session) error {
		v = view(s)
		return nil
	})
	return v, err
}

// Place drops item onto slot of the session's active board.
func (u *Service) Place(ctx context.Context, id string, item domain.Item, slot int) (domain.PlacementOutcome, domain.SessionView, error) {
	var (
		out domain.PlacementOutcome
		v   domain.SessionView
	)
	err := u.with(id, func(s *session) error {
		var err error
		out, err = s.ctrl.Place(item, slot)
		v = view(s)
		if err == nil {
			u.Logger.Debug("place", "session", id, "item", item, "slot", slot, "status", out.Status, "freed", out.Freed)
		}
		return err
	})
	return out, v, err
}

// Confirm completes a pending replacement.
func (u *Service) Confirm(ctx context.Context, id string) (domain.PlacementOutcome, domain.SessionView, error) {
	var (
		out domain.PlacementOutcome
		v   domain.SessionView
	)
	err := u.with(id, func(s *session) error {
		var err error
		out, err = s.ctrl.Confirm()
		v = view(s)
		return err
	})
	return out, v, err
}

// Cancel declines a pending replacement.
func (u *Service) Cancel(ctx context.Context, id string) (domain.SessionView, error) {
	var v domain.SessionView
	err := u.with(id, func(s *session) error {
		_, err := s.ctrl.Cancel()
		v = view(s)
		return err
	})
	return v, err
}

// Remove clears slot and returns the item that became available.
func (u *Service) Remove(ctx context.Context, id string, slot int) (domain.Item, domain.SessionView, error) {
	var (
		freed domain.Item
		v     domain.SessionView
	)
	err := u.with(id, func(s *session) error {
		var err error
		freed, err = s.ctrl.Remove(slot)
		v = view(s)
		return err
	})
	return freed, v, err
}

// Advance commits the current phase.
func (u *Service) Advance(ctx context.Context, id string) (domain.Transition, domain.SessionView, error) {
	var (
		tr domain.Transition
		v  domain.SessionView
	)
	err := u.with(id, func(s *session) error {
		var err error
		tr, err = s.ctrl.Advance()
		v = view(s)
		if err == nil {
			u.Logger.Info("phase committed", "session", id, "transition", tr, "state", s.ctrl.State())
		}
		return err
	})
	return tr, v, err
}

// Save writes the finalized session to storage. A failed write keeps the
// session so the participant can retry; a repeated save returns the file
// already written.
func (u *Service) Save(ctx context.Context, id string) (domain.ReportMeta, error) {
	if u.Storage == nil {
		return domain.ReportMeta{}, errNotConfigured
	}
	var meta domain.ReportMeta
	err := u.with(id, func(s *session) error {
		if s.saved != nil {
			meta = *s.saved
			return nil
		}
		rep, err := s.ctrl.Report(u.Now())
		if err != nil {
			return err
		}
		m, err := u.Storage.Save(ctx, &rep)
		if err != nil {
			u.Logger.Error("save failed", "session", id, "code", rep.SessionCode, "err", err)
			return fmt.Errorf("%w: %w", domain.ErrIOFailure, err)
		}
		s.saved = &m
		meta = m
		u.Logger.Info("results saved", "session", id, "file", m.Name)
		return nil
	})
	return meta, err
}

// End drops the session.
func (u *Service) End(ctx context.Context, id string) error {
	u.mu.Lock()
	s, ok := u.sessions[id]
	delete(u.sessions, id)
	u.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	u.Logger.Info("session ended", "session", id, "saved", s.saved != nil)
	return nil
}

// Reports lists the saved result files.
func (u *Service) Reports(ctx context.Context) ([]domain.ReportMeta, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.List(ctx)
}

// Report returns the text of one saved result file.
func (u *Service) Report(ctx context.Context, name string) ([]byte, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.Load(ctx, name)
}

func view(s *session) domain.SessionView {
	c := s.ctrl
	b := c.Board()
	v := domain.SessionView{
		ID:       s.id,
		Code:     c.Code(),
		State:    c.State().String(),
		Step:     c.Step() + 1,
		Phase:    b.Phase(),
		Complete: c.OnBoardComplete(),
		Action:   "Next",
	}
	if c.Step() == domain.PhaseCount-1 {
		v.Action = "Save Answers"
	}
	if c.State() == domain.Finalized {
		// Save stays available until it succeeds.
		v.Complete = s.saved == nil
	}
	for i, sl := range b.Slots() {
		v.Slots = append(v.Slots, domain.SlotView{Index: i, Target: sl.Target, Occupant: sl.Occupant})
	}
	for _, it := range b.Pool() {
		v.Pool = append(v.Pool, domain.PoolView{Item: it, Placed: b.Placed(it)})
	}
	if item, slot, ok := b.Pending(); ok {
		v.Pending = &domain.PendingView{Item: item, Slot: slot}
	}
	return v
}
