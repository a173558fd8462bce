package editing

import (
	"context"
	"errors"
	"time"

	"expressia/internal/core/domain/model/kernel"
	"expressia/internal/core/domain/model/order"
	"expressia/internal/core/domain/model/tracking"
	"expressia/internal/core/domain/services"
	"expressia/internal/core/ports"
	"expressia/internal/pkg/errs"
)

// State is the lifecycle state of an edit session.
type State int

const (
	// StateClosed means no draft is open. Open transitions to StateEditing.
	StateClosed State = iota

	// StateEditing means a draft is open and accepting mutations.
	StateEditing

	// StateCommitting is the transient state while a commit is in flight.
	// A failed commit returns to StateEditing with the draft intact.
	StateCommitting
)

var (
	// ErrSessionIsNotOpen is returned by mutations and commits when no draft
	// is open.
	ErrSessionIsNotOpen = errors.New("no edit session is open")

	// ErrSessionAlreadyOpen is returned by Open when a draft is already open.
	ErrSessionAlreadyOpen = errors.New("an edit session is already open")
)

// ChronologyViolationError reports a commit rejected by the chronology gate.
// Index is the 1-based position of the first offending milestone; Message is
// the user-facing reason. The draft survives the rejection so the violation
// can be corrected and the commit retried.
type ChronologyViolationError struct {
	Index   int
	Message string
}

func (e *ChronologyViolationError) Error() string {
	return e.Message
}

// Session is the order lifecycle controller for timeline edits. It walks the
// state machine Closed -> Editing -> Committing -> Closed, with failed
// commits falling back to Editing.
//
// Mutations apply to a draft copy only; the order and the store are untouched
// until Commit, which validates chronology, derives the coarse status,
// replaces the timeline, appends the audit event, persists the collection,
// and broadcasts the change as one atomic step. A rejected or failed commit
// leaves the persisted order completely unchanged.
//
// A Session serves one editor at a time and is not safe for concurrent use.
type Session struct {
	uowFactory OrderUoWFactory
	bus        ports.ChangeBus
	builder    services.TimelineBuilder
	validator  services.ChronologyValidator
	deriver    services.StatusDeriver

	state   State
	orderID kernel.UUID
	draft   *tracking.Draft
}

// NewSession creates a closed edit session.
func NewSession(uowFactory OrderUoWFactory, bus ports.ChangeBus) *Session {
	return &Session{
		uowFactory: uowFactory,
		bus:        bus,
		builder:    services.NewTimelineBuilder(),
		validator:  services.NewChronologyValidator(),
		deriver:    services.NewStatusDeriver(),
	}
}

// State returns the session's current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Open starts editing the given order's timeline.
//
// Returns order.ErrOrderDelivered for delivered orders: their tracking is
// immutable. When the order has no timeline yet, the default milestone
// sequence is materialized and persisted before the draft opens; lazy
// materialization is not an edit and records no history event.
func (s *Session) Open(ctx context.Context, orderID kernel.UUID) error {
	if s.state != StateClosed {
		return ErrSessionAlreadyOpen
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	orders, err := orderRepo.GetAll(ctx)
	if err != nil {
		return err
	}

	o := findOrder(orders, orderID)
	if o == nil {
		return errs.NewObjectNotFoundError("order", orderID.String())
	}
	if o.Status() == order.StatusDelivered {
		return order.ErrOrderDelivered
	}

	if !o.HasTimeline() {
		timeline, buildErr := s.builder.Build(o)
		if buildErr != nil {
			return buildErr
		}
		if err = o.AttachTimeline(timeline); err != nil {
			return err
		}
		if err = orderRepo.SaveAll(ctx, orders); err != nil {
			return err
		}
		if err = uow.Commit(ctx); err != nil {
			return err
		}
		if err = s.bus.Broadcast(ctx); err != nil {
			return err
		}
	}

	s.draft = tracking.NewDraft(o.Timeline())
	s.orderID = orderID
	s.state = StateEditing
	return nil
}

// UpdateField mutates one draft milestone's location, date, or time.
// Chronology is not checked here; validation is deferred to Commit.
func (s *Session) UpdateField(index int, field tracking.Field, value string) error {
	if s.state != StateEditing {
		return ErrSessionIsNotOpen
	}
	return s.draft.UpdateField(index, field, value)
}

// ToggleCompleted sets one draft milestone's completion flag. Clearing a flag
// cascades forward so completions stay a prefix of the canonical flow.
func (s *Session) ToggleCompleted(index int, completed bool) error {
	if s.state != StateEditing {
		return ErrSessionIsNotOpen
	}
	return s.draft.ToggleCompleted(index, completed)
}

// Timeline returns a snapshot of the open draft, or nil when no draft is open.
func (s *Session) Timeline() tracking.Timeline {
	if s.draft == nil {
		return nil
	}
	return s.draft.Timeline()
}

// Commit validates the draft and applies it to the order.
//
// A chronology violation returns a ChronologyViolationError and leaves the
// session in StateEditing with the draft intact; the persisted order is
// untouched. On success the order's timeline is replaced, the derived status
// set, a tracking history event appended, the collection persisted, the
// change broadcast, and the session closed.
func (s *Session) Commit(ctx context.Context) error {
	if s.state != StateEditing {
		return ErrSessionIsNotOpen
	}
	s.state = StateCommitting

	if err := s.commit(ctx); err != nil {
		s.state = StateEditing
		return err
	}

	s.draft = nil
	s.state = StateClosed
	return nil
}

// Cancel discards the draft. The order and persisted state are untouched.
func (s *Session) Cancel() {
	s.draft = nil
	s.state = StateClosed
}

func (s *Session) commit(ctx context.Context) error {
	timeline := s.draft.Timeline()
	if result := s.validator.Validate(timeline); !result.OK {
		return &ChronologyViolationError{Index: result.Index, Message: result.Message}
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	orders, err := orderRepo.GetAll(ctx)
	if err != nil {
		return err
	}

	o := findOrder(orders, s.orderID)
	if o == nil {
		return errs.NewObjectNotFoundError("order", s.orderID.String())
	}

	derived := s.deriver.Derive(timeline, o.Status())
	if err = o.ApplyTimeline(timeline, derived, time.Now()); err != nil {
		return err
	}

	if err = orderRepo.SaveAll(ctx, orders); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return s.bus.Broadcast(ctx)
}

func findOrder(orders []*order.Order, id kernel.UUID) *order.Order {
	for _, o := range orders {
		if o.ID().IsEqual(id) {
			return o
		}
	}
	return nil
}
