package correction

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"shipmart-be/internal/draft"
	"shipmart-be/internal/logger"
	"shipmart-be/internal/metrics"
	"shipmart-be/internal/navigation"
	"shipmart-be/internal/order"
	"shipmart-be/internal/payment"
	"shipmart-be/internal/reconcile"
)

type State string

const (
	StateLoading         State = "LOADING"
	StateEditing         State = "EDITING"
	StateAwaitingPayment State = "AWAITING_PAYMENT"
	StateSubmitted       State = "SUBMITTED"
	StateLoadError       State = "LOAD_ERROR"
)

// Deps are the collaborators a session drives.
type Deps struct {
	Orders          order.Client
	Drafts          draft.Store
	Handoff         payment.Handoff
	Guard           navigation.Guard
	Metrics         *metrics.Registry
	PlatformFeeRate decimal.Decimal
}

// Outcome describes where Confirm routed the correction.
type Outcome struct {
	State   State
	Total   decimal.Decimal
	Delta   decimal.Decimal
	Payment *payment.PendingPayment // set on the payment-first path
}

// Session owns one order's correction flow: it loads the order, keeps the
// merged working copy, forwards every accepted mutation to the draft store
// and decides at confirm time whether the correction submits directly or
// goes through payment first.
type Session struct {
	mu      sync.Mutex
	orderID int64
	deps    Deps

	state      State
	original   *order.Order // server snapshot, delta baseline
	view       *order.Order // merged working copy the user edits
	confirming bool
}

func NewSession(orderID int64, deps Deps) *Session {
	return &Session{orderID: orderID, deps: deps, state: StateLoading}
}

func (s *Session) OrderID() int64 { return s.orderID }

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// View returns a copy of the merged view.
func (s *Session) View() *order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view.Clone()
}

// Guard exposes the navigation guard for the leave/back paths.
func (s *Session) Guard() navigation.Guard { return s.deps.Guard }

// Totals returns the view's current total and its delta against what the
// customer already paid.
func (s *Session) Totals() (total, delta decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total = reconcile.CurrentTotal(s.view)
	return total, total.Sub(s.original.TotalPrice)
}

// Load fetches the order and merges any draft that survived a reload. A
// fetch failure is terminal for this session instance.
func (s *Session) Load(ctx context.Context) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "session"),
		zap.String("method", "Load"),
		zap.Int64("order_id", s.orderID),
	)

	o, err := s.deps.Orders.GetOrderForCorrection(ctx, s.orderID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateLoading {
		// The user navigated away while the fetch was in flight; the result
		// is discarded without a state transition.
		return nil
	}

	if err != nil {
		s.state = StateLoadError
		s.deps.Metrics.LoadFailures.Inc()
		log.Error("order load failed", zap.Error(err))
		return fmt.Errorf("load order %d: %w", s.orderID, err)
	}

	d, err := s.deps.Drafts.Read(s.orderID)
	if err != nil {
		// Storage trouble must not block the session; start without a draft.
		log.Warn("draft read failed, starting clean", zap.Error(err))
		d = nil
	}

	s.original = o
	s.view = reconcile.Merge(o, d)
	s.state = StateEditing
	s.deps.Metrics.SessionsStarted.Inc()

	if !d.Empty() {
		// The draft survived a reload; back-navigation must stay guarded.
		s.deps.Guard.Arm()
	}

	log.Info("correction session ready",
		zap.Int("item_count", len(s.view.Items)),
		zap.Bool("draft_restored", !d.Empty()),
	)
	return nil
}

// EditField applies a partial patch to one item. Accepted items are
// immutable, and final_price is only editable when the item was denied over
// a price mismatch.
func (s *Session) EditField(ctx context.Context, itemID int64, patch draft.ItemPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateEditing {
		return ErrNotEditing
	}
	if patch.IsZero() {
		return ErrEmptyPatch
	}

	item, ok := s.view.Item(itemID)
	if !ok {
		return ErrItemNotFound
	}
	if item.Accepted() {
		s.deps.Metrics.RejectedMutations.Inc()
		return ErrItemAccepted
	}
	if patch.FinalPrice != nil && !item.HasDenyReason(order.DenyPriceMismatch) {
		s.deps.Metrics.RejectedMutations.Inc()
		return ErrPriceNotDisputed
	}
	if patch.Quantity != nil && *patch.Quantity <= 0 {
		return ErrInvalidQuantity
	}

	// Persist first: the draft store is the source of truth and the merged
	// view is recomputed from it.
	d, err := s.deps.Drafts.UpsertEdit(s.orderID, itemID, patch)
	if err != nil {
		return fmt.Errorf("persist edit: %w", err)
	}
	s.view = reconcile.Merge(s.original, d)

	s.deps.Guard.Arm()
	s.deps.Metrics.FieldEdits.Inc()

	logger.FromCtx(ctx).Debug("item field edited",
		zap.Int64("order_id", s.orderID),
		zap.Int64("item_id", itemID),
	)
	return nil
}

// RemoveItem drops an item from the correction. The caller must have taken
// an explicit confirmation from the user; removal is destructive.
func (s *Session) RemoveItem(ctx context.Context, itemID int64, confirmed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateEditing {
		return ErrNotEditing
	}

	item, ok := s.view.Item(itemID)
	if !ok {
		return ErrItemNotFound
	}
	if item.Accepted() {
		s.deps.Metrics.RejectedMutations.Inc()
		return ErrItemAccepted
	}
	if !confirmed {
		return ErrRemovalNotConfirmed
	}

	d, err := s.deps.Drafts.MarkDeleted(s.orderID, itemID)
	if err != nil {
		return fmt.Errorf("persist removal: %w", err)
	}
	s.view = reconcile.Merge(s.original, d)

	s.deps.Guard.Arm()
	s.deps.Metrics.ItemRemovals.Inc()

	logger.FromCtx(ctx).Info("item removed from correction",
		zap.Int64("order_id", s.orderID),
		zap.Int64("item_id", itemID),
	)
	return nil
}

// Confirm recomputes the price delta and routes the correction: a positive
// delta parks the submission behind a payment, anything else submits
// directly. Only one confirmation may be in flight; the draft survives a
// failed submission so retrying is safe.
func (s *Session) Confirm(ctx context.Context) (*Outcome, error) {
	s.mu.Lock()
	if s.state != StateEditing {
		s.mu.Unlock()
		return nil, ErrNotEditing
	}
	if s.confirming {
		s.mu.Unlock()
		return nil, ErrConfirmInFlight
	}
	if len(s.view.Items) == 0 {
		s.mu.Unlock()
		return nil, ErrNoItemsLeft
	}

	s.confirming = true
	view := s.view.Clone()
	original := s.original
	s.mu.Unlock()

	total := reconcile.CurrentTotal(view)
	delta := reconcile.PriceDelta(view, original)
	sub := buildSubmission(view, total, s.deps.PlatformFeeRate)

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "session"),
		zap.String("method", "Confirm"),
		zap.Int64("order_id", s.orderID),
		zap.String("total", total.String()),
		zap.String("delta", delta.String()),
	)

	if delta.IsPositive() {
		return s.finishPaymentFirst(ctx, log, total, delta, sub)
	}
	return s.finishDirect(ctx, log, total, delta, sub)
}

func (s *Session) finishPaymentFirst(ctx context.Context, log *zap.Logger, total, delta decimal.Decimal, sub *order.CorrectionSubmission) (*Outcome, error) {
	intent, err := s.deps.Handoff.Stash(ctx, s.original, delta, sub)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirming = false

	if err != nil {
		// Draft untouched; the user may retry.
		log.Error("payment handoff failed", zap.Error(err))
		return nil, fmt.Errorf("stash payment handoff: %w", err)
	}

	if err := s.deps.Drafts.Clear(s.orderID); err != nil {
		// The handoff owns the submission now; a stale draft is only noise.
		log.Warn("draft clear failed after handoff", zap.Error(err))
	}
	s.state = StateAwaitingPayment
	s.deps.Metrics.PaymentHandoffs.Inc()

	log.Info("correction routed to payment")
	return &Outcome{State: StateAwaitingPayment, Total: total, Delta: delta, Payment: intent}, nil
}

func (s *Session) finishDirect(ctx context.Context, log *zap.Logger, total, delta decimal.Decimal, sub *order.CorrectionSubmission) (*Outcome, error) {
	err := s.deps.Orders.SubmitCorrection(ctx, s.orderID, sub)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirming = false

	if err != nil {
		// Stay editable and keep the draft so nothing the user did is lost.
		s.deps.Metrics.SubmissionFailures.Inc()
		log.Error("direct submission failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
	}

	if err := s.deps.Drafts.Clear(s.orderID); err != nil {
		log.Warn("draft clear failed after submission", zap.Error(err))
	}
	s.state = StateSubmitted
	s.deps.Metrics.DirectSubmissions.Inc()

	log.Info("correction submitted directly")
	return &Outcome{State: StateSubmitted, Total: total, Delta: delta}, nil
}
