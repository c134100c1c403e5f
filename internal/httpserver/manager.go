package httpserver

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"shipmart-be/internal/correction"
	"shipmart-be/internal/draft"
	"shipmart-be/internal/metrics"
	"shipmart-be/internal/navigation"
	"shipmart-be/internal/order"
	"shipmart-be/internal/payment"
)

// Deps are the collaborators the correction API wires into each session.
type Deps struct {
	Orders          order.Client
	Drafts          draft.Store
	Handoff         payment.Handoff
	Metrics         *metrics.Registry
	PlatformFeeRate decimal.Decimal
}

// Manager keeps at most one live correction session per order. Opening an
// order again (a page reload) builds a fresh session; the draft store is
// what carries the unconfirmed work across.
type Manager struct {
	mu       sync.Mutex
	deps     Deps
	sessions map[int64]*sessionEntry
}

type sessionEntry struct {
	session *correction.Session
	history *historyLog
}

// historyLog is the server-side stand-in for the client's history facility:
// the client owns real navigation and this records what the guard decided.
type historyLog struct {
	mu          sync.Mutex
	checkpoints int
	backs       int
}

func (h *historyLog) PushCheckpoint() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checkpoints++
}

func (h *historyLog) Back() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.backs++
}

func NewManager(deps Deps) *Manager {
	return &Manager{deps: deps, sessions: make(map[int64]*sessionEntry)}
}

// Open loads a new correction session for the order, replacing any session
// that was already live for it.
func (m *Manager) Open(ctx context.Context, orderID int64) (*correction.Session, error) {
	history := &historyLog{}
	guard := navigation.NewGuard(orderID, history, m.deps.Drafts)

	session := correction.NewSession(orderID, correction.Deps{
		Orders:          m.deps.Orders,
		Drafts:          m.deps.Drafts,
		Handoff:         m.deps.Handoff,
		Guard:           guard,
		Metrics:         m.deps.Metrics,
		PlatformFeeRate: m.deps.PlatformFeeRate,
	})

	if err := session.Load(ctx); err != nil {
		// A failed load is terminal; nothing worth retaining.
		return nil, err
	}

	m.mu.Lock()
	m.sessions[orderID] = &sessionEntry{session: session, history: history}
	m.mu.Unlock()

	return session, nil
}

func (m *Manager) Get(orderID int64) (*correction.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.sessions[orderID]
	if !ok {
		return nil, false
	}
	return entry.session, true
}

// Leave runs the navigation-guard decision for the order. viaBack selects
// the intercepted back-gesture path; otherwise it is the explicit "back to
// list" affordance. Both behave identically. The confirmed flag is the
// user's answer to the discard prompt; false with pending changes means the
// prompt was declined (or not yet shown) and the user stays.
func (m *Manager) Leave(ctx context.Context, orderID int64, viaBack, confirmed bool) (bool, error) {
	m.mu.Lock()
	entry, ok := m.sessions[orderID]
	m.mu.Unlock()
	if !ok {
		// No live session; nothing guards the navigation.
		return true, nil
	}

	hadPending, err := m.deps.Drafts.HasPending(orderID)
	if err != nil {
		return false, err
	}

	prompter := navigation.PrompterFunc(func(context.Context, int64) (bool, error) {
		return confirmed, nil
	})

	var left bool
	if viaBack {
		left, err = entry.session.Guard().HandleBackAttempt(ctx, prompter)
	} else {
		left, err = entry.session.Guard().RequestLeave(ctx, prompter)
	}
	if err != nil {
		return false, err
	}

	if left {
		if hadPending {
			m.deps.Metrics.DraftDiscards.Inc()
		}
		m.mu.Lock()
		delete(m.sessions, orderID)
		m.mu.Unlock()
	}

	return left, nil
}

// Drop forgets a finished session without touching the draft store.
func (m *Manager) Drop(orderID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, orderID)
}
