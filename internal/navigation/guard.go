// Package navigation keeps a correction draft from being lost to an
// accidental back-navigation. The host application's history facility and
// its confirmation UI are abstract collaborators.
package navigation

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"shipmart-be/internal/draft"
	"shipmart-be/internal/logger"
)

// History is the host navigation facility.
type History interface {
	// PushCheckpoint pushes a synthetic history entry so a single back
	// gesture can be intercepted instead of leaving the page.
	PushCheckpoint()
	// Back propagates one real back-navigation.
	Back()
}

// Prompter asks the user whether the draft may be discarded.
type Prompter interface {
	ConfirmDiscard(ctx context.Context, orderID int64) (bool, error)
}

// PrompterFunc adapts a function to the Prompter interface.
type PrompterFunc func(ctx context.Context, orderID int64) (bool, error)

func (f PrompterFunc) ConfirmDiscard(ctx context.Context, orderID int64) (bool, error) {
	return f(ctx, orderID)
}

// Guard intercepts back-navigation away from one order's correction screen.
type Guard interface {
	// Arm ensures the synthetic checkpoint exists. Idempotent.
	Arm()
	Armed() bool
	// HandleBackAttempt runs after the browser consumed the checkpoint. The
	// returned bool reports whether navigation went through.
	HandleBackAttempt(ctx context.Context, p Prompter) (bool, error)
	// RequestLeave is the explicit "back to list" affordance. Same decision
	// path as HandleBackAttempt.
	RequestLeave(ctx context.Context, p Prompter) (bool, error)
}

type guard struct {
	mu      sync.Mutex
	orderID int64
	history History
	drafts  draft.Store
	armed   bool
}

func NewGuard(orderID int64, history History, drafts draft.Store) Guard {
	return &guard{orderID: orderID, history: history, drafts: drafts}
}

func (g *guard) Arm() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.armed {
		return
	}
	g.history.PushCheckpoint()
	g.armed = true
}

func (g *guard) Armed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.armed
}

func (g *guard) HandleBackAttempt(ctx context.Context, p Prompter) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	left, err := g.decide(ctx, p)
	if err != nil {
		return false, err
	}
	if !left {
		// The attempt consumed the checkpoint; put it back so the next
		// gesture is interceptable too.
		g.history.PushCheckpoint()
		g.armed = true
		return false, nil
	}

	g.leave(ctx)
	return true, nil
}

func (g *guard) RequestLeave(ctx context.Context, p Prompter) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	left, err := g.decide(ctx, p)
	if err != nil || !left {
		return false, err
	}

	g.leave(ctx)
	return true, nil
}

// decide reports whether navigation may proceed, prompting only when the
// order has unconfirmed changes.
func (g *guard) decide(ctx context.Context, p Prompter) (bool, error) {
	pending, err := g.drafts.HasPending(g.orderID)
	if err != nil {
		return false, fmt.Errorf("check pending draft: %w", err)
	}
	if !pending {
		return true, nil
	}

	ok, err := p.ConfirmDiscard(ctx, g.orderID)
	if err != nil {
		return false, fmt.Errorf("confirm discard: %w", err)
	}
	if !ok {
		logger.FromCtx(ctx).Debug("discard declined, staying on page",
			zap.Int64("order_id", g.orderID),
		)
		return false, nil
	}

	if err := g.drafts.Clear(g.orderID); err != nil {
		return false, fmt.Errorf("discard draft: %w", err)
	}
	return true, nil
}

func (g *guard) leave(ctx context.Context) {
	g.history.Back()
	g.armed = false
	logger.FromCtx(ctx).Info("left correction screen",
		zap.Int64("order_id", g.orderID),
	)
}
