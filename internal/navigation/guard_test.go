package navigation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shipmart-be/internal/draft"
	"shipmart-be/internal/kv"
)

type fakeHistory struct {
	checkpoints int
	backs       int
}

func (h *fakeHistory) PushCheckpoint() { h.checkpoints++ }
func (h *fakeHistory) Back()           { h.backs++ }

func accept(ctx context.Context, orderID int64) (bool, error)  { return true, nil }
func decline(ctx context.Context, orderID int64) (bool, error) { return false, nil }

func panicPrompter(t *testing.T) PrompterFunc {
	return func(ctx context.Context, orderID int64) (bool, error) {
		t.Fatal("prompter must not be consulted without pending changes")
		return false, nil
	}
}

func TestGuard_ArmIsIdempotent(t *testing.T) {
	h := &fakeHistory{}
	g := NewGuard(7, h, draft.NewStore(kv.NewMemoryStore()))

	g.Arm()
	g.Arm()
	g.Arm()

	assert.True(t, g.Armed())
	assert.Equal(t, 1, h.checkpoints)
}

func TestGuard_BackWithNoDraftPassesThrough(t *testing.T) {
	h := &fakeHistory{}
	g := NewGuard(7, h, draft.NewStore(kv.NewMemoryStore()))

	left, err := g.HandleBackAttempt(context.Background(), panicPrompter(t))
	require.NoError(t, err)
	assert.True(t, left)
	assert.Equal(t, 1, h.backs)
}

func TestGuard_BackWithEmptyStoredDraftPassesThrough(t *testing.T) {
	drafts := draft.NewStore(kv.NewMemoryStore())
	require.NoError(t, drafts.Write(7, draft.New()))

	h := &fakeHistory{}
	g := NewGuard(7, h, drafts)

	left, err := g.HandleBackAttempt(context.Background(), panicPrompter(t))
	require.NoError(t, err)
	assert.True(t, left)
}

func TestGuard_DeclinedDiscardStaysAndKeepsDraft(t *testing.T) {
	drafts := draft.NewStore(kv.NewMemoryStore())
	qty := 3
	_, err := drafts.UpsertEdit(7, 2, draft.ItemPatch{Quantity: &qty})
	require.NoError(t, err)

	h := &fakeHistory{}
	g := NewGuard(7, h, drafts)
	g.Arm()

	left, err := g.HandleBackAttempt(context.Background(), PrompterFunc(decline))
	require.NoError(t, err)
	assert.False(t, left)
	assert.Equal(t, 0, h.backs)
	// Checkpoint re-established after the consumed one.
	assert.Equal(t, 2, h.checkpoints)
	assert.True(t, g.Armed())

	d, err := drafts.Read(7)
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Contains(t, d.Edits, int64(2))
}

func TestGuard_AcceptedDiscardClearsDraftAndLeaves(t *testing.T) {
	drafts := draft.NewStore(kv.NewMemoryStore())
	_, err := drafts.MarkDeleted(7, 2)
	require.NoError(t, err)

	h := &fakeHistory{}
	g := NewGuard(7, h, drafts)
	g.Arm()

	left, err := g.HandleBackAttempt(context.Background(), PrompterFunc(accept))
	require.NoError(t, err)
	assert.True(t, left)
	assert.Equal(t, 1, h.backs)
	assert.False(t, g.Armed())

	pending, err := drafts.HasPending(7)
	require.NoError(t, err)
	assert.False(t, pending)
}

func TestGuard_RequestLeaveBehavesLikeBackAttempt(t *testing.T) {
	drafts := draft.NewStore(kv.NewMemoryStore())
	qty := 2
	_, err := drafts.UpsertEdit(7, 2, draft.ItemPatch{Quantity: &qty})
	require.NoError(t, err)

	h := &fakeHistory{}
	g := NewGuard(7, h, drafts)
	g.Arm()

	left, err := g.RequestLeave(context.Background(), PrompterFunc(decline))
	require.NoError(t, err)
	assert.False(t, left)

	pending, err := drafts.HasPending(7)
	require.NoError(t, err)
	assert.True(t, pending)

	left, err = g.RequestLeave(context.Background(), PrompterFunc(accept))
	require.NoError(t, err)
	assert.True(t, left)
	assert.Equal(t, 1, h.backs)

	pending, err = drafts.HasPending(7)
	require.NoError(t, err)
	assert.False(t, pending)
}

func TestGuard_ScopedToItsOwnOrder(t *testing.T) {
	drafts := draft.NewStore(kv.NewMemoryStore())
	qty := 2
	_, err := drafts.UpsertEdit(8, 2, draft.ItemPatch{Quantity: &qty})
	require.NoError(t, err)

	h := &fakeHistory{}
	g := NewGuard(7, h, drafts)

	left, err := g.HandleBackAttempt(context.Background(), panicPrompter(t))
	require.NoError(t, err)
	assert.True(t, left, "another order's draft must not block navigation")
}
