package draft

import (
	"encoding/json"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"shipmart-be/internal/kv"
	"shipmart-be/internal/logger"
)

const keyPrefix = "orderCorrectionDraft:"

// Store persists one draft per order in the scoped key-value medium. It does
// no business validation; gating which edits are legal belongs to the
// correction session.
type Store interface {
	// Read returns the stored draft, or nil when none exists. Malformed
	// stored data is treated identically to "no draft".
	Read(orderID int64) (*Draft, error)
	Write(orderID int64, d *Draft) error
	Clear(orderID int64) error

	// UpsertEdit merges a patch into the item's pending edit and un-deletes
	// the item if it was marked deleted. Returns the stored result.
	UpsertEdit(orderID, itemID int64, patch ItemPatch) (*Draft, error)
	// MarkDeleted records the item as removed and drops any pending edit for
	// it. Returns the stored result.
	MarkDeleted(orderID, itemID int64) (*Draft, error)

	// HasPending reports whether the order has unconfirmed changes.
	HasPending(orderID int64) (bool, error)
}

type store struct {
	kv kv.Store
}

func NewStore(medium kv.Store) Store {
	return &store{kv: medium}
}

func key(orderID int64) string {
	return keyPrefix + strconv.FormatInt(orderID, 10)
}

func (s *store) Read(orderID int64) (*Draft, error) {
	raw, ok, err := s.kv.Get(key(orderID))
	if err != nil {
		return nil, fmt.Errorf("read draft %d: %w", orderID, err)
	}
	if !ok {
		return nil, nil
	}

	var d Draft
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		// Corrupt stored state is not the user's problem: behave as if no
		// draft existed.
		logger.L().Warn("discarding malformed draft",
			zap.Int64("order_id", orderID),
			zap.Error(err),
		)
		return nil, nil
	}
	if d.Edits == nil {
		d.Edits = make(map[int64]ItemPatch)
	}
	return &d, nil
}

func (s *store) Write(orderID int64, d *Draft) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode draft %d: %w", orderID, err)
	}
	if err := s.kv.Set(key(orderID), string(raw)); err != nil {
		return fmt.Errorf("write draft %d: %w", orderID, err)
	}
	return nil
}

func (s *store) Clear(orderID int64) error {
	if err := s.kv.Delete(key(orderID)); err != nil {
		return fmt.Errorf("clear draft %d: %w", orderID, err)
	}
	return nil
}

func (s *store) UpsertEdit(orderID, itemID int64, patch ItemPatch) (*Draft, error) {
	d, err := s.Read(orderID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		d = New()
	}

	d.undelete(itemID)
	d.Edits[itemID] = d.Edits[itemID].merge(patch)

	if err := s.Write(orderID, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *store) MarkDeleted(orderID, itemID int64) (*Draft, error) {
	d, err := s.Read(orderID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		d = New()
	}

	delete(d.Edits, itemID)
	if !d.IsDeleted(itemID) {
		d.DeletedIDs = append(d.DeletedIDs, itemID)
	}

	if err := s.Write(orderID, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *store) HasPending(orderID int64) (bool, error) {
	d, err := s.Read(orderID)
	if err != nil {
		return false, err
	}
	return !d.Empty(), nil
}
