package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultMaxInListSize bounds the number of values of one IN (...) predicate.
const DefaultMaxInListSize = 1000

// Store provides access to all storage repositories.
type Store struct {
	db            *sql.DB
	q             QueryInterceptor
	inTx          bool
	maxInListSize int
	variant       *VariantStore
	equipment     *EquipmentStore
	tombstone     *TombstoneStore
	limits        *LimitsStore
	tapChanger    *TapChangerStore
	override      *OverrideStore
}

type Option func(*Store)

// WithMaxInListSize sets the IN (...) bound above which batched statements are chunked.
func WithMaxInListSize(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxInListSize = n
		}
	}
}

func NewStore(db *sql.DB, opts ...Option) *Store {
	s := &Store{db: db, maxInListSize: DefaultMaxInListSize}
	for _, opt := range opts {
		opt(s)
	}
	s.bind(NewQueryInterceptor(db), false)
	return s
}

func (s *Store) bind(q QueryInterceptor, inTx bool) {
	s.q = q
	s.inTx = inTx
	s.variant = NewVariantStore(q)
	s.equipment = NewEquipmentStore(q, s.maxInListSize)
	s.tombstone = NewTombstoneStore(q, s.maxInListSize)
	s.limits = NewLimitsStore(q, s.maxInListSize)
	s.tapChanger = NewTapChangerStore(q, s.maxInListSize)
	s.override = NewOverrideStore(q, s.maxInListSize)
}

func (s *Store) Variant() *VariantStore {
	return s.variant
}

func (s *Store) Equipment() *EquipmentStore {
	return s.equipment
}

func (s *Store) Tombstone() *TombstoneStore {
	return s.tombstone
}

func (s *Store) Limits() *LimitsStore {
	return s.limits
}

func (s *Store) TapChanger() *TapChangerStore {
	return s.tapChanger
}

func (s *Store) Override() *OverrideStore {
	return s.override
}

// WithTx runs fn against a store bound to one transaction. The transaction commits when fn
// returns nil and rolls back otherwise. Called on a store already bound to a transaction,
// fn joins it.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Store) error) error {
	if s.inTx {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	txStore := &Store{db: s.db, maxInListSize: s.maxInListSize}
	txStore.bind(NewQueryInterceptor(tx), true)

	if err := fn(txStore); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			zap.S().Named("store").Errorw("failed to rollback transaction", "error", rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteVariantRows removes every row scoped to (networkID, variantNum), in every variant scoped table.
func (s *Store) DeleteVariantRows(ctx context.Context, networkID uuid.UUID, variantNum int) error {
	for _, table := range variantScopedTables {
		stmt, err := Delete(table)
		if err != nil {
			return err
		}
		if _, err := s.q.exec(ctx, stmt, scope(networkID, variantNum)); err != nil {
			return fmt.Errorf("failed to delete %s rows: %w", table, err)
		}
	}
	return nil
}

// CopyVariantRows duplicates the rows of sourceVariantNum into targetVariantNum, in every variant scoped table.
func (s *Store) CopyVariantRows(ctx context.Context, networkID uuid.UUID, sourceVariantNum, targetVariantNum int) error {
	copies := []struct {
		table   string
		columns []string
	}{
		{tableEquipment, equipmentColumns},
		{tableTombstone, tombstoneColumns},
		{tableTemporaryLimit, temporaryLimitColumns},
		{tablePermanentLimit, permanentLimitColumns},
		{tableOperationalLimitsGroup, limitsGroupColumns},
		{tableTapChanger, tapChangerColumns},
		{tableTapChangerStep, tapChangerStepColumns},
		{tableAttributeOverride, overrideColumns},
	}
	for _, c := range copies {
		stmt, err := CopyToVariant(c.table, c.columns)
		if err != nil {
			return err
		}
		values := scope(networkID, sourceVariantNum)
		values[ParamTargetVariantNum] = targetVariantNum
		if _, err := s.q.exec(ctx, stmt, values); err != nil {
			return fmt.Errorf("failed to copy %s rows: %w", c.table, err)
		}
	}
	return nil
}

// DeleteNetwork removes every row of the network, variants included.
func (s *Store) DeleteNetwork(ctx context.Context, networkID uuid.UUID) error {
	for _, table := range append(append([]string{}, variantScopedTables...), tableVariant) {
		if _, err := s.q.ExecContext(ctx, fmt.Sprintf(queryDeleteNetworkRows, table), networkID.String()); err != nil {
			return fmt.Errorf("failed to delete %s rows: %w", table, err)
		}
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func scope(networkID uuid.UUID, variantNum int) Values {
	return Values{ColNetworkUUID: networkID.String(), ColVariantNum: variantNum}
}

// chunks splits items into slices of at most size elements.
func chunks[T any](items []T, size int) [][]T {
	var out [][]T
	for size < len(items) {
		items, out = items[size:], append(out, items[:size])
	}
	if len(items) > 0 {
		out = append(out, items)
	}
	return out
}
