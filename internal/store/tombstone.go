package store

import (
	"context"

	"github.com/google/uuid"
)

// TombstoneStore records equipment removed in a variant while the initial variant still
// carries it, so that reads of the variant do not fall back to it.
type TombstoneStore struct {
	db            QueryInterceptor
	maxInListSize int
}

func NewTombstoneStore(db QueryInterceptor, maxInListSize int) *TombstoneStore {
	return &TombstoneStore{db: db, maxInListSize: maxInListSize}
}

func (s *TombstoneStore) Add(ctx context.Context, networkID uuid.UUID, variantNum int, equipmentIDs []string) error {
	stmt, err := Upsert(tableTombstone, []string{colEquipmentID}, nil)
	if err != nil {
		return err
	}
	for _, id := range equipmentIDs {
		values := scope(networkID, variantNum)
		values[colEquipmentID] = id
		if _, err := s.db.exec(ctx, stmt, values); err != nil {
			return err
		}
	}
	return nil
}

func (s *TombstoneStore) Remove(ctx context.Context, networkID uuid.UUID, variantNum int, equipmentIDs []string) error {
	for _, ids := range chunks(equipmentIDs, s.maxInListSize) {
		stmt, err := DeleteIn(tableTombstone, colEquipmentID, len(ids))
		if err != nil {
			return err
		}
		values := scope(networkID, variantNum)
		values[colEquipmentID] = List(ids)
		if _, err := s.db.exec(ctx, stmt, values); err != nil {
			return err
		}
	}
	return nil
}

func (s *TombstoneStore) Has(ctx context.Context, networkID uuid.UUID, variantNum int, equipmentID string) (bool, error) {
	stmt, err := Select(tableTombstone, []string{"COUNT(*)"}, []string{colEquipmentID})
	if err != nil {
		return false, err
	}
	values := scope(networkID, variantNum)
	values[colEquipmentID] = equipmentID
	args, err := stmt.Bind(values)
	if err != nil {
		return false, err
	}
	var count int
	if err := s.db.QueryRowContext(ctx, stmt.SQL, args...).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns the tombstoned equipment ids of the variant.
func (s *TombstoneStore) List(ctx context.Context, networkID uuid.UUID, variantNum int) (map[string]struct{}, error) {
	stmt, err := Select(tableTombstone, tombstoneColumns, nil)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.query(ctx, stmt, scope(networkID, variantNum))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}
