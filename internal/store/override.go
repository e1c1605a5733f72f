package store

import (
	"context"

	"github.com/google/uuid"
)

// OverrideStore records that a derived variant owns an attribute set of an equipment,
// limits or the steps of one tap changer, even when it holds no row for it. Reads of an
// owned set never fall back to the initial variant.
type OverrideStore struct {
	db            QueryInterceptor
	maxInListSize int
}

func NewOverrideStore(db QueryInterceptor, maxInListSize int) *OverrideStore {
	return &OverrideStore{db: db, maxInListSize: maxInListSize}
}

func (s *OverrideStore) Set(ctx context.Context, networkID uuid.UUID, variantNum int, equipmentID, attributeSet string) error {
	stmt, err := Upsert(tableAttributeOverride, overrideColumns, nil)
	if err != nil {
		return err
	}
	values := scope(networkID, variantNum)
	values[colEquipmentID] = equipmentID
	values[colAttributeSet] = attributeSet
	_, err = s.db.exec(ctx, stmt, values)
	return err
}

func (s *OverrideStore) Has(ctx context.Context, networkID uuid.UUID, variantNum int, equipmentID, attributeSet string) (bool, error) {
	stmt, err := Select(tableAttributeOverride, []string{"COUNT(*)"}, overrideColumns)
	if err != nil {
		return false, err
	}
	values := scope(networkID, variantNum)
	values[colEquipmentID] = equipmentID
	values[colAttributeSet] = attributeSet
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

// Delete drops every attribute set owned by the given equipment in the variant.
func (s *OverrideStore) Delete(ctx context.Context, networkID uuid.UUID, variantNum int, equipmentIDs []string) (int64, error) {
	if len(equipmentIDs) == 0 {
		return 0, nil
	}
	return s.db.deleteChunked(ctx, tableAttributeOverride, scope(networkID, variantNum), colEquipmentID, equipmentIDs, s.maxInListSize)
}
