package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/gridstore/network-store/internal/models"
	"github.com/gridstore/network-store/internal/util"
)

// LimitsStore persists operational limits groups and the legacy flat limit rows
// written before limits had a group identity.
type LimitsStore struct {
	db            QueryInterceptor
	maxInListSize int
}

func NewLimitsStore(db QueryInterceptor, maxInListSize int) *LimitsStore {
	return &LimitsStore{db: db, maxInListSize: maxInListSize}
}

// Groups returns the groups of the variant, ordered by equipment, side and group id.
// Without equipment ids, every group of the variant is returned.
func (s *LimitsStore) Groups(ctx context.Context, networkID uuid.UUID, variantNum int, equipmentIDs ...string) ([]models.OperationalLimitsGroup, error) {
	var groups []models.OperationalLimitsGroup
	err := s.db.selectChunked(ctx, tableOperationalLimitsGroup, limitsGroupColumns, scope(networkID, variantNum),
		colEquipmentID, equipmentIDs, s.maxInListSize, []string{colEquipmentID, colSide, colGroupID},
		func(row scanner) error {
			var (
				g         models.OperationalLimitsGroup
				eqType    string
				permanent sql.NullFloat64
				temporary sql.NullString
			)
			if err := row.Scan(&g.EquipmentID, &eqType, &g.Side, &g.GroupID, &permanent, &temporary); err != nil {
				return err
			}
			g.EquipmentType = models.EquipmentType(eqType)
			if permanent.Valid {
				g.PermanentLimit = util.Ptr(permanent.Float64)
			}
			if temporary.Valid && temporary.String != "" {
				if err := json.Unmarshal([]byte(temporary.String), &g.TemporaryLimits); err != nil {
					return fmt.Errorf("equipment %s: failed to decode temporary limits: %w", g.EquipmentID, err)
				}
			}
			groups = append(groups, g)
			return nil
		})
	return groups, err
}

// UpsertGroups writes the groups in the variant, overwriting groups with the same key.
func (s *LimitsStore) UpsertGroups(ctx context.Context, networkID uuid.UUID, variantNum int, groups []models.OperationalLimitsGroup) error {
	stmt, err := Upsert(tableOperationalLimitsGroup, limitsGroupKey, []string{colEquipmentType, colPermanentLimit, colTemporaryLimits})
	if err != nil {
		return err
	}
	for _, g := range groups {
		values := scope(networkID, variantNum)
		values[colEquipmentID] = g.EquipmentID
		values[colEquipmentType] = string(g.EquipmentType)
		values[colSide] = g.Side
		values[colGroupID] = g.GroupID
		values[colPermanentLimit] = nil
		if g.PermanentLimit != nil {
			values[colPermanentLimit] = *g.PermanentLimit
		}
		values[colTemporaryLimits] = nil
		if len(g.TemporaryLimits) > 0 {
			limits := append([]models.TemporaryLimit{}, g.TemporaryLimits...)
			models.SortTemporaryLimits(limits)
			b, err := json.Marshal(limits)
			if err != nil {
				return err
			}
			values[colTemporaryLimits] = string(b)
		}
		if _, err := s.db.exec(ctx, stmt, values); err != nil {
			return fmt.Errorf("failed to write limits group %s/%d/%s: %w", g.EquipmentID, g.Side, g.GroupID, err)
		}
	}
	return nil
}

// DeleteGroups removes the groups of the equipment in the variant.
func (s *LimitsStore) DeleteGroups(ctx context.Context, networkID uuid.UUID, variantNum int, equipmentIDs []string) (int64, error) {
	if len(equipmentIDs) == 0 {
		return 0, nil
	}
	return s.db.deleteChunked(ctx, tableOperationalLimitsGroup, scope(networkID, variantNum), colEquipmentID, equipmentIDs, s.maxInListSize)
}

// LegacyTemporaryLimits returns the flat temporary limit rows of the variant.
// Without equipment ids, every row of the variant is returned.
func (s *LimitsStore) LegacyTemporaryLimits(ctx context.Context, networkID uuid.UUID, variantNum int, equipmentIDs ...string) ([]models.LegacyTemporaryLimit, error) {
	var limits []models.LegacyTemporaryLimit
	err := s.db.selectChunked(ctx, tableTemporaryLimit, temporaryLimitColumns, scope(networkID, variantNum),
		colEquipmentID, equipmentIDs, s.maxInListSize, []string{colEquipmentID, colSide, colAcceptableDuration + " DESC", colName},
		func(row scanner) error {
			var (
				l      models.LegacyTemporaryLimit
				eqType string
			)
			if err := row.Scan(&l.EquipmentID, &eqType, &l.Side, &l.Name, &l.AcceptableDuration, &l.Value); err != nil {
				return err
			}
			l.EquipmentType = models.EquipmentType(eqType)
			limits = append(limits, l)
			return nil
		})
	return limits, err
}

// LegacyPermanentLimits returns the flat permanent limit rows of the variant.
// Without equipment ids, every row of the variant is returned.
func (s *LimitsStore) LegacyPermanentLimits(ctx context.Context, networkID uuid.UUID, variantNum int, equipmentIDs ...string) ([]models.LegacyPermanentLimit, error) {
	var limits []models.LegacyPermanentLimit
	err := s.db.selectChunked(ctx, tablePermanentLimit, permanentLimitColumns, scope(networkID, variantNum),
		colEquipmentID, equipmentIDs, s.maxInListSize, []string{colEquipmentID, colSide},
		func(row scanner) error {
			var (
				l      models.LegacyPermanentLimit
				eqType string
			)
			if err := row.Scan(&l.EquipmentID, &eqType, &l.Side, &l.Value); err != nil {
				return err
			}
			l.EquipmentType = models.EquipmentType(eqType)
			limits = append(limits, l)
			return nil
		})
	return limits, err
}

// InsertLegacyLimits writes flat limit rows. Only data written by earlier releases and
// test fixtures carry this shape.
func (s *LimitsStore) InsertLegacyLimits(ctx context.Context, networkID uuid.UUID, variantNum int, temporary []models.LegacyTemporaryLimit, permanent []models.LegacyPermanentLimit) error {
	for _, batch := range chunks(temporary, s.maxInListSize) {
		stmt, err := InsertBatch(tableTemporaryLimit, temporaryLimitColumns, len(batch))
		if err != nil {
			return err
		}
		values := scope(networkID, variantNum)
		var ids, types, names, sides, durations, vals []any
		for _, l := range batch {
			ids = append(ids, l.EquipmentID)
			types = append(types, string(l.EquipmentType))
			sides = append(sides, l.Side)
			names = append(names, l.Name)
			durations = append(durations, l.AcceptableDuration)
			vals = append(vals, l.Value)
		}
		values[colEquipmentID], values[colEquipmentType], values[colSide] = ids, types, sides
		values[colName], values[colAcceptableDuration], values[colValue] = names, durations, vals
		if _, err := s.db.exec(ctx, stmt, values); err != nil {
			return err
		}
	}

	for _, batch := range chunks(permanent, s.maxInListSize) {
		stmt, err := InsertBatch(tablePermanentLimit, permanentLimitColumns, len(batch))
		if err != nil {
			return err
		}
		values := scope(networkID, variantNum)
		var ids, types, sides, vals []any
		for _, l := range batch {
			ids = append(ids, l.EquipmentID)
			types = append(types, string(l.EquipmentType))
			sides = append(sides, l.Side)
			vals = append(vals, l.Value)
		}
		values[colEquipmentID], values[colEquipmentType], values[colSide], values[colValue] = ids, types, sides, vals
		if _, err := s.db.exec(ctx, stmt, values); err != nil {
			return err
		}
	}
	return nil
}

// DeleteLegacyLimits removes flat limit rows of the variant, all of them without equipment ids.
func (s *LimitsStore) DeleteLegacyLimits(ctx context.Context, networkID uuid.UUID, variantNum int, equipmentIDs ...string) (int64, error) {
	var total int64
	for _, table := range []string{tableTemporaryLimit, tablePermanentLimit} {
		n, err := s.db.deleteChunked(ctx, table, scope(networkID, variantNum), colEquipmentID, equipmentIDs, s.maxInListSize)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
