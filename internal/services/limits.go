package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/gridstore/network-store/internal/migration"
	"github.com/gridstore/network-store/internal/models"
	"github.com/gridstore/network-store/internal/store"
	srvErrors "github.com/gridstore/network-store/pkg/errors"
)

// Attribute sets a derived variant can own independently of the initial variant.
const limitsAttributeSet = "limits"

func tapChangerAttributeSet(tcType models.TapChangerType) string {
	return "tap_changer:" + string(tcType)
}

// GetLimits returns the operational limits groups of the equipment as seen from the variant.
// Flat limit rows not migrated yet are returned as DEFAULT groups. An equipment without
// limits gets an empty list.
func (s *NetworkService) GetLimits(ctx context.Context, networkID uuid.UUID, variantNum int, equipmentID string) ([]models.OperationalLimitsGroup, error) {
	var groups []models.OperationalLimitsGroup
	err := s.store.WithTx(ctx, func(tx *store.Store) error {
		if _, err := s.variant(ctx, tx, networkID, variantNum); err != nil {
			return err
		}
		var err error
		groups, _, err = fallback(ctx, tx, networkID, variantNum, equipmentID, limitsAttributeSet, func(v int) ([]models.OperationalLimitsGroup, bool, error) {
			return readLimits(ctx, tx, networkID, v, equipmentID)
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	if groups == nil {
		groups = []models.OperationalLimitsGroup{}
	}
	return groups, nil
}

func readLimits(ctx context.Context, tx *store.Store, networkID uuid.UUID, variantNum int, equipmentID string) ([]models.OperationalLimitsGroup, bool, error) {
	groups, err := tx.Limits().Groups(ctx, networkID, variantNum, equipmentID)
	if err != nil {
		return nil, false, err
	}
	if len(groups) > 0 {
		return groups, true, nil
	}

	temporary, err := tx.Limits().LegacyTemporaryLimits(ctx, networkID, variantNum, equipmentID)
	if err != nil {
		return nil, false, err
	}
	permanent, err := tx.Limits().LegacyPermanentLimits(ctx, networkID, variantNum, equipmentID)
	if err != nil {
		return nil, false, err
	}
	if len(temporary) == 0 && len(permanent) == 0 {
		return nil, false, nil
	}
	groups, err = migration.GroupLimits(nil, temporary, permanent)
	if err != nil {
		return nil, false, err
	}
	return groups, true, nil
}

// PutLimits replaces the limits of the equipment in the variant. Flat limit rows of the
// equipment in the variant are dropped in the same transaction. In a derived variant the
// written set, empty or not, hides the limits of the initial variant.
func (s *NetworkService) PutLimits(ctx context.Context, networkID uuid.UUID, variantNum int, equipmentID string, groups []models.OperationalLimitsGroup) error {
	if equipmentID == "" {
		return srvErrors.NewInvalidArgumentError("equipment id is required")
	}
	keys := make(map[string]struct{}, len(groups))
	for i := range groups {
		g := &groups[i]
		g.EquipmentID = equipmentID
		if g.GroupID == "" {
			g.GroupID = models.DefaultLimitsGroupID
		}
		if g.Side < 1 {
			return srvErrors.NewInvalidArgumentError("equipment %s: limits side must be at least 1, got %d", equipmentID, g.Side)
		}
		key := fmt.Sprintf("%d/%s", g.Side, g.GroupID)
		if _, ok := keys[key]; ok {
			return srvErrors.NewInvalidArgumentError("equipment %s: group %s is given twice", equipmentID, key)
		}
		keys[key] = struct{}{}
	}

	return s.store.WithTx(ctx, func(tx *store.Store) error {
		if _, err := s.variant(ctx, tx, networkID, variantNum); err != nil {
			return err
		}
		if _, err := tx.Limits().DeleteGroups(ctx, networkID, variantNum, []string{equipmentID}); err != nil {
			return err
		}
		if err := tx.Limits().UpsertGroups(ctx, networkID, variantNum, groups); err != nil {
			return err
		}
		if _, err := tx.Limits().DeleteLegacyLimits(ctx, networkID, variantNum, equipmentID); err != nil {
			return err
		}
		return own(ctx, tx, networkID, variantNum, equipmentID, limitsAttributeSet)
	})
}

// GetTapChangerSteps returns the steps of one tap changer as seen from the variant. A legacy
// bundle not migrated yet is returned with positions taken from the bundle order.
func (s *NetworkService) GetTapChangerSteps(ctx context.Context, networkID uuid.UUID, variantNum int, equipmentID string, tcType models.TapChangerType) (*models.TapChangerSteps, error) {
	var result models.TapChangerSteps
	err := s.store.WithTx(ctx, func(tx *store.Store) error {
		if _, err := s.variant(ctx, tx, networkID, variantNum); err != nil {
			return err
		}
		tc, found, err := fallback(ctx, tx, networkID, variantNum, equipmentID, tapChangerAttributeSet(tcType), func(v int) (models.TapChangerSteps, bool, error) {
			return readSteps(ctx, tx, networkID, v, equipmentID, tcType)
		})
		if err != nil {
			return err
		}
		if !found {
			return srvErrors.NewResourceNotFoundError("tap changer", fmt.Sprintf("%s/%s", equipmentID, tcType))
		}
		if tc.EquipmentType == "" {
			if eq, err := s.resolve(ctx, tx, networkID, variantNum, equipmentID); err == nil {
				tc.EquipmentType = eq.Type
			}
		}
		result = tc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func readSteps(ctx context.Context, tx *store.Store, networkID uuid.UUID, variantNum int, equipmentID string, tcType models.TapChangerType) (models.TapChangerSteps, bool, error) {
	steps, err := tx.TapChanger().Steps(ctx, networkID, variantNum, equipmentID, tcType)
	if err != nil {
		return models.TapChangerSteps{}, false, err
	}
	if len(steps) > 0 {
		return models.TapChangerSteps{EquipmentID: equipmentID, TapChangerType: tcType, Steps: steps}, true, nil
	}

	legacy, err := tx.TapChanger().Legacy(ctx, networkID, variantNum, equipmentID)
	if err != nil {
		return models.TapChangerSteps{}, false, err
	}
	for _, tc := range migration.ExpandSteps(legacy) {
		if tc.TapChangerType == tcType {
			return tc, true, nil
		}
	}
	return models.TapChangerSteps{}, false, nil
}

// PutTapChangerSteps replaces the steps of one tap changer in the variant. In a derived
// variant an empty step list hides the tap changer of the initial variant.
func (s *NetworkService) PutTapChangerSteps(ctx context.Context, networkID uuid.UUID, variantNum int, tc models.TapChangerSteps) error {
	if tc.EquipmentID == "" {
		return srvErrors.NewInvalidArgumentError("equipment id is required")
	}
	if _, ok := models.ParseTapChangerType(string(tc.TapChangerType)); !ok {
		return srvErrors.NewInvalidArgumentError("unknown tap changer type %q", tc.TapChangerType)
	}
	steps := append([]models.TapChangerStep{}, tc.Steps...)
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].Position < steps[j].Position })
	for i, st := range steps {
		if st.Position < 0 {
			return srvErrors.NewInvalidArgumentError("tap changer %s: negative step position %d", tc.EquipmentID, st.Position)
		}
		if i > 0 && steps[i-1].Position == st.Position {
			return srvErrors.NewInvalidArgumentError("tap changer %s: step position %d is given twice", tc.EquipmentID, st.Position)
		}
	}
	tc.Steps = steps

	return s.store.WithTx(ctx, func(tx *store.Store) error {
		if _, err := s.variant(ctx, tx, networkID, variantNum); err != nil {
			return err
		}
		if err := tx.TapChanger().ReplaceSteps(ctx, networkID, variantNum, tc); err != nil {
			return err
		}
		return own(ctx, tx, networkID, variantNum, tc.EquipmentID, tapChangerAttributeSet(tc.TapChangerType))
	})
}
