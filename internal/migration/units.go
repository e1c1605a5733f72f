package migration

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/gridstore/network-store/internal/models"
	"github.com/gridstore/network-store/internal/store"
)

const (
	UnitOperationalLimitsGroups = "operational-limits-groups"
	UnitTapChangerSteps         = "tap-changer-steps"
)

// Units returns the built-in units in version order.
func Units() []Unit {
	return []Unit{
		&OperationalLimitsGroupsUnit{},
		&TapChangerStepsUnit{},
	}
}

// OperationalLimitsGroupsUnit moves flat temporary and permanent limit rows
// into operational limits groups.
type OperationalLimitsGroupsUnit struct{}

func (u *OperationalLimitsGroupsUnit) Name() string { return UnitOperationalLimitsGroups }

func (u *OperationalLimitsGroupsUnit) Version() int { return 1 }

func (u *OperationalLimitsGroupsUnit) Migrate(ctx context.Context, tx *store.Store, networkID uuid.UUID, variantNum int) (Report, error) {
	report := Report{Unit: u.Name(), NetworkID: networkID, VariantNum: variantNum}

	temporary, err := tx.Limits().LegacyTemporaryLimits(ctx, networkID, variantNum)
	if err != nil {
		return report, fmt.Errorf("failed to read temporary limits: %w", err)
	}
	permanent, err := tx.Limits().LegacyPermanentLimits(ctx, networkID, variantNum)
	if err != nil {
		return report, fmt.Errorf("failed to read permanent limits: %w", err)
	}
	report.RowsRead = len(temporary) + len(permanent)
	if report.RowsRead == 0 {
		return report, nil
	}

	ids := equipmentIDs(temporary, permanent)
	existing, err := tx.Limits().Groups(ctx, networkID, variantNum, ids...)
	if err != nil {
		return report, fmt.Errorf("failed to read limits groups: %w", err)
	}

	groups, err := GroupLimits(existing, temporary, permanent)
	if err != nil {
		return report, err
	}
	if err := tx.Limits().UpsertGroups(ctx, networkID, variantNum, groups); err != nil {
		return report, err
	}
	report.RowsWritten = len(groups)

	deleted, err := tx.Limits().DeleteLegacyLimits(ctx, networkID, variantNum)
	if err != nil {
		return report, fmt.Errorf("failed to delete flat limits: %w", err)
	}
	report.RowsDeleted = int(deleted)
	return report, nil
}

func equipmentIDs(temporary []models.LegacyTemporaryLimit, permanent []models.LegacyPermanentLimit) []string {
	seen := make(map[string]struct{})
	var ids []string
	add := func(id string) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	for _, l := range temporary {
		add(l.EquipmentID)
	}
	for _, l := range permanent {
		add(l.EquipmentID)
	}
	return ids
}

// TapChangerStepsUnit moves legacy tap changer bundles into one row per step.
// A tap changer that already has step rows keeps them; its bundle is only deleted.
type TapChangerStepsUnit struct{}

func (u *TapChangerStepsUnit) Name() string { return UnitTapChangerSteps }

func (u *TapChangerStepsUnit) Version() int { return 2 }

func (u *TapChangerStepsUnit) Migrate(ctx context.Context, tx *store.Store, networkID uuid.UUID, variantNum int) (Report, error) {
	report := Report{Unit: u.Name(), NetworkID: networkID, VariantNum: variantNum}

	legacy, err := tx.TapChanger().Legacy(ctx, networkID, variantNum)
	if err != nil {
		return report, fmt.Errorf("failed to read tap changers: %w", err)
	}
	report.RowsRead = len(legacy)
	if len(legacy) == 0 {
		return report, nil
	}

	var toInsert []models.TapChangerSteps
	for _, tc := range ExpandSteps(legacy) {
		current, err := tx.TapChanger().Steps(ctx, networkID, variantNum, tc.EquipmentID, tc.TapChangerType)
		if err != nil {
			return report, err
		}
		if len(current) > 0 {
			continue
		}
		toInsert = append(toInsert, tc)
		report.RowsWritten += len(tc.Steps)
	}

	if err := tx.TapChanger().InsertSteps(ctx, networkID, variantNum, toInsert); err != nil {
		return report, err
	}

	deleted, err := tx.TapChanger().DeleteLegacy(ctx, networkID, variantNum)
	if err != nil {
		return report, fmt.Errorf("failed to delete tap changers: %w", err)
	}
	report.RowsDeleted = int(deleted)
	return report, nil
}
