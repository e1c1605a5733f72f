package migration

import (
	"sort"

	"github.com/gridstore/network-store/internal/models"
	"github.com/gridstore/network-store/internal/util"
	srvErrors "github.com/gridstore/network-store/pkg/errors"
)

type limitsKey struct {
	equipmentID string
	side        int
}

// GroupLimits collapses flat limit rows into one DEFAULT group per (equipment, side).
// When existing holds the DEFAULT group of a key, the flat rows are merged into it and
// every temporary limit is kept. A key whose flat permanent rows disagree, or whose flat
// permanent value differs from the permanent limit of its existing group, cannot be
// merged without dropping a value and fails with an InvalidOperationError.
// Groups are returned ordered by equipment and side.
func GroupLimits(existing []models.OperationalLimitsGroup, temporary []models.LegacyTemporaryLimit, permanent []models.LegacyPermanentLimit) ([]models.OperationalLimitsGroup, error) {
	byKey := make(map[limitsKey]*models.OperationalLimitsGroup)
	group := func(id string, eqType models.EquipmentType, side int) *models.OperationalLimitsGroup {
		k := limitsKey{equipmentID: id, side: side}
		if g, ok := byKey[k]; ok {
			return g
		}
		g := &models.OperationalLimitsGroup{
			EquipmentID:   id,
			EquipmentType: eqType,
			Side:          side,
			GroupID:       models.DefaultLimitsGroupID,
		}
		byKey[k] = g
		return g
	}

	for _, e := range existing {
		if e.GroupID != models.DefaultLimitsGroupID {
			continue
		}
		g := group(e.EquipmentID, e.EquipmentType, e.Side)
		g.PermanentLimit = e.PermanentLimit
		g.TemporaryLimits = append(g.TemporaryLimits, e.TemporaryLimits...)
	}

	for _, l := range temporary {
		g := group(l.EquipmentID, l.EquipmentType, l.Side)
		g.TemporaryLimits = append(g.TemporaryLimits, models.TemporaryLimit{
			Name:               l.Name,
			AcceptableDuration: l.AcceptableDuration,
			Value:              l.Value,
		})
	}
	for _, l := range permanent {
		g := group(l.EquipmentID, l.EquipmentType, l.Side)
		if g.PermanentLimit == nil {
			g.PermanentLimit = util.Ptr(l.Value)
			continue
		}
		if *g.PermanentLimit != l.Value {
			return nil, srvErrors.NewInvalidOperationError(
				"conflicting permanent limits %v and %v for equipment %s side %d",
				*g.PermanentLimit, l.Value, l.EquipmentID, l.Side)
		}
	}

	groups := make([]models.OperationalLimitsGroup, 0, len(byKey))
	for _, g := range byKey {
		models.SortTemporaryLimits(g.TemporaryLimits)
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].EquipmentID != groups[j].EquipmentID {
			return groups[i].EquipmentID < groups[j].EquipmentID
		}
		return groups[i].Side < groups[j].Side
	})
	return groups, nil
}

// ExpandSteps turns each legacy bundle of N steps into N positioned steps,
// the position of a step being its index in the bundle.
func ExpandSteps(legacy []models.LegacyTapChanger) []models.TapChangerSteps {
	out := make([]models.TapChangerSteps, 0, len(legacy))
	for _, tc := range legacy {
		steps := make([]models.TapChangerStep, len(tc.Steps))
		for i, st := range tc.Steps {
			steps[i] = models.TapChangerStep{
				Position: i,
				Rho:      st.Rho,
				R:        st.R,
				X:        st.X,
				G:        st.G,
				B:        st.B,
				Alpha:    st.Alpha,
			}
		}
		out = append(out, models.TapChangerSteps{
			EquipmentID:    tc.EquipmentID,
			EquipmentType:  tc.EquipmentType,
			TapChangerType: tc.TapChangerType,
			Steps:          steps,
		})
	}
	return out
}
