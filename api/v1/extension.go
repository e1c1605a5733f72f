package v1

import (
	"github.com/gridstore/network-store/internal/migration"
	"github.com/gridstore/network-store/internal/models"
)

func NewVariantFromModel(m models.Variant) Variant {
	return Variant{
		NetworkID:        m.NetworkID,
		VariantNum:       m.Num,
		VariantID:        m.ID,
		SourceVariantNum: m.SourceVariantNum,
		CreatedAt:        m.CreatedAt,
	}
}

func NewEquipmentFromModel(m models.Equipment) Equipment {
	e := Equipment{
		ID:         m.ID,
		Type:       string(m.Type),
		Kind:       m.Kind,
		Attributes: m.Attributes,
	}
	for _, cp := range m.Connection {
		e.Connection = append(e.Connection, ConnectionPoint{VoltageLevelID: cp.VoltageLevelID, Node: cp.Node})
	}
	return e
}

// ToModel converts the request body. The path equipment id wins over the body one.
func (e Equipment) ToModel(equipmentID string) models.Equipment {
	m := models.Equipment{
		ID:         equipmentID,
		Type:       models.EquipmentType(e.Type),
		Kind:       e.Kind,
		Attributes: e.Attributes,
	}
	for _, cp := range e.Connection {
		m.Connection = append(m.Connection, models.ConnectionPoint{VoltageLevelID: cp.VoltageLevelID, Node: cp.Node})
	}
	return m
}

func NewRemovalEventsFromModel(events []models.RemovalEvent) []RemovalEvent {
	out := make([]RemovalEvent, 0, len(events))
	for _, e := range events {
		out = append(out, RemovalEvent{EquipmentID: e.EquipmentID, EquipmentType: string(e.EquipmentType), Position: e.Position})
	}
	return out
}

func NewLimitsFromModel(equipmentID string, groups []models.OperationalLimitsGroup) Limits {
	l := Limits{EquipmentID: equipmentID, Groups: make([]OperationalLimitsGroup, 0, len(groups))}
	for _, g := range groups {
		group := OperationalLimitsGroup{
			EquipmentType:  string(g.EquipmentType),
			Side:           g.Side,
			GroupID:        g.GroupID,
			PermanentLimit: g.PermanentLimit,
		}
		for _, t := range g.TemporaryLimits {
			group.TemporaryLimits = append(group.TemporaryLimits, TemporaryLimit(t))
		}
		l.Groups = append(l.Groups, group)
	}
	return l
}

func (l Limits) ToModel(equipmentID string) []models.OperationalLimitsGroup {
	groups := make([]models.OperationalLimitsGroup, 0, len(l.Groups))
	for _, g := range l.Groups {
		group := models.OperationalLimitsGroup{
			EquipmentID:    equipmentID,
			EquipmentType:  models.EquipmentType(g.EquipmentType),
			Side:           g.Side,
			GroupID:        g.GroupID,
			PermanentLimit: g.PermanentLimit,
		}
		for _, t := range g.TemporaryLimits {
			group.TemporaryLimits = append(group.TemporaryLimits, models.TemporaryLimit(t))
		}
		groups = append(groups, group)
	}
	return groups
}

func NewTapChangerStepsFromModel(m models.TapChangerSteps) TapChangerSteps {
	tc := TapChangerSteps{
		EquipmentID:    m.EquipmentID,
		EquipmentType:  string(m.EquipmentType),
		TapChangerType: string(m.TapChangerType),
		Steps:          make([]TapChangerStep, 0, len(m.Steps)),
	}
	for _, st := range m.Steps {
		tc.Steps = append(tc.Steps, TapChangerStep(st))
	}
	return tc
}

func (t TapChangerSteps) ToModel(equipmentID string, tcType models.TapChangerType) models.TapChangerSteps {
	m := models.TapChangerSteps{
		EquipmentID:    equipmentID,
		EquipmentType:  models.EquipmentType(t.EquipmentType),
		TapChangerType: tcType,
	}
	for _, st := range t.Steps {
		m.Steps = append(m.Steps, models.TapChangerStep(st))
	}
	return m
}

func NewMigrationUnitsFromModel(units []migration.Unit) []MigrationUnit {
	out := make([]MigrationUnit, 0, len(units))
	for _, u := range units {
		out = append(out, MigrationUnit{Name: u.Name(), Version: u.Version()})
	}
	return out
}

func NewMigrationReportFromModel(r migration.Report) MigrationReport {
	return MigrationReport(r)
}

func NewMigrationReportsFromModel(reports []migration.Report) []MigrationReport {
	out := make([]MigrationReport, 0, len(reports))
	for _, r := range reports {
		out = append(out, MigrationReport(r))
	}
	return out
}
