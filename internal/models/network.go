package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	// InitialVariantNum is the base variant every network owns. Other variants fall back to it.
	InitialVariantNum = 0
	// InitialVariantID is the name given to the base variant at network creation.
	InitialVariantID = "InitialState"
)

// Variant is a numbered copy-on-write snapshot of a network's attributes.
type Variant struct {
	NetworkID        uuid.UUID
	Num              int
	ID               string
	SourceVariantNum *int
	CreatedAt        time.Time
}

func (v Variant) IsInitial() bool {
	return v.Num == InitialVariantNum
}

type EquipmentType string

const (
	EquipmentTypeSubstation             EquipmentType = "SUBSTATION"
	EquipmentTypeVoltageLevel           EquipmentType = "VOLTAGE_LEVEL"
	EquipmentTypeBusbarSection          EquipmentType = "BUSBAR_SECTION"
	EquipmentTypeSwitch                 EquipmentType = "SWITCH"
	EquipmentTypeInternalConnection     EquipmentType = "INTERNAL_CONNECTION"
	EquipmentTypeLoad                   EquipmentType = "LOAD"
	EquipmentTypeGenerator              EquipmentType = "GENERATOR"
	EquipmentTypeBattery                EquipmentType = "BATTERY"
	EquipmentTypeShuntCompensator       EquipmentType = "SHUNT_COMPENSATOR"
	EquipmentTypeLine                   EquipmentType = "LINE"
	EquipmentTypeTwoWindingsTransformer EquipmentType = "TWO_WINDINGS_TRANSFORMER"
	EquipmentTypeDanglingLine           EquipmentType = "DANGLING_LINE"
)

// IsEdge tells whether equipment of this type links two nodes of a node/breaker topology
// instead of sitting on a node.
func (t EquipmentType) IsEdge() bool {
	return t == EquipmentTypeSwitch || t == EquipmentTypeInternalConnection
}

const (
	SwitchKindBreaker         = "BREAKER"
	SwitchKindDisconnector    = "DISCONNECTOR"
	SwitchKindLoadBreakSwitch = "LOAD_BREAK_SWITCH"
)

// ConnectionPoint is a node of a node/breaker voltage level.
type ConnectionPoint struct {
	VoltageLevelID string `json:"voltageLevelId"`
	Node           int    `json:"node"`
}

// Equipment is one equipment attribute row. Attributes is an opaque bundle:
// the store never decodes it.
type Equipment struct {
	ID         string            `json:"id"`
	Type       EquipmentType     `json:"type"`
	Kind       string            `json:"kind,omitempty"`
	Connection []ConnectionPoint `json:"connection,omitempty"`
	Attributes json.RawMessage   `json:"attributes,omitempty"`
}

// RemovalEvent is one entry of the ordered sequence emitted by an equipment removal.
type RemovalEvent struct {
	EquipmentID   string        `json:"equipmentId"`
	EquipmentType EquipmentType `json:"equipmentType"`
	Position      int           `json:"position"`
}
