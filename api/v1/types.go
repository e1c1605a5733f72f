package v1

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Error is the envelope of every non-2xx response.
type Error struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
	Path    string `json:"path"`
}

type CreateNetworkRequest struct {
	// NetworkID is generated when omitted.
	NetworkID *uuid.UUID `json:"networkId,omitempty"`
}

type Variant struct {
	NetworkID        uuid.UUID `json:"networkId"`
	VariantNum       int       `json:"variantNum"`
	VariantID        string    `json:"variantId"`
	SourceVariantNum *int      `json:"sourceVariantNum,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

type CloneVariantRequest struct {
	SourceVariantNum int    `json:"sourceVariantNum"`
	VariantNum       int    `json:"variantNum" binding:"required,gt=0"`
	VariantID        string `json:"variantId" binding:"required"`
}

type ConnectionPoint struct {
	VoltageLevelID string `json:"voltageLevelId"`
	Node           int    `json:"node"`
}

// Equipment carries the attribute bundle of one equipment. The bundle is opaque.
type Equipment struct {
	ID         string            `json:"id"`
	Type       string            `json:"type" binding:"required"`
	Kind       string            `json:"kind,omitempty"`
	Connection []ConnectionPoint `json:"connection,omitempty"`
	Attributes json.RawMessage   `json:"attributes,omitempty"`
}

type RemovalEvent struct {
	EquipmentID   string `json:"equipmentId"`
	EquipmentType string `json:"equipmentType"`
	Position      int    `json:"position"`
}

type TemporaryLimit struct {
	Name               string  `json:"name"`
	AcceptableDuration int     `json:"acceptableDuration"`
	Value              float64 `json:"value"`
}

type OperationalLimitsGroup struct {
	EquipmentType   string           `json:"equipmentType"`
	Side            int              `json:"side"`
	GroupID         string           `json:"groupId,omitempty"`
	PermanentLimit  *float64         `json:"permanentLimit,omitempty"`
	TemporaryLimits []TemporaryLimit `json:"temporaryLimits,omitempty"`
}

type Limits struct {
	EquipmentID string                   `json:"equipmentId"`
	Groups      []OperationalLimitsGroup `json:"groups"`
}

type TapChangerStep struct {
	Position int     `json:"position"`
	Rho      float64 `json:"rho"`
	R        float64 `json:"r"`
	X        float64 `json:"x"`
	G        float64 `json:"g"`
	B        float64 `json:"b"`
	Alpha    float64 `json:"alpha,omitempty"`
}

type TapChangerSteps struct {
	EquipmentID    string           `json:"equipmentId"`
	EquipmentType  string           `json:"equipmentType,omitempty"`
	TapChangerType string           `json:"tapChangerType"`
	Steps          []TapChangerStep `json:"steps"`
}

type MigrationUnit struct {
	Name    string `json:"name"`
	Version int    `json:"version"`
}

type MigrationReport struct {
	Unit        string    `json:"unit"`
	NetworkID   uuid.UUID `json:"networkId"`
	VariantNum  int       `json:"variantNum"`
	RowsRead    int       `json:"rowsRead"`
	RowsWritten int       `json:"rowsWritten"`
	RowsDeleted int       `json:"rowsDeleted"`
}
