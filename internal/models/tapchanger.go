package models

type TapChangerType string

const (
	TapChangerTypeRatio TapChangerType = "RATIO"
	TapChangerTypePhase TapChangerType = "PHASE"
)

func ParseTapChangerType(s string) (TapChangerType, bool) {
	switch TapChangerType(s) {
	case TapChangerTypeRatio, TapChangerTypePhase:
		return TapChangerType(s), true
	default:
		return "", false
	}
}

// TapChangerStep is one step of a ratio or phase tap changer.
type TapChangerStep struct {
	Position int     `json:"position"`
	Rho      float64 `json:"rho"`
	R        float64 `json:"r"`
	X        float64 `json:"x"`
	G        float64 `json:"g"`
	B        float64 `json:"b"`
	Alpha    float64 `json:"alpha,omitempty"`
}

// TapChangerSteps is the step list of one tap changer of one equipment.
type TapChangerSteps struct {
	EquipmentID    string           `json:"equipmentId"`
	EquipmentType  EquipmentType    `json:"equipmentType"`
	TapChangerType TapChangerType   `json:"tapChangerType"`
	Steps          []TapChangerStep `json:"steps"`
}

// LegacyTapChangerStep is a step as embedded in the legacy bundle. It has no position:
// the position is its index in the bundle.
type LegacyTapChangerStep struct {
	Rho   float64 `json:"rho"`
	R     float64 `json:"r"`
	X     float64 `json:"x"`
	G     float64 `json:"g"`
	B     float64 `json:"b"`
	Alpha float64 `json:"alpha,omitempty"`
}

// LegacyTapChanger is a tap changer row holding its steps as one embedded list.
type LegacyTapChanger struct {
	EquipmentID    string
	EquipmentType  EquipmentType
	TapChangerType TapChangerType
	Steps          []LegacyTapChangerStep
}
