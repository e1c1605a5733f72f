package models

import (
	"math"
	"sort"
)

const (
	// DefaultLimitsGroupID is the group synthesized for limits that had no group identity.
	DefaultLimitsGroupID = "DEFAULT"
	// UnlimitedAcceptableDuration marks a temporary limit without duration bound.
	UnlimitedAcceptableDuration = math.MaxInt32
)

// TemporaryLimit is a limit value acceptable during AcceptableDuration seconds.
type TemporaryLimit struct {
	Name               string  `json:"name"`
	AcceptableDuration int     `json:"acceptableDuration"`
	Value              float64 `json:"value"`
}

// OperationalLimitsGroup holds the limits of one side of an equipment under a group identity.
type OperationalLimitsGroup struct {
	EquipmentID     string           `json:"equipmentId"`
	EquipmentType   EquipmentType    `json:"equipmentType"`
	Side            int              `json:"side"`
	GroupID         string           `json:"groupId"`
	PermanentLimit  *float64         `json:"permanentLimit,omitempty"`
	TemporaryLimits []TemporaryLimit `json:"temporaryLimits,omitempty"`
}

// SortTemporaryLimits orders limits by descending acceptable duration, the unlimited one first.
// Limits with the same duration are ordered by name.
func SortTemporaryLimits(limits []TemporaryLimit) {
	sort.SliceStable(limits, func(i, j int) bool {
		if limits[i].AcceptableDuration != limits[j].AcceptableDuration {
			return limits[i].AcceptableDuration > limits[j].AcceptableDuration
		}
		return limits[i].Name < limits[j].Name
	})
}

// LegacyTemporaryLimit is a flat temporary limit row, written before limits had groups.
type LegacyTemporaryLimit struct {
	EquipmentID        string
	EquipmentType      EquipmentType
	Side               int
	Name               string
	AcceptableDuration int
	Value              float64
}

// LegacyPermanentLimit is a flat permanent limit row, written before limits had groups.
type LegacyPermanentLimit struct {
	EquipmentID   string
	EquipmentType EquipmentType
	Side          int
	Value         float64
}
