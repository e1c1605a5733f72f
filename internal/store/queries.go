package store

// Tables
const (
	tableVariant                = "variant"
	tableEquipment              = "equipment"
	tableTombstone              = "tombstone"
	tableTemporaryLimit         = "temporary_limit"
	tablePermanentLimit         = "permanent_limit"
	tableOperationalLimitsGroup = "operational_limits_group"
	tableTapChanger             = "tap_changer"
	tableTapChangerStep         = "tap_changer_step"
	tableAttributeOverride      = "attribute_override"
)

// Columns
const (
	colVariantID        = "variant_id"
	colSourceVariantNum = "source_variant_num"
	colCreatedAt        = "created_at"

	colEquipmentID     = "equipment_id"
	colEquipmentType   = "equipment_type"
	colKind            = "kind"
	colVoltageLevelID  = "voltage_level_id"
	colNode1           = "node1"
	colVoltageLevelID2 = "voltage_level_id2"
	colNode2           = "node2"
	colAttributes      = "attributes"

	colSide               = "side"
	colName               = "name"
	colAcceptableDuration = "acceptable_duration"
	colValue              = "value"
	colGroupID            = "group_id"
	colPermanentLimit     = "permanent_limit"
	colTemporaryLimits    = "temporary_limits"

	colTapChangerType = "tap_changer_type"
	colSteps          = "steps"
	colStepPosition   = "step_position"
	colRho            = "rho"
	colR              = "r"
	colX              = "x"
	colG              = "g"
	colB              = "b"
	colAlpha          = "alpha"

	colAttributeSet = "attribute_set"
)

var (
	equipmentColumns = []string{
		colEquipmentID, colEquipmentType, colKind,
		colVoltageLevelID, colNode1, colVoltageLevelID2, colNode2,
		colAttributes,
	}
	tombstoneColumns      = []string{colEquipmentID}
	overrideColumns       = []string{colEquipmentID, colAttributeSet}
	temporaryLimitColumns = []string{colEquipmentID, colEquipmentType, colSide, colName, colAcceptableDuration, colValue}
	permanentLimitColumns = []string{colEquipmentID, colEquipmentType, colSide, colValue}
	limitsGroupKey        = []string{colEquipmentID, colSide, colGroupID}
	limitsGroupColumns    = []string{colEquipmentID, colEquipmentType, colSide, colGroupID, colPermanentLimit, colTemporaryLimits}
	tapChangerColumns     = []string{colEquipmentID, colEquipmentType, colTapChangerType, colSteps}
	tapChangerStepColumns = []string{
		colEquipmentID, colEquipmentType, colTapChangerType, colStepPosition,
		colRho, colR, colX, colG, colB, colAlpha,
	}
)

// variantScopedTables lists every table whose rows belong to one (network, variant).
var variantScopedTables = []string{
	tableEquipment,
	tableTombstone,
	tableTemporaryLimit,
	tablePermanentLimit,
	tableOperationalLimitsGroup,
	tableTapChanger,
	tableTapChangerStep,
	tableAttributeOverride,
}

// Network level queries. They span every variant of one network, never several networks.
const (
	queryListVariants = `
		SELECT variant_num, variant_id, source_variant_num, created_at
		FROM variant WHERE network_uuid = $1
		ORDER BY variant_num`

	queryInsertVariant = `
		INSERT INTO variant (network_uuid, variant_num, variant_id, source_variant_num)
		VALUES ($1, $2, $3, $4)`

	queryGetVariant = `
		SELECT variant_num, variant_id, source_variant_num, created_at
		FROM variant WHERE network_uuid = $1 AND variant_num = $2`

	queryCountVariantID = `
		SELECT COUNT(*) FROM variant WHERE network_uuid = $1 AND variant_id = $2`

	queryDeleteVariant = `DELETE FROM variant WHERE network_uuid = $1 AND variant_num = $2`

	queryDeleteNetworkRows = `DELETE FROM %s WHERE network_uuid = $1`
)
