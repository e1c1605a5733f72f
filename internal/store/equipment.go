package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/gridstore/network-store/internal/models"
	srvErrors "github.com/gridstore/network-store/pkg/errors"
)

// EquipmentStore persists equipment attribute rows. It reads and writes exactly the
// variant it is given: falling back to the initial variant is the caller's business.
type EquipmentStore struct {
	db            QueryInterceptor
	maxInListSize int
}

func NewEquipmentStore(db QueryInterceptor, maxInListSize int) *EquipmentStore {
	return &EquipmentStore{db: db, maxInListSize: maxInListSize}
}

// Get returns the row of the equipment in the variant or a ResourceNotFoundError.
func (s *EquipmentStore) Get(ctx context.Context, networkID uuid.UUID, variantNum int, equipmentID string) (*models.Equipment, error) {
	stmt, err := Select(tableEquipment, equipmentColumns, []string{colEquipmentID})
	if err != nil {
		return nil, err
	}
	values := scope(networkID, variantNum)
	values[colEquipmentID] = equipmentID

	args, err := stmt.Bind(values)
	if err != nil {
		return nil, err
	}
	eq, err := scanEquipment(s.db.QueryRowContext(ctx, stmt.SQL, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, srvErrors.NewEquipmentNotFoundError(equipmentID)
	}
	if err != nil {
		return nil, err
	}
	return eq, nil
}

// Upsert creates or overwrites the row of the equipment in the variant.
func (s *EquipmentStore) Upsert(ctx context.Context, networkID uuid.UUID, variantNum int, eq models.Equipment) error {
	stmt, err := Upsert(tableEquipment, []string{colEquipmentID}, equipmentColumns[1:])
	if err != nil {
		return err
	}
	values := scope(networkID, variantNum)
	for k, v := range equipmentValues(eq) {
		values[k] = v
	}
	_, err = s.db.exec(ctx, stmt, values)
	return err
}

// Delete removes the rows of the given equipment in the variant and returns how many rows went away.
func (s *EquipmentStore) Delete(ctx context.Context, networkID uuid.UUID, variantNum int, equipmentIDs []string) (int64, error) {
	var total int64
	for _, ids := range chunks(equipmentIDs, s.maxInListSize) {
		stmt, err := DeleteIn(tableEquipment, colEquipmentID, len(ids))
		if err != nil {
			return total, err
		}
		values := scope(networkID, variantNum)
		values[colEquipmentID] = List(ids)
		n, err := s.db.exec(ctx, stmt, values)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// ListByVoltageLevel returns the rows of the variant connected to the voltage level on either side,
// ordered by equipment id.
func (s *EquipmentStore) ListByVoltageLevel(ctx context.Context, networkID uuid.UUID, variantNum int, voltageLevelID string) ([]models.Equipment, error) {
	seen := make(map[string]struct{})
	var result []models.Equipment
	for _, col := range []string{colVoltageLevelID, colVoltageLevelID2} {
		stmt, err := Select(tableEquipment, equipmentColumns, []string{col}, colEquipmentID)
		if err != nil {
			return nil, err
		}
		values := scope(networkID, variantNum)
		values[col] = voltageLevelID

		rows, err := s.db.query(ctx, stmt, values)
		if err != nil {
			return nil, err
		}
		list, err := scanEquipments(rows)
		if err != nil {
			return nil, err
		}
		for _, eq := range list {
			if _, ok := seen[eq.ID]; ok {
				continue
			}
			seen[eq.ID] = struct{}{}
			result = append(result, eq)
		}
	}
	return result, nil
}

func equipmentValues(eq models.Equipment) Values {
	values := Values{
		colEquipmentID:     eq.ID,
		colEquipmentType:   string(eq.Type),
		colKind:            nullString(eq.Kind),
		colVoltageLevelID:  nil,
		colNode1:           nil,
		colVoltageLevelID2: nil,
		colNode2:           nil,
		colAttributes:      nil,
	}
	if len(eq.Connection) > 0 {
		values[colVoltageLevelID] = eq.Connection[0].VoltageLevelID
		values[colNode1] = eq.Connection[0].Node
	}
	if len(eq.Connection) > 1 {
		values[colVoltageLevelID2] = eq.Connection[1].VoltageLevelID
		values[colNode2] = eq.Connection[1].Node
	}
	if len(eq.Attributes) > 0 {
		values[colAttributes] = string(eq.Attributes)
	}
	return values
}

func scanEquipment(row scanner) (*models.Equipment, error) {
	var (
		eq             models.Equipment
		eqType         string
		kind, vl1, vl2 sql.NullString
		node1, node2   sql.NullInt64
		attributes     sql.NullString
	)
	if err := row.Scan(&eq.ID, &eqType, &kind, &vl1, &node1, &vl2, &node2, &attributes); err != nil {
		return nil, err
	}
	eq.Type = models.EquipmentType(eqType)
	eq.Kind = kind.String
	if vl1.Valid && node1.Valid {
		eq.Connection = append(eq.Connection, models.ConnectionPoint{VoltageLevelID: vl1.String, Node: int(node1.Int64)})
	}
	if vl2.Valid && node2.Valid {
		eq.Connection = append(eq.Connection, models.ConnectionPoint{VoltageLevelID: vl2.String, Node: int(node2.Int64)})
	}
	if attributes.Valid {
		if !json.Valid([]byte(attributes.String)) {
			return nil, fmt.Errorf("equipment %s: stored attributes are not valid JSON", eq.ID)
		}
		eq.Attributes = json.RawMessage(attributes.String)
	}
	return &eq, nil
}

func scanEquipments(rows *sql.Rows) ([]models.Equipment, error) {
	defer rows.Close()
	var list []models.Equipment
	for rows.Next() {
		eq, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *eq)
	}
	return list, rows.Err()
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
