package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/gridstore/network-store/internal/models"
)

// TapChangerStore persists tap changer steps, one row per step, and the legacy rows
// holding all steps of a tap changer in one embedded list.
type TapChangerStore struct {
	db            QueryInterceptor
	maxInListSize int
}

func NewTapChangerStore(db QueryInterceptor, maxInListSize int) *TapChangerStore {
	return &TapChangerStore{db: db, maxInListSize: maxInListSize}
}

// Steps returns the steps of one tap changer in the variant, ordered by position.
func (s *TapChangerStore) Steps(ctx context.Context, networkID uuid.UUID, variantNum int, equipmentID string, tcType models.TapChangerType) ([]models.TapChangerStep, error) {
	stmt, err := Select(tableTapChangerStep, tapChangerStepColumns[3:], []string{colEquipmentID, colTapChangerType}, colStepPosition)
	if err != nil {
		return nil, err
	}
	values := scope(networkID, variantNum)
	values[colEquipmentID] = equipmentID
	values[colTapChangerType] = string(tcType)

	rows, err := s.db.query(ctx, stmt, values)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var steps []models.TapChangerStep
	for rows.Next() {
		var (
			st    models.TapChangerStep
			alpha sql.NullFloat64
		)
		if err := rows.Scan(&st.Position, &st.Rho, &st.R, &st.X, &st.G, &st.B, &alpha); err != nil {
			return nil, err
		}
		st.Alpha = alpha.Float64
		steps = append(steps, st)
	}
	return steps, rows.Err()
}

// InsertSteps writes step rows for every tap changer given.
func (s *TapChangerStore) InsertSteps(ctx context.Context, networkID uuid.UUID, variantNum int, tapChangers []models.TapChangerSteps) error {
	type flatStep struct {
		tc   *models.TapChangerSteps
		step models.TapChangerStep
	}
	var flat []flatStep
	for i := range tapChangers {
		for _, st := range tapChangers[i].Steps {
			flat = append(flat, flatStep{tc: &tapChangers[i], step: st})
		}
	}

	for _, batch := range chunks(flat, s.maxInListSize) {
		stmt, err := InsertBatch(tableTapChangerStep, tapChangerStepColumns, len(batch))
		if err != nil {
			return err
		}
		cols := make(map[string][]any, len(tapChangerStepColumns))
		for _, f := range batch {
			cols[colEquipmentID] = append(cols[colEquipmentID], f.tc.EquipmentID)
			cols[colEquipmentType] = append(cols[colEquipmentType], string(f.tc.EquipmentType))
			cols[colTapChangerType] = append(cols[colTapChangerType], string(f.tc.TapChangerType))
			cols[colStepPosition] = append(cols[colStepPosition], f.step.Position)
			cols[colRho] = append(cols[colRho], f.step.Rho)
			cols[colR] = append(cols[colR], f.step.R)
			cols[colX] = append(cols[colX], f.step.X)
			cols[colG] = append(cols[colG], f.step.G)
			cols[colB] = append(cols[colB], f.step.B)
			cols[colAlpha] = append(cols[colAlpha], f.step.Alpha)
		}
		values := scope(networkID, variantNum)
		for k, v := range cols {
			values[k] = v
		}
		if _, err := s.db.exec(ctx, stmt, values); err != nil {
			return fmt.Errorf("failed to insert tap changer steps: %w", err)
		}
	}
	return nil
}

// ReplaceSteps overwrites the steps of one tap changer in the variant.
func (s *TapChangerStore) ReplaceSteps(ctx context.Context, networkID uuid.UUID, variantNum int, tc models.TapChangerSteps) error {
	stmt, err := Delete(tableTapChangerStep, colEquipmentID, colTapChangerType)
	if err != nil {
		return err
	}
	values := scope(networkID, variantNum)
	values[colEquipmentID] = tc.EquipmentID
	values[colTapChangerType] = string(tc.TapChangerType)
	if _, err := s.db.exec(ctx, stmt, values); err != nil {
		return err
	}
	if len(tc.Steps) == 0 {
		return nil
	}
	return s.InsertSteps(ctx, networkID, variantNum, []models.TapChangerSteps{tc})
}

// DeleteSteps removes the step rows of the equipment in the variant.
func (s *TapChangerStore) DeleteSteps(ctx context.Context, networkID uuid.UUID, variantNum int, equipmentIDs []string) (int64, error) {
	if len(equipmentIDs) == 0 {
		return 0, nil
	}
	return s.db.deleteChunked(ctx, tableTapChangerStep, scope(networkID, variantNum), colEquipmentID, equipmentIDs, s.maxInListSize)
}

// Legacy returns the legacy tap changer rows of the variant, ordered by equipment and type.
// Without equipment ids, every row of the variant is returned.
func (s *TapChangerStore) Legacy(ctx context.Context, networkID uuid.UUID, variantNum int, equipmentIDs ...string) ([]models.LegacyTapChanger, error) {
	var list []models.LegacyTapChanger
	err := s.db.selectChunked(ctx, tableTapChanger, tapChangerColumns, scope(networkID, variantNum),
		colEquipmentID, equipmentIDs, s.maxInListSize, []string{colEquipmentID, colTapChangerType},
		func(row scanner) error {
			var (
				tc             models.LegacyTapChanger
				eqType, tcType string
				steps          sql.NullString
			)
			if err := row.Scan(&tc.EquipmentID, &eqType, &tcType, &steps); err != nil {
				return err
			}
			tc.EquipmentType = models.EquipmentType(eqType)
			tc.TapChangerType = models.TapChangerType(tcType)
			if steps.Valid && steps.String != "" {
				if err := json.Unmarshal([]byte(steps.String), &tc.Steps); err != nil {
					return fmt.Errorf("equipment %s: failed to decode tap changer steps: %w", tc.EquipmentID, err)
				}
			}
			list = append(list, tc)
			return nil
		})
	return list, err
}

// InsertLegacy writes legacy tap changer rows. Only data written by earlier releases and
// test fixtures carry this shape.
func (s *TapChangerStore) InsertLegacy(ctx context.Context, networkID uuid.UUID, variantNum int, tapChangers []models.LegacyTapChanger) error {
	stmt, err := Upsert(tableTapChanger, []string{colEquipmentID, colTapChangerType}, []string{colEquipmentType, colSteps})
	if err != nil {
		return err
	}
	for _, tc := range tapChangers {
		b, err := json.Marshal(tc.Steps)
		if err != nil {
			return err
		}
		values := scope(networkID, variantNum)
		values[colEquipmentID] = tc.EquipmentID
		values[colTapChangerType] = string(tc.TapChangerType)
		values[colEquipmentType] = string(tc.EquipmentType)
		values[colSteps] = string(b)
		if _, err := s.db.exec(ctx, stmt, values); err != nil {
			return err
		}
	}
	return nil
}

// DeleteLegacy removes legacy tap changer rows of the variant, all of them without equipment ids.
func (s *TapChangerStore) DeleteLegacy(ctx context.Context, networkID uuid.UUID, variantNum int, equipmentIDs ...string) (int64, error) {
	return s.db.deleteChunked(ctx, tableTapChanger, scope(networkID, variantNum), colEquipmentID, equipmentIDs, s.maxInListSize)
}
