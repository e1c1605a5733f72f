package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gridstore/network-store/internal/models"
	"github.com/gridstore/network-store/internal/store"
	"github.com/gridstore/network-store/internal/topology"
	srvErrors "github.com/gridstore/network-store/pkg/errors"
)

// NetworkService resolves the variants of networks on top of the row stores. Every
// operation runs in one transaction.
type NetworkService struct {
	store *store.Store
}

func NewNetworkService(st *store.Store) *NetworkService {
	return &NetworkService{store: st}
}

// CreateNetwork registers the network with its initial variant.
func (s *NetworkService) CreateNetwork(ctx context.Context, networkID uuid.UUID) (*models.Variant, error) {
	var created *models.Variant
	err := s.store.WithTx(ctx, func(tx *store.Store) error {
		_, err := tx.Variant().Get(ctx, networkID, models.InitialVariantNum)
		if err == nil {
			return srvErrors.NewResourceExistsError("network", networkID.String())
		}
		if !srvErrors.IsResourceNotFoundError(err) {
			return err
		}

		if err := tx.Variant().Create(ctx, models.Variant{
			NetworkID: networkID,
			Num:       models.InitialVariantNum,
			ID:        models.InitialVariantID,
		}); err != nil {
			return err
		}
		created, err = tx.Variant().Get(ctx, networkID, models.InitialVariantNum)
		return err
	})
	if err != nil {
		return nil, err
	}

	zap.S().Named("network_service").Infow("network created", "network_id", networkID)
	return created, nil
}

func (s *NetworkService) DeleteNetwork(ctx context.Context, networkID uuid.UUID) error {
	return s.store.WithTx(ctx, func(tx *store.Store) error {
		if _, err := s.variant(ctx, tx, networkID, models.InitialVariantNum); err != nil {
			return err
		}
		return tx.DeleteNetwork(ctx, networkID)
	})
}

func (s *NetworkService) ListVariants(ctx context.Context, networkID uuid.UUID) ([]models.Variant, error) {
	variants, err := s.store.Variant().List(ctx, networkID)
	if err != nil {
		return nil, err
	}
	if len(variants) == 0 {
		return nil, srvErrors.NewNetworkNotFoundError(networkID.String())
	}
	return variants, nil
}

// CloneVariant registers targetNum as a copy of sourceNum. Nothing is copied from the
// initial variant: the clone reads through to it. Cloning any other variant copies the
// rows in which the source diverges from the initial variant, tombstones included.
func (s *NetworkService) CloneVariant(ctx context.Context, networkID uuid.UUID, sourceNum, targetNum int, variantID string) (*models.Variant, error) {
	if targetNum <= models.InitialVariantNum {
		return nil, srvErrors.NewInvalidArgumentError("target variant number must be positive, got %d", targetNum)
	}
	if variantID == "" {
		return nil, srvErrors.NewInvalidArgumentError("variant id is required")
	}

	var created *models.Variant
	err := s.store.WithTx(ctx, func(tx *store.Store) error {
		if _, err := s.variant(ctx, tx, networkID, sourceNum); err != nil {
			return err
		}

		_, err := tx.Variant().Get(ctx, networkID, targetNum)
		if err == nil {
			return srvErrors.NewResourceExistsError("variant", variantKey(networkID, targetNum))
		}
		if !srvErrors.IsResourceNotFoundError(err) {
			return err
		}

		exists, err := tx.Variant().IDExists(ctx, networkID, variantID)
		if err != nil {
			return err
		}
		if exists {
			return srvErrors.NewResourceExistsError("variant", variantID)
		}

		source := sourceNum
		if err := tx.Variant().Create(ctx, models.Variant{
			NetworkID:        networkID,
			Num:              targetNum,
			ID:               variantID,
			SourceVariantNum: &source,
		}); err != nil {
			return err
		}

		if sourceNum != models.InitialVariantNum {
			if err := tx.CopyVariantRows(ctx, networkID, sourceNum, targetNum); err != nil {
				return err
			}
		}

		created, err = tx.Variant().Get(ctx, networkID, targetNum)
		return err
	})
	if err != nil {
		return nil, err
	}

	zap.S().Named("network_service").Infow("variant cloned", "network_id", networkID, "source", sourceNum, "target", targetNum, "variant_id", variantID)
	return created, nil
}

// DeleteVariant removes the variant and every row scoped to it. The initial variant
// can only go away with its network.
func (s *NetworkService) DeleteVariant(ctx context.Context, networkID uuid.UUID, variantNum int) error {
	if variantNum == models.InitialVariantNum {
		return srvErrors.NewInvalidOperationError("the initial variant of network %s cannot be deleted", networkID)
	}
	return s.store.WithTx(ctx, func(tx *store.Store) error {
		if _, err := s.variant(ctx, tx, networkID, variantNum); err != nil {
			return err
		}
		if err := tx.DeleteVariantRows(ctx, networkID, variantNum); err != nil {
			return err
		}
		return tx.Variant().Delete(ctx, networkID, variantNum)
	})
}

// GetAttributes returns the equipment as seen from the variant: its own row, or else the row
// of the initial variant unless the equipment was removed in the variant. An empty
// equipmentType matches any type.
func (s *NetworkService) GetAttributes(ctx context.Context, networkID uuid.UUID, variantNum int, equipmentID string, equipmentType models.EquipmentType) (*models.Equipment, error) {
	var eq *models.Equipment
	err := s.store.WithTx(ctx, func(tx *store.Store) error {
		if _, err := s.variant(ctx, tx, networkID, variantNum); err != nil {
			return err
		}
		var err error
		eq, err = s.resolve(ctx, tx, networkID, variantNum, equipmentID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if equipmentType != "" && eq.Type != equipmentType {
		return nil, srvErrors.NewEquipmentNotFoundError(equipmentID)
	}
	return eq, nil
}

// PutAttributes writes the equipment row in the variant only.
func (s *NetworkService) PutAttributes(ctx context.Context, networkID uuid.UUID, variantNum int, eq models.Equipment) error {
	if eq.ID == "" {
		return srvErrors.NewInvalidArgumentError("equipment id is required")
	}
	if eq.Type == "" {
		return srvErrors.NewInvalidArgumentError("equipment %s: type is required", eq.ID)
	}
	if len(eq.Attributes) > 0 && !json.Valid(eq.Attributes) {
		return srvErrors.NewInvalidArgumentError("equipment %s: attributes are not valid JSON", eq.ID)
	}
	if eq.Type.IsEdge() && len(eq.Connection) != 2 {
		return srvErrors.NewInvalidArgumentError("equipment %s: a %s connects exactly two nodes", eq.ID, eq.Type)
	}

	return s.store.WithTx(ctx, func(tx *store.Store) error {
		if _, err := s.variant(ctx, tx, networkID, variantNum); err != nil {
			return err
		}
		if err := tx.Equipment().Upsert(ctx, networkID, variantNum, eq); err != nil {
			return err
		}
		if variantNum == models.InitialVariantNum {
			return nil
		}
		return tx.Tombstone().Remove(ctx, networkID, variantNum, []string{eq.ID})
	})
}

// RemoveEquipment deletes the equipment from the variant together with the switches and
// internal connections its removal leaves dangling. It returns one event for the equipment
// followed by one per removed switch, in discovery order.
func (s *NetworkService) RemoveEquipment(ctx context.Context, networkID uuid.UUID, variantNum int, equipmentID string) ([]models.RemovalEvent, error) {
	var events []models.RemovalEvent
	err := s.store.WithTx(ctx, func(tx *store.Store) error {
		if _, err := s.variant(ctx, tx, networkID, variantNum); err != nil {
			return err
		}
		eq, err := s.resolve(ctx, tx, networkID, variantNum, equipmentID)
		if err != nil {
			return err
		}

		events = append(events, models.RemovalEvent{EquipmentID: eq.ID, EquipmentType: eq.Type})
		removed := []string{eq.ID}

		if !eq.Type.IsEdge() {
			for _, vl := range vacatedVoltageLevels(*eq) {
				equipment, err := s.voltageLevelEquipment(ctx, tx, networkID, variantNum, vl.id, eq.ID)
				if err != nil {
					return err
				}
				view := topology.BuildNodeBreakerView(vl.id, equipment)
				for _, r := range topology.Cleanup(view, vl.nodes) {
					removed = append(removed, r.EdgeID)
					if !r.Kind.IsSwitch() {
						continue
					}
					events = append(events, models.RemovalEvent{
						EquipmentID:   r.EdgeID,
						EquipmentType: models.EquipmentTypeSwitch,
						Position:      len(events),
					})
				}
			}
		}

		return s.deleteRows(ctx, tx, networkID, variantNum, removed)
	})
	if err != nil {
		return nil, err
	}

	zap.S().Named("network_service").Debugw("equipment removed", "network_id", networkID, "variant_num", variantNum, "equipment_id", equipmentID, "events", len(events))
	return events, nil
}

func (s *NetworkService) deleteRows(ctx context.Context, tx *store.Store, networkID uuid.UUID, variantNum int, ids []string) error {
	if _, err := tx.Equipment().Delete(ctx, networkID, variantNum, ids); err != nil {
		return err
	}
	if _, err := tx.Limits().DeleteGroups(ctx, networkID, variantNum, ids); err != nil {
		return err
	}
	if _, err := tx.Limits().DeleteLegacyLimits(ctx, networkID, variantNum, ids...); err != nil {
		return err
	}
	if _, err := tx.TapChanger().DeleteSteps(ctx, networkID, variantNum, ids); err != nil {
		return err
	}
	if _, err := tx.TapChanger().DeleteLegacy(ctx, networkID, variantNum, ids...); err != nil {
		return err
	}
	if _, err := tx.Override().Delete(ctx, networkID, variantNum, ids); err != nil {
		return err
	}
	if variantNum == models.InitialVariantNum {
		return nil
	}
	return tx.Tombstone().Add(ctx, networkID, variantNum, ids)
}

type voltageLevelNodes struct {
	id    string
	nodes []int
}

func vacatedVoltageLevels(eq models.Equipment) []voltageLevelNodes {
	var out []voltageLevelNodes
	index := make(map[string]int)
	for _, cp := range eq.Connection {
		i, ok := index[cp.VoltageLevelID]
		if !ok {
			i = len(out)
			index[cp.VoltageLevelID] = i
			out = append(out, voltageLevelNodes{id: cp.VoltageLevelID})
		}
		out[i].nodes = append(out[i].nodes, cp.Node)
	}
	return out
}

// voltageLevelEquipment returns the equipment of the voltage level as seen from the variant,
// without the equipment being removed.
func (s *NetworkService) voltageLevelEquipment(ctx context.Context, tx *store.Store, networkID uuid.UUID, variantNum int, voltageLevelID, excluded string) ([]models.Equipment, error) {
	own, err := tx.Equipment().ListByVoltageLevel(ctx, networkID, variantNum, voltageLevelID)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(own))
	result := make([]models.Equipment, 0, len(own))
	for _, eq := range own {
		seen[eq.ID] = struct{}{}
		if eq.ID != excluded {
			result = append(result, eq)
		}
	}
	if variantNum == models.InitialVariantNum {
		return result, nil
	}

	tombstones, err := tx.Tombstone().List(ctx, networkID, variantNum)
	if err != nil {
		return nil, err
	}
	base, err := tx.Equipment().ListByVoltageLevel(ctx, networkID, models.InitialVariantNum, voltageLevelID)
	if err != nil {
		return nil, err
	}
	for _, eq := range base {
		if _, ok := seen[eq.ID]; ok || eq.ID == excluded {
			continue
		}
		if _, ok := tombstones[eq.ID]; ok {
			continue
		}
		// the variant may have moved the equipment to another voltage level
		_, err := tx.Equipment().Get(ctx, networkID, variantNum, eq.ID)
		if err == nil {
			continue
		}
		if !srvErrors.IsResourceNotFoundError(err) {
			return nil, err
		}
		result = append(result, eq)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *NetworkService) resolve(ctx context.Context, tx *store.Store, networkID uuid.UUID, variantNum int, equipmentID string) (*models.Equipment, error) {
	eq, found, err := fallback(ctx, tx, networkID, variantNum, equipmentID, "", func(v int) (*models.Equipment, bool, error) {
		eq, err := tx.Equipment().Get(ctx, networkID, v, equipmentID)
		if srvErrors.IsResourceNotFoundError(err) {
			return nil, false, nil
		}
		return eq, err == nil, err
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, srvErrors.NewEquipmentNotFoundError(equipmentID)
	}
	return eq, nil
}

func (s *NetworkService) variant(ctx context.Context, tx *store.Store, networkID uuid.UUID, variantNum int) (*models.Variant, error) {
	v, err := tx.Variant().Get(ctx, networkID, variantNum)
	if err != nil && srvErrors.IsResourceNotFoundError(err) && variantNum == models.InitialVariantNum {
		return nil, srvErrors.NewNetworkNotFoundError(networkID.String())
	}
	return v, err
}

// fallback reads a value of the equipment in the variant, then in the initial variant
// when the variant has none, has not removed the equipment and does not own attributeSet.
// An empty attributeSet reads the equipment itself.
func fallback[T any](ctx context.Context, tx *store.Store, networkID uuid.UUID, variantNum int, equipmentID, attributeSet string, read func(variantNum int) (T, bool, error)) (T, bool, error) {
	v, found, err := read(variantNum)
	if err != nil || found || variantNum == models.InitialVariantNum {
		return v, found, err
	}

	var zero T
	removed, err := tx.Tombstone().Has(ctx, networkID, variantNum, equipmentID)
	if err != nil || removed {
		return zero, false, err
	}
	if attributeSet != "" {
		owned, err := tx.Override().Has(ctx, networkID, variantNum, equipmentID, attributeSet)
		if err != nil || owned {
			return zero, false, err
		}
	}
	return read(models.InitialVariantNum)
}

// own marks attributeSet of the equipment as owned by a derived variant, so that an empty
// write is not hidden by the rows of the initial variant.
func own(ctx context.Context, tx *store.Store, networkID uuid.UUID, variantNum int, equipmentID, attributeSet string) error {
	if variantNum == models.InitialVariantNum {
		return nil
	}
	return tx.Override().Set(ctx, networkID, variantNum, equipmentID, attributeSet)
}

func variantKey(networkID uuid.UUID, variantNum int) string {
	return fmt.Sprintf("%s/%d", networkID, variantNum)
}
