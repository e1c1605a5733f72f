package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gridstore/network-store/internal/migration"
	"github.com/gridstore/network-store/internal/store"
	srvErrors "github.com/gridstore/network-store/pkg/errors"
	"github.com/gridstore/network-store/pkg/scheduler"
)

// MigrationService runs migration units on demand. Network-wide runs fan out one
// invocation per variant over the scheduler.
type MigrationService struct {
	store     *store.Store
	engine    *migration.Engine
	scheduler *scheduler.Scheduler
}

func NewMigrationService(st *store.Store, engine *migration.Engine, s *scheduler.Scheduler) *MigrationService {
	return &MigrationService{store: st, engine: engine, scheduler: s}
}

func (m *MigrationService) Units() []migration.Unit {
	return m.engine.Units()
}

// Migrate runs unit on one variant.
func (m *MigrationService) Migrate(ctx context.Context, unit string, networkID uuid.UUID, variantNum int) (migration.Report, error) {
	return m.engine.Run(ctx, unit, networkID, variantNum)
}

// MigrateNetwork runs unit on every variant of the network. Variants run concurrently; a
// failed variant does not stop the others. The reports of the variants that succeeded are
// returned, in variant order, along with the joined failures.
func (m *MigrationService) MigrateNetwork(ctx context.Context, unit string, networkID uuid.UUID) ([]migration.Report, error) {
	if _, err := m.engine.Unit(unit); err != nil {
		return nil, err
	}
	variants, err := m.store.Variant().List(ctx, networkID)
	if err != nil {
		return nil, err
	}
	if len(variants) == 0 {
		return nil, srvErrors.NewNetworkNotFoundError(networkID.String())
	}

	futures := make([]*scheduler.Future[scheduler.Result[migration.Report]], 0, len(variants))
	for _, v := range variants {
		futures = append(futures, scheduler.Submit(m.scheduler, func(ctx context.Context) (migration.Report, error) {
			return m.engine.Run(ctx, unit, networkID, v.Num)
		}))
	}

	var (
		reports []migration.Report
		errs    []error
	)
	for _, f := range futures {
		r := scheduler.Wait(ctx, f)
		if r.Err != nil {
			errs = append(errs, r.Err)
			continue
		}
		reports = append(reports, r.Data)
	}

	zap.S().Named("migration_service").Infow("network migrated", "unit", unit, "network_id", networkID, "variants", len(variants), "failed", len(errs))
	return reports, errors.Join(errs...)
}
