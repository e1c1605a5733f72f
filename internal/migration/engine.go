package migration

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gridstore/network-store/internal/store"
	srvErrors "github.com/gridstore/network-store/pkg/errors"
)

// Unit rewrites the persisted encoding of one kind of attribute for one (network, variant).
// Migrate only reads and writes rows of that scope. It must write nothing when no row
// of the old encoding is left.
type Unit interface {
	Name() string
	Version() int
	Migrate(ctx context.Context, tx *store.Store, networkID uuid.UUID, variantNum int) (Report, error)
}

// Report describes one unit invocation.
type Report struct {
	Unit        string    `json:"unit"`
	NetworkID   uuid.UUID `json:"networkId"`
	VariantNum  int       `json:"variantNum"`
	RowsRead    int       `json:"rowsRead"`
	RowsWritten int       `json:"rowsWritten"`
	RowsDeleted int       `json:"rowsDeleted"`
}

// Noop tells whether the scope had nothing left to migrate.
func (r Report) Noop() bool {
	return r.RowsRead == 0
}

type Engine struct {
	store *store.Store
	units []Unit
}

// NewEngine returns an engine running units, or the built-in units when none is given.
func NewEngine(s *store.Store, units ...Unit) *Engine {
	if len(units) == 0 {
		units = Units()
	}
	sorted := append([]Unit{}, units...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Version() < sorted[j].Version() })
	return &Engine{store: s, units: sorted}
}

// Units returns the units of the engine in version order.
func (e *Engine) Units() []Unit {
	return e.units
}

func (e *Engine) Unit(name string) (Unit, error) {
	for _, u := range e.units {
		if u.Name() == name {
			return u, nil
		}
	}
	return nil, srvErrors.NewResourceNotFoundError("migration unit", name)
}

// Run executes the named unit on one variant in one transaction.
func (e *Engine) Run(ctx context.Context, name string, networkID uuid.UUID, variantNum int) (Report, error) {
	u, err := e.Unit(name)
	if err != nil {
		return Report{}, err
	}
	return e.run(ctx, u, networkID, variantNum)
}

// RunAll executes every unit on one variant, in version order, stopping at the first failure.
func (e *Engine) RunAll(ctx context.Context, networkID uuid.UUID, variantNum int) ([]Report, error) {
	reports := make([]Report, 0, len(e.units))
	for _, u := range e.units {
		r, err := e.run(ctx, u, networkID, variantNum)
		if err != nil {
			return reports, err
		}
		reports = append(reports, r)
	}
	return reports, nil
}

func (e *Engine) run(ctx context.Context, u Unit, networkID uuid.UUID, variantNum int) (Report, error) {
	log := zap.S().Named("migration").With("unit", u.Name(), "network_id", networkID, "variant_num", variantNum)

	var report Report
	err := e.store.WithTx(ctx, func(tx *store.Store) error {
		if _, err := tx.Variant().Get(ctx, networkID, variantNum); err != nil {
			return err
		}
		r, err := u.Migrate(ctx, tx, networkID, variantNum)
		if err != nil {
			return err
		}
		report = r
		return nil
	})
	if err != nil {
		log.Errorw("migration failed", "error", err)
		return Report{}, &MigrationError{Unit: u.Name(), NetworkID: networkID, VariantNum: variantNum, Err: err}
	}

	if report.Noop() {
		log.Debug("nothing to migrate")
	} else {
		log.Infow("migration done", "rows_read", report.RowsRead, "rows_written", report.RowsWritten, "rows_deleted", report.RowsDeleted)
	}
	return report, nil
}
