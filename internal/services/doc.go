// Package services implements the business logic layer of the network store.
//
// Services sit between the HTTP handlers and the row stores of package store. The row
// stores read and write exactly the (network, variant) they are given; services add the
// variant semantics on top of them and run every logical operation in one transaction.
//
//	Handlers (HTTP endpoints)
//	    │
//	    ▼
//	Services Layer
//	    ├── NetworkService ───► Store, topology
//	    └── MigrationService ─► Store, migration.Engine, Scheduler
//
// # NetworkService
//
// Variants are copy-on-write snapshots of variant 0, the initial variant:
//
//	read (N, V, E):   row of E in V ──found──► return it
//	                      │ none
//	                      ▼
//	                  V == 0, or E tombstoned in V ──► not found
//	                      │ otherwise
//	                      ▼
//	                  row of E in 0
//
// Writes only touch V. Removing in V an equipment still carried by variant 0 records a
// tombstone in V; writing the equipment back in V clears it. The same fallback applies
// to limits and tap changer steps.
//
// Cloning a variant never copies variant 0 rows. A clone of variant 0 starts empty and
// reads through; a clone of another variant copies the rows, tombstones included, in
// which that variant diverges from variant 0.
//
// RemoveEquipment cascades: the node/breaker view of every voltage level the equipment
// leaves is walked by topology.Cleanup, and the switches and internal connections left
// dangling are removed in the same transaction. The returned events list the equipment,
// then the removed switches in discovery order.
//
// Limits and tap changer steps are readable in both their encodings while migrations are
// pending: flat limit rows are served as DEFAULT groups, legacy step bundles as positioned
// steps.
//
// # MigrationService
//
// MigrationService runs migration units on one variant, or on every variant of a network.
// Network-wide runs submit one invocation per variant to the scheduler and wait for all of
// them; failures are joined and do not cancel the other variants.
//
// Usage:
//
//	svc := services.NewMigrationService(st, migration.NewEngine(st), sched)
//	reports, err := svc.MigrateNetwork(ctx, migration.UnitTapChangerSteps, networkID)
//
// # Thread Safety
//
// Both services are stateless and hold a store reference; concurrency is handled by the
// database through transactions.
package services
