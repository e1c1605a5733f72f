// Package store implements the data access layer of the network store.
//
// Every row is scoped by (network_uuid, variant_num). The store reads and writes one
// variant at a time; the fallback to the initial variant is resolved by the services.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                         Store (facade)                          │
//	├─────────────────────────────────────────────────────────────────┤
//	│  VariantStore │ EquipmentStore │ TombstoneStore                 │
//	│  LimitsStore  │ TapChangerStore │ OverrideStore                 │
//	├─────────────────────────────────────────────────────────────────┤
//	│              Statement catalog (statements.go)                  │
//	├─────────────────────────────────────────────────────────────────┤
//	│     QueryInterceptor → *sql.DB or *sql.Tx (DuckDB, PostgreSQL)  │
//	└─────────────────────────────────────────────────────────────────┘
//
// # Tables
//
// Created by the schema migrations (internal/store/migrations/sql/):
//
//	┌──────────────────────────┬───────────────────────────────────────────┐
//	│  Table                   │  Purpose                                  │
//	├──────────────────────────┼───────────────────────────────────────────┤
//	│  variant                 │  Variants of a network, 0 is the initial  │
//	│  equipment               │  Attribute bundle and connection points   │
//	│  tombstone               │  Equipment removed in a derived variant   │
//	│  attribute_override      │  Attribute sets owned by a derived variant│
//	│  operational_limits_group│  Limits groups (current encoding)         │
//	│  temporary_limit         │  Flat temporary limits (legacy)           │
//	│  permanent_limit         │  Flat permanent limits (legacy)           │
//	│  tap_changer_step        │  One row per step (current encoding)      │
//	│  tap_changer             │  JSON bundle of steps (legacy)            │
//	│  schema_migrations       │  Applied schema versions                  │
//	└──────────────────────────┴───────────────────────────────────────────┘
//
// # Statement Catalog
//
// Select, SelectIn, Upsert, InsertBatch, Delete, DeleteIn and CopyToVariant build
// statements with squirrel. A Statement keeps, next to its SQL, the name of the column
// bound to each placeholder so Bind turns a Values map into positional arguments:
//
//	stmt, _ := store.DeleteIn("equipment", "equipment_id", 2)
//	args, _ := stmt.Bind(store.Values{
//	    "network_uuid": id,
//	    "variant_num":  1,
//	    "equipment_id": store.List([]string{"B1", "LOAD"}),
//	})
//
// Batched statements never carry more than maxInListSize values in one IN list;
// longer inputs are split in chunks.
//
// # Transactions
//
// WithTx runs a function on a Store bound to one *sql.Tx. It commits when the function
// returns nil and rolls back otherwise. Inside the function the sub-stores of the
// transactional Store must be used, never the ones of the outer Store.
//
// # Variant Copy
//
// CopyVariantRows duplicates every row of a source variant, tombstones and overrides included, into a
// target variant with INSERT ... SELECT, one statement per table. DeleteVariantRows and
// DeleteNetwork remove the rows of every table.
//
// # QueryInterceptor
//
// All database operations are wrapped with a QueryInterceptor that debug logs the
// statement and its arguments.
package store
