package migration

import (
	"fmt"

	"github.com/google/uuid"
)

// MigrationError is returned when a unit fails on one (network, variant) scope.
// The scope is left as it was before the invocation.
type MigrationError struct {
	Unit       string
	NetworkID  uuid.UUID
	VariantNum int
	Err        error
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("migration %s failed on network %s variant %d: %v", e.Unit, e.NetworkID, e.VariantNum, e.Err)
}

func (e *MigrationError) Unwrap() error {
	return e.Err
}
