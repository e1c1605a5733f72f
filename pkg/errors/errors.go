package errors

import (
	"errors"
	"fmt"
)

// InvalidArgumentError is returned when a caller passes an argument that can never be valid.
// It denotes a programming error and must not be retried.
type InvalidArgumentError struct {
	msg string
}

func NewInvalidArgumentError(format string, args ...any) *InvalidArgumentError {
	return &InvalidArgumentError{msg: fmt.Sprintf(format, args...)}
}

func (e *InvalidArgumentError) Error() string {
	return "invalid argument: " + e.msg
}

func IsInvalidArgumentError(err error) bool {
	var e *InvalidArgumentError
	return errors.As(err, &e)
}

// ResourceNotFoundError is returned when a network, variant or equipment does not exist.
type ResourceNotFoundError struct {
	resource string
	id       string
}

func NewResourceNotFoundError(resource, id string) *ResourceNotFoundError {
	return &ResourceNotFoundError{resource: resource, id: id}
}

func NewNetworkNotFoundError(networkID string) *ResourceNotFoundError {
	return NewResourceNotFoundError("network", networkID)
}

func NewVariantNotFoundError(networkID string, variantNum int) *ResourceNotFoundError {
	return NewResourceNotFoundError("variant", fmt.Sprintf("%s/%d", networkID, variantNum))
}

func NewEquipmentNotFoundError(equipmentID string) *ResourceNotFoundError {
	return NewResourceNotFoundError("equipment", equipmentID)
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.resource, e.id)
}

func (e *ResourceNotFoundError) Resource() string {
	return e.resource
}

func IsResourceNotFoundError(err error) bool {
	var e *ResourceNotFoundError
	return errors.As(err, &e)
}

// InvalidOperationError is returned when an action is structurally disallowed,
// like deleting the initial variant.
type InvalidOperationError struct {
	msg string
}

func NewInvalidOperationError(format string, args ...any) *InvalidOperationError {
	return &InvalidOperationError{msg: fmt.Sprintf(format, args...)}
}

func (e *InvalidOperationError) Error() string {
	return "invalid operation: " + e.msg
}

func IsInvalidOperationError(err error) bool {
	var e *InvalidOperationError
	return errors.As(err, &e)
}

// ResourceExistsError is returned when creating a network or variant that is already registered.
type ResourceExistsError struct {
	resource string
	id       string
}

func NewResourceExistsError(resource, id string) *ResourceExistsError {
	return &ResourceExistsError{resource: resource, id: id}
}

func (e *ResourceExistsError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.resource, e.id)
}

func IsResourceExistsError(err error) bool {
	var e *ResourceExistsError
	return errors.As(err, &e)
}
