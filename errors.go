package particles

import (
	"fmt"
	"reflect"
)

type LockedStorageError struct{}

func (e LockedStorageError) Error() string {
	return "storage is currently borrowed by an open cursor"
}

type EmptyBundleError struct{}

func (e EmptyBundleError) Error() string {
	return "entities need at least one component"
}

// SchemaConflictError reports a component-kind set that cannot map onto a single group.
type SchemaConflictError struct {
	Component Component
	Reason    string
}

func (e SchemaConflictError) Error() string {
	if e.Component == nil {
		return fmt.Sprintf("schema conflict: %s", e.Reason)
	}
	return fmt.Sprintf("schema conflict on %s: %s", kindName(e.Component), e.Reason)
}

type EntityNotFoundError struct {
	ID int
}

func (e EntityNotFoundError) Error() string {
	return fmt.Sprintf("entity %d does not exist", e.ID)
}

type BorrowConflictError struct {
	Exclusive bool
}

func (e BorrowConflictError) Error() string {
	if e.Exclusive {
		return "exclusive iteration overlaps a live iteration on the same components"
	}
	return "iteration overlaps a live exclusive iteration on the same components"
}

type MissingResourceError struct {
	Type reflect.Type
}

func (e MissingResourceError) Error() string {
	return fmt.Sprintf("resource %v was never inserted", e.Type)
}

type StageContractError struct {
	Stage     string
	Component string
}

func (e StageContractError) Error() string {
	return fmt.Sprintf("stage %q requires component %s which the world does not register", e.Stage, e.Component)
}

type ReentrantExecutionError struct{}

func (e ReentrantExecutionError) Error() string {
	return "pipeline is already executing"
}

type CacheCapacityError struct {
	Capacity int
}

func (e CacheCapacityError) Error() string {
	return fmt.Sprintf("cache at maximum capacity (%d)", e.Capacity)
}

type DuplicateKeyError struct {
	Key string
}

func (e DuplicateKeyError) Error() string {
	return fmt.Sprintf("key %q is already registered", e.Key)
}
