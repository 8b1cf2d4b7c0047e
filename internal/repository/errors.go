package repository

import (
	"errors"
	"fmt"
)

// ErrNotFound is wrapped by StoreError when a row does not exist.
var ErrNotFound = errors.New("not found")

// StoreError reports a failed store round trip. Errors are not classified
// further: network failures, constraint violations and missing rows all
// surface as a StoreError.
type StoreError struct {
	Op    string
	Table string
	Err   error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Table, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func storeErr(op, table string, err error) error {
	if err == nil {
		return nil
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Table: table, Err: err}
}

func notFound(table, id string) error {
	return &StoreError{Op: "select", Table: table, Err: fmt.Errorf("%s %q %w", singular(table), id, ErrNotFound)}
}

func singular(table string) string {
	switch table {
	case "clients":
		return "client"
	case "projects":
		return "project"
	case "tasks":
		return "task"
	}
	return table
}

// IsStoreError reports whether err came from a store round trip.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
