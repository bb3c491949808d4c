package database

import "errors"

var (
	// ErrResourceExists is returned when an attempt is made to save
	// a resource with a URL that is already in the catalog.
	ErrResourceExists = errors.New("resource exists")
	// ErrResourceNotFound is returned when an operation targets
	// a resource id that doesn't exist.
	ErrResourceNotFound = errors.New("resource not found")
)
