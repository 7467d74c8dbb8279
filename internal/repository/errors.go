// Package repository defines error values that are reused across
// multiple repositories. These sentinel values allow higher layers
// such as services and handlers to distinguish between failure
// scenarios with errors.Is instead of inspecting driver errors.
package repository

import "errors"

// ErrNotFound is returned when a referenced user, film, genre, MPA
// rating or director does not exist. Handlers translate this into
// an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when an insert or update would violate
// the unique email constraint on the users table. Handlers translate
// this into an HTTP 409 response.
var ErrEmailExists = errors.New("email already exists")
