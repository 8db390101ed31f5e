// Package repository implements the data access layer over MySQL. This file
// defines sentinel errors shared across repositories so handlers can map
// failures onto HTTP statuses without inspecting driver error strings.
package repository

import "errors"

// ErrNotFound is returned when a record does not exist or has been
// soft-deleted. Handlers translate this into HTTP 404.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateUsername is returned when a user insert collides on the
// username unique index. Handlers translate this into HTTP 409.
var ErrDuplicateUsername = errors.New("username already exists")

// ErrDuplicateEmail is returned when a user insert collides on the email
// unique index. Handlers translate this into HTTP 409.
var ErrDuplicateEmail = errors.New("email already exists")

// ErrDuplicateTag is returned when a tag insert collides on the
// case-insensitive name index. Handlers translate this into HTTP 409.
var ErrDuplicateTag = errors.New("tag already exists")
