package models

import "errors"

// ErrConflict is returned by repositories when a write violates a unique constraint.
var ErrConflict = errors.New("unique constraint violation")
