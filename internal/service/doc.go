// Package service contains the application use cases. It enforces the
// ownership and validation rules on top of the repositories defined in
// internal/store and never depends on a concrete storage implementation.
//
// Service methods return sentinel errors (ErrTaskNotFound, domain validation
// errors) for expected conditions and wrap anything unexpected in a
// service-specific error type, so callers can use errors.Is and errors.As and
// the API layer can map results to HTTP status codes.
package service
