package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound        = errors.New("entity not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrAlreadyExists   = errors.New("entity already exists")
	ErrAuth            = errors.New("authentication failed")
	ErrUploadRejected  = errors.New("upload rejected")
	ErrNotReady        = errors.New("result not ready")
	ErrUnavailable     = errors.New("artifact not available")
	ErrNoSession       = errors.New("no active session")
)
