package service

import "errors"

var (
	ErrNotFound  = errors.New("resource not found or access denied")
	ErrForbidden = errors.New("operation not permitted")
)
