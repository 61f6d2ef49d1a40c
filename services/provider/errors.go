package provider

import "errors"

// ErrDuplicateOffering is returned when two offerings share an ID.
var ErrDuplicateOffering = errors.New("duplicate offering id")
