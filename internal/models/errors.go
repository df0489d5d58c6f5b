package models

import "errors"

// ErrLabNotFound is returned when a lab id does not resolve to a configured lab.
var ErrLabNotFound = errors.New("lab not found")
