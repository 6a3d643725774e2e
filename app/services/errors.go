package services

import "errors"

// ErrValidation marks a request payload that failed field validation.
var ErrValidation = errors.New("validation failed")
