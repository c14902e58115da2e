package tui

import "errors"

// ErrMissingCodebookService is returned when the codebook service is not provided.
var ErrMissingCodebookService = errors.New("tui: codebook service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
