// Package mcp provides an MCP (Model Context Protocol) server adapter for
// methodosync. It lets AI assistants ingest coded notes, inspect and edit
// the codebook, and record annotations.
package mcp

import "errors"

// ErrMissingCodebookService is returned when the codebook service is not provided.
var ErrMissingCodebookService = errors.New("mcp: codebook service is required")

// errNoAnnotationService is returned by annotation tools when the port is absent.
var errNoAnnotationService = errors.New("mcp: annotation service not configured")
