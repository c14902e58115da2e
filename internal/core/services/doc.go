// Package services holds the application logic behind the driving ports.
//
// Transitions are the pure state changes (derive, add, update, delete,
// annotate). Workspace applies them to a driven.SessionStore one at a
// time, and the Annotation, Codebook and Settings services expose them
// to the CLI, MCP and TUI adapters.
package services
