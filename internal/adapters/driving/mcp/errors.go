// Package mcp provides an MCP (Model Context Protocol) server adapter for
// doclint. It lets AI assistants validate a documentation corpus and query
// its cross-references without shelling out to the CLI.
package mcp

import "errors"

// ErrMissingValidator is returned when the validator port is not provided.
var ErrMissingValidator = errors.New("mcp: validator is required")
