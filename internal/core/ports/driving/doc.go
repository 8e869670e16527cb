// Package driving defines the inbound ports: the interfaces through which
// the CLI, MCP server, TUI, and any embedding application invoke the
// validation engine.
package driving
