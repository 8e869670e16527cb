// Package driven defines the outbound ports: interfaces the core services
// depend on, implemented by adapters (parser, corpus scanner, stores).
package driven
