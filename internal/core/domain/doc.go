// Package domain contains the core data model for documentation validation:
// parsed files, terminology entries, cross-references, and validation
// findings. Types here carry no I/O; parsing and validation live in the
// services and parser packages.
package domain
