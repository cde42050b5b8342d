// Package modules contains all self-contained application features.
//
// Each subdirectory is a module that implements the `module.Module` interface.
// Modules are listed in `internal/app/modules.go`; the server registers them,
// then boots them with the public, /app and /api route groups.
package modules
