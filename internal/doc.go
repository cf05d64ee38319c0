// Package internal holds the InternLink server internals.
//
// The internal tree is organized by responsibility:
// - api: HTTP handlers, middleware, problem responses, and routing
// - domain: business logic (accounts, internships, applications, stats)
// - storage: repository interface with postgres and sqlite implementations
// - uploads: resume file storage
// - auth, config, metrics: shared infrastructure
//
// Code in internal/ is not meant for external import.
package internal
