// Package validator holds the gateway's request validation.
//
// Struct rules are declared with go-playground/validator tags on the domain
// types; the per-route functions in request.go split compound positions,
// apply those rules and return apperrors.InvalidArgument on failure.
//
// All functions are pure: no I/O and no shared mutable state besides the
// package-level validator instance, which is safe for concurrent use.
package validator
