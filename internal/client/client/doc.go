// Package client contains the platform access layer of bidscurator.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) covering
//     the reads and writes the curation needs: project lookup, sessions,
//     subjects, acquisitions, file info updates and file uploads.
//  2. A concrete REST implementation (see HTTPClient) that sends the API key
//     on every request and maps HTTP status codes to sentinel errors.
//  3. DryRunClient, a decorator that passes reads through and only logs
//     writes and uploads.
//  4. MemoryClient, an in-process platform holding containers in maps, used
//     to exercise services and commands without a server.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match with
// errors.Is: common.ErrorNotFound, ErrUnavailable, ErrUnauthorized,
// ErrBadResponse.
//
// Concurrency & Contexts
//
// All operations accept context.Context and honor cancellation/timeouts.
// HTTPClient is safe for concurrent use; MemoryClient is not.
package client
