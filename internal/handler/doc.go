// Package handler contains the HTTP handlers of the annotation gateway.
//
// Handlers are responsible for:
//   - Reading path, query and body arguments
//   - Calling the gateway service
//   - Logging failed requests
//   - Writing responses through WriteResponse
//
// # Responses
//
// Every response, including failures and framework errors, carries the
// fixed CORS headers. Gateway routes always answer 200: list routes write
// an empty array on failure and the insert route writes {"status":"FAIL"}.
//
// # Thread Safety
//
// All handlers are safe for concurrent use.
package handler
