// Package service contains the business logic layer of the annotation gateway.
//
// GatewayService validates request arguments and turns them into a single
// QueryStore call. Validation failures never reach the store.
//
// # Errors
//
// Failures are reported as *errors.AppError:
//   - InvalidArgument for malformed ids, positions and regions
//   - NotFound when a lookup matched no rows
//   - StoreFailure when the store returned an error
//
// QueryStore is defined here and implemented by the repository packages.
//
// # Thread Safety
//
// GatewayService is safe for concurrent use when its store is.
package service
