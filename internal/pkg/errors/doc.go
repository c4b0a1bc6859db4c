// Package errors provides the gateway's classified error type.
//
// Every failure a request can meet is one of three kinds:
//
//   - InvalidArgument: a required field is empty, a compound position is
//     malformed, or an identifier is out of range
//   - NotFound: the store returned an empty result for a query expected to
//     yield records
//   - StoreFailure: the store itself failed (connection, SQL error)
//
// # Usage
//
// Create errors using constructor functions:
//
//	return apperrors.InvalidArgument("proteinName is required")
//	return apperrors.StoreFailure("locate", err)
//
// Match on kind rather than on message text:
//
//	switch apperrors.KindOf(err) {
//	case apperrors.KindNotFound:
//	    // ...
//	}
package errors
