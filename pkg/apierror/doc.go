// Package apierror defines the error taxonomy shared by the Lumen client
// subsystem. Every failed exchange is classified into exactly one Kind, and
// the Kind decides the propagation policy: recoverable kinds (RateLimited,
// ServerError, ServiceUnavailable, Transport) are retried internally by the
// request executor and only surface once the retry budget is exhausted, while
// terminal kinds surface to the caller immediately. Once an error has
// surfaced, the budget is spent: Recoverable describes the fault class for
// the executor's loop, not a retry hint for callers.
//
// Callers inspect errors with the usual chain helpers:
//
//	if apiErr := apierror.As(err); apiErr != nil {
//	    switch apiErr.Kind {
//	    case apierror.KindUnauthorized:
//	        // prompt re-authentication
//	    case apierror.KindBadRequest:
//	        // apiErr.Validation carries per-field detail when available
//	    }
//	}
//
// The Error type supports errors.As and errors.Is through Unwrap, so wrapped
// causes (net errors, json errors) remain inspectable.
package apierror
