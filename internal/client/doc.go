// Package client implements the request executor: the component that turns
// typed API calls into correctly authenticated, retried, and classified
// network exchanges against the Lumen backend.
//
// The Executor owns the per-call retry state machine. Each logical call gets
// a bounded retry budget; recoverable faults (429, 5xx, transient transport
// errors) back off linearly per fault class and retry sequentially, a first
// 401 triggers exactly one credential refresh followed by one retry, and
// every other failure surfaces immediately as a classified apierror. Each
// attempt materializes a fresh wire request so no retry reuses a stale
// Authorization header.
//
// The API type layers the domain operations on top: the sign-in exchange,
// enhancement create/get/list, and the health probe.
package client
