// Package netcheck maintains an advisory network reachability signal for the
// request executor.
//
// A background loop probes the backend host on an interval and broadcasts
// state transitions to subscribers. The signal only accelerates the obvious
// offline case; it is never authoritative, and a real dispatch attempt
// remains the ground truth for reachability.
package netcheck
