//go:build mgdebug

package bitmg

// debugChecks enables precondition assertions on every board mutation.
// Build with -tags mgdebug to turn them on.
const debugChecks = true
