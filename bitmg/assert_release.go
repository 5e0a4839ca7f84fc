//go:build !mgdebug

package bitmg

const debugChecks = false
