// Package errors provides the structured error type shared by the facade,
// its codecs and its configuration layer. Every failure carries a
// machine-readable ErrorCode so callers can tell validation, transport and
// codec failures apart without string matching.
package errors
