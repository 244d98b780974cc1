package domain

import "errors"

// Session errors. Commit against a token in any of these states is rejected
// as a no-op, never retried into a duplicate creation.
var (
	ErrSessionNotFound = errors.New("preview session not found")
	ErrSessionExpired  = errors.New("preview session expired")
	ErrSessionConsumed = errors.New("preview session already committed")
)

// ErrDataSource marks failures of the underlying forecast/supplier data
// source. Fatal for the request that hit it, surfaced as an error rather
// than an empty result.
var ErrDataSource = errors.New("data source unavailable")
