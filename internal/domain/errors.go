package domain

import "errors"

var (
	// ErrInvalidListing is returned when a raw listing is structurally malformed
	ErrInvalidListing = errors.New("invalid listing")

	// ErrProductNotFound is returned when no canonical product exists for an id
	ErrProductNotFound = errors.New("product not found")

	// ErrListingNotFound is returned when a raw listing id is unknown
	ErrListingNotFound = errors.New("listing not found")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")
)
