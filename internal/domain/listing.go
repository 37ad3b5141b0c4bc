package domain

import "fmt"

// RawListing is one platform's catalog entry for a product, as captured
// by the scrapers. Listings are immutable inputs to the engine.
type RawListing struct {
	ID       string   `json:"id" db:"id"`
	Name     string   `json:"name" db:"name"`
	Category string   `json:"category" db:"category"`
	Price    float64  `json:"price" db:"price"`
	Platform Platform `json:"platform" db:"platform"`
	Unit     string   `json:"unit,omitempty" db:"unit"`
}

// Validate checks the structural fields required for enrichment.
// A zero or absent price is accepted (documented degenerate case).
func (l RawListing) Validate() error {
	switch {
	case l.ID == "":
		return fmt.Errorf("%w: missing id", ErrInvalidListing)
	case l.Name == "":
		return fmt.Errorf("%w: missing name (listing %s)", ErrInvalidListing, l.ID)
	case l.Category == "":
		return fmt.Errorf("%w: missing category (listing %s)", ErrInvalidListing, l.ID)
	case !KnownPlatform(l.Platform):
		return fmt.Errorf("%w: unknown platform %q (listing %s)", ErrInvalidListing, l.Platform, l.ID)
	}
	return nil
}

// ProductDescriptor is the normalized representation of a listing name.
// Derived on demand, never persisted. Absent quantity/type are empty
// strings, not errors.
type ProductDescriptor struct {
	Tokens      []string `json:"tokens"`
	Quantity    string   `json:"quantity,omitempty"`
	ProductType string   `json:"productType,omitempty"`
}

// MatchCandidate pairs a candidate listing from another platform with its
// similarity score against the source listing
type MatchCandidate struct {
	Listing    RawListing `json:"listing"`
	Similarity float64    `json:"similarity"`
}
