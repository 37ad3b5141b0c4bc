package domain

// PlatformPrice is one platform's price/availability entry on a canonical
// product. DeliveryTime comes from the static platform table.
type PlatformPrice struct {
	Platform     Platform `json:"platform"`
	Price        float64  `json:"price"`
	Available    bool     `json:"available"`
	DeliveryTime string   `json:"deliveryTime"`
}

// CanonicalProduct is a listing enriched with a price entry for every
// known platform. Prices always holds exactly one entry per platform,
// in canonical platform order; the entry for the listing's own platform
// is always real, never synthesized.
type CanonicalProduct struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Unit        string          `json:"unit"`
	Description string          `json:"description"`
	Prices      []PlatformPrice `json:"prices"`
}

// PriceFor returns the entry for the given platform
func (p *CanonicalProduct) PriceFor(platform Platform) (PlatformPrice, bool) {
	for _, entry := range p.Prices {
		if entry.Platform == platform {
			return entry, true
		}
	}
	return PlatformPrice{}, false
}
