package domain

// Platform identifies one of the delivery platforms being compared
type Platform string

const (
	PlatformBlinkit   Platform = "blinkit"
	PlatformZepto     Platform = "zepto"
	PlatformInstamart Platform = "instamart"
	PlatformBigBasket Platform = "bigbasket"
	PlatformJioMart   Platform = "jiomart"
)

// PlatformInfo carries the static metadata for a platform.
// DeliveryTime is a fixed display string, never computed.
type PlatformInfo struct {
	ID           Platform `json:"id"`
	DisplayName  string   `json:"displayName"`
	DeliveryTime string   `json:"deliveryTime"`
}

// platformTable defines the canonical platform ordering used everywhere
// a per-platform sequence is produced
var platformTable = []PlatformInfo{
	{ID: PlatformBlinkit, DisplayName: "Blinkit", DeliveryTime: "10 mins"},
	{ID: PlatformZepto, DisplayName: "Zepto", DeliveryTime: "10 mins"},
	{ID: PlatformInstamart, DisplayName: "Swiggy Instamart", DeliveryTime: "15-20 mins"},
	{ID: PlatformBigBasket, DisplayName: "BigBasket", DeliveryTime: "2-3 hrs"},
	{ID: PlatformJioMart, DisplayName: "JioMart", DeliveryTime: "1-2 days"},
}

// AllPlatforms returns the known platforms in canonical order
func AllPlatforms() []PlatformInfo {
	out := make([]PlatformInfo, len(platformTable))
	copy(out, platformTable)
	return out
}

// PlatformByID looks up the static metadata for a platform
func PlatformByID(id Platform) (PlatformInfo, bool) {
	for _, p := range platformTable {
		if p.ID == id {
			return p, true
		}
	}
	return PlatformInfo{}, false
}

// KnownPlatform reports whether id is one of the fixed platforms
func KnownPlatform(id Platform) bool {
	_, ok := PlatformByID(id)
	return ok
}
