package plan

// Features lists what a tier unlocks on the public page.
type Features struct {
	ShowAddress bool `json:"show_address"`
	ShowPixKey  bool `json:"show_pix_key"`
	MaxServices int  `json:"max_services"` // 0 = unlimited
	Coupons     bool `json:"coupons"`
	CustomTheme bool `json:"custom_theme"`
}

// DefaultFreeCatalogLimit caps the public catalog of a free page.
const DefaultFreeCatalogLimit = 5

func FeaturesFor(p Plan, freeCatalogLimit int) Features {
	if p == Pro {
		return Features{
			ShowAddress: true,
			ShowPixKey:  true,
			Coupons:     true,
			CustomTheme: true,
		}
	}

	if freeCatalogLimit <= 0 {
		freeCatalogLimit = DefaultFreeCatalogLimit
	}
	return Features{MaxServices: freeCatalogLimit}
}
