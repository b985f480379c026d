package domain

// MenuItem is one published row of the menu sheet. The four price tiers are
// independent and optional; a nil tier means the item is not offered at that
// size, which is not the same as a price of zero.
type MenuItem struct {
	Section       string   `json:"section"`
	Category      string   `json:"category"`
	ItemName      string   `json:"itemName"`
	Description   string   `json:"description"`
	PriceRegular  *float64 `json:"priceRegular,omitempty"`
	PriceSmall    *float64 `json:"priceSmall,omitempty"`
	PriceMedium   *float64 `json:"priceMedium,omitempty"`
	PriceLarge    *float64 `json:"priceLarge,omitempty"`
	Status        string   `json:"status"`
	IsActive      bool     `json:"isActive"`
	BestSeller    bool     `json:"bestSeller"`
	ChefSpecial   bool     `json:"chefSpecial"`
	TodaysSpecial bool     `json:"todaysSpecial"`
}

// Published reports whether the item belongs in the served menu. Status and
// IsActive are two independently edited sheet columns; both must agree. A
// disagreement is filtered out, never repaired, so the sheet stays the single
// place to diagnose a missing item.
func (m MenuItem) Published() bool {
	return m.Status == "Active" && m.IsActive
}

type TierCode string

const (
	TierRegular TierCode = "R"
	TierSmall   TierCode = "S"
	TierMedium  TierCode = "M"
	TierLarge   TierCode = "L"
)

func (t TierCode) Label() string {
	switch t {
	case TierRegular:
		return "Regular"
	case TierSmall:
		return "Small"
	case TierMedium:
		return "Medium"
	case TierLarge:
		return "Large"
	default:
		return "Unknown"
	}
}

// PriceTier is one displayable price of an item.
type PriceTier struct {
	Code   TierCode `json:"code"`
	Label  string   `json:"label"`
	Amount float64  `json:"amount"`
}

// PriceTiers returns the item's displayable prices in R, S, M, L order.
// Tiers that are absent, zero or negative carry no valid price and are
// skipped.
func (m MenuItem) PriceTiers() []PriceTier {
	tiers := make([]PriceTier, 0, 4)
	for _, t := range []struct {
		code  TierCode
		value *float64
	}{
		{TierRegular, m.PriceRegular},
		{TierSmall, m.PriceSmall},
		{TierMedium, m.PriceMedium},
		{TierLarge, m.PriceLarge},
	} {
		if t.value == nil || *t.value <= 0 {
			continue
		}
		tiers = append(tiers, PriceTier{Code: t.code, Label: t.code.Label(), Amount: *t.value})
	}
	return tiers
}
