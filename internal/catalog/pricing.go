package catalog

import "time"

// EffectivePrice resolves the price pair shown on the storefront.
//
// Inside the sale window (open-ended bounds count as always-open) with a
// configured original price above the base price, the base price is the
// sale price and the original is shown struck through. Outside the
// window the higher of the two values is the only price shown, so a
// stale sale configuration never under-displays.
func EffectivePrice(price float64, originalPrice *float64, saleStart, saleEnd *time.Time, now time.Time) (float64, *float64) {
	if originalPrice == nil {
		return price, nil
	}

	original := *originalPrice

	if saleActive(saleStart, saleEnd, now) && original > price {
		return price, &original
	}

	if original > price {
		return original, nil
	}

	return price, nil
}

func saleActive(saleStart, saleEnd *time.Time, now time.Time) bool {
	if saleStart != nil && now.Before(*saleStart) {
		return false
	}

	if saleEnd != nil && now.After(*saleEnd) {
		return false
	}

	return true
}
