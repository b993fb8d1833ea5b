package booking

import "strconv"

const studentDiscount = 0.2

// DisplayTotal mirrors the server's student discount for display only. The
// server recomputes the final price and may disagree (promo codes); this
// value is never sent back.
func DisplayTotal(basePrice float64, isStudent bool) float64 {
	if isStudent {
		return basePrice * (1 - studentDiscount)
	}
	return basePrice
}

// FormatPrice renders a price with the tenge suffix used across the UI.
func FormatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64) + " ₸"
}
