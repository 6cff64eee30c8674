// Package rewards maps a cart subtotal to the set of unlocked promotions.
// Everything here is a pure function of the subtotal; results are derived
// on demand and never stored.
package rewards

import (
	"fmt"

	"reelcraft-storefront/internal/domain"
)

// Milestone is one threshold-triggered promotion tier. Amounts are cents.
type Milestone struct {
	Threshold int64  `json:"thresholdCents"`
	Label     string `json:"label"`
	Sublabel  string `json:"sublabel"`
	Icon      string `json:"icon"`
}

// Milestones lists the three tiers in ascending threshold order. A higher
// tier replaces, not stacks with, the lower tier's discount.
var Milestones = []Milestone{
	{Threshold: 49900, Label: "₹499", Sublabel: "Free Ship + ₹50 OFF", Icon: "truck"},
	{Threshold: 99900, Label: "₹999", Sublabel: "₹100 OFF", Icon: "discount"},
	{Threshold: 149900, Label: "₹1499", Sublabel: "Free Jewelry Box", Icon: "gift"},
}

const (
	// ShippingCents is charged below the first milestone.
	ShippingCents int64 = 7500

	tier1Discount int64 = 5000
	tier2Discount int64 = 10000

	maxThreshold int64 = 149900
)

// Result is the promotion bundle unlocked by a subtotal.
type Result struct {
	DiscountCents int64 `json:"discountCents"`
	FreeShipping  bool  `json:"freeShipping"`
	FreeGift      bool  `json:"freeGift"`
	ShippingCents int64 `json:"shippingCents"`
	UnlockedTier  int   `json:"unlockedTier"`
}

// Calculate returns the promotions unlocked at subtotal. Boundaries are
// inclusive: a subtotal exactly at a threshold unlocks that tier.
func Calculate(subtotalCents int64) Result {
	switch {
	case subtotalCents >= Milestones[2].Threshold:
		return Result{DiscountCents: tier2Discount, FreeShipping: true, FreeGift: true, UnlockedTier: 3}
	case subtotalCents >= Milestones[1].Threshold:
		return Result{DiscountCents: tier2Discount, FreeShipping: true, UnlockedTier: 2}
	case subtotalCents >= Milestones[0].Threshold:
		return Result{DiscountCents: tier1Discount, FreeShipping: true, UnlockedTier: 1}
	default:
		return Result{ShippingCents: ShippingCents}
	}
}

// UnlockedTier classifies subtotal into 0..3, agreeing with Calculate.
func UnlockedTier(subtotalCents int64) int {
	return Calculate(subtotalCents).UnlockedTier
}

// PayableTotal applies the unlocked discount and shipping to subtotal.
func PayableTotal(subtotalCents int64) int64 {
	r := Calculate(subtotalCents)
	return subtotalCents - r.DiscountCents + r.ShippingCents
}

// OnlineBonus returns the extra incentive for paying online, 5% of the
// discounted total rounded half-up to the nearest whole rupee. It applies
// only on the hosted-checkout path.
func OnlineBonus(discountedTotalCents int64) int64 {
	if discountedTotalCents <= 0 {
		return 0
	}
	rupees := (discountedTotalCents*5 + 5000) / 10000
	return rupees * 100
}

// DiscountCodeFor maps the unlocked tier to the platform discount code
// attached to cash-on-delivery orders. Empty below the first milestone.
func DiscountCodeFor(subtotalCents int64) string {
	switch UnlockedTier(subtotalCents) {
	case 0:
		return ""
	case 1:
		return "COD50"
	default:
		return "COD100"
	}
}

// ProgressMessage is the customer-facing nudge toward the next milestone.
// It must classify subtotals exactly as Calculate does.
func ProgressMessage(subtotalCents int64) string {
	switch {
	case subtotalCents <= 0:
		return "🛒 Add items worth ₹499 to unlock FREE Shipping + ₹50 OFF!"
	case subtotalCents < Milestones[0].Threshold:
		return fmt.Sprintf("🚚 Add %s more to unlock FREE Shipping + ₹50 OFF!", remaining(Milestones[0].Threshold, subtotalCents))
	case subtotalCents < Milestones[1].Threshold:
		return fmt.Sprintf("✅ Free Shipping + ₹50 OFF unlocked! Add %s more for ₹100 OFF! 💰", remaining(Milestones[1].Threshold, subtotalCents))
	case subtotalCents < Milestones[2].Threshold:
		return fmt.Sprintf("✅ ₹100 OFF unlocked! Add %s more for a FREE Jewelry Box worth ₹499! 🎁", remaining(Milestones[2].Threshold, subtotalCents))
	default:
		return "🎉 ALL 3 rewards unlocked! You're getting the best deal!"
	}
}

// ProgressPercent is progress toward the top milestone, capped at 100.
func ProgressPercent(subtotalCents int64) int {
	if subtotalCents >= maxThreshold {
		return 100
	}
	if subtotalCents <= 0 {
		return 0
	}
	return int(subtotalCents * 100 / maxThreshold)
}

func remaining(threshold, subtotal int64) string {
	// The storefront floors the subtotal to whole rupees before
	// computing the gap, so a partial rupee still counts toward it.
	return domain.FormatRupees(threshold - (subtotal/100)*100)
}
