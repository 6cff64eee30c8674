package httpserver

import (
	"net/http"

	"reelcraft-storefront/internal/domain"
	"reelcraft-storefront/internal/rewards"

	"github.com/gin-gonic/gin"
)

// rewardsHandler previews the promotions unlocked at a given subtotal,
// taken as a decimal string like the platform transmits amounts.
func rewardsHandler(c *gin.Context) {
	subtotal := int64(0)
	if raw := c.Query("subtotal"); raw != "" {
		cents, err := domain.ParseCents(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "subtotal must be a decimal string"})
			return
		}
		subtotal = cents
	}
	result := rewards.Calculate(subtotal)
	c.JSON(http.StatusOK, gin.H{
		"rewards":         result,
		"milestones":      rewards.Milestones,
		"discountCode":    rewards.DiscountCodeFor(subtotal),
		"progressMessage": rewards.ProgressMessage(subtotal),
		"progressPercent": rewards.ProgressPercent(subtotal),
		"payableCents":    rewards.PayableTotal(subtotal),
	})
}
