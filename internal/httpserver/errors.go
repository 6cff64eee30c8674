package httpserver

import (
	"errors"
	"net/http"

	"reelcraft-storefront/internal/domain"

	"github.com/gin-gonic/gin"
)

// writeError maps the error taxonomy onto HTTP statuses. Every failure
// carries one human-readable message; nothing is swallowed.
func writeError(c *gin.Context, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message, "field": ve.Field})
	case errors.Is(err, domain.ErrCartExpired):
		// The local mirror already self-healed; the client should
		// refetch the now-empty cart.
		c.JSON(http.StatusGone, gin.H{"error": "your cart expired and was reset"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		var te *domain.TransportError
		var re *domain.RemoteError
		switch {
		case errors.As(err, &te):
			c.JSON(http.StatusBadGateway, gin.H{"error": "store is unreachable, please try again"})
		case errors.As(err, &re):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": re.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
	}
}
