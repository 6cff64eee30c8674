package shopify

import (
	"strings"

	"reelcraft-storefront/internal/domain"
)

// userError is the validation error shape every mutating storefront
// response carries.
type userError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

// isCartNotFound detects the invalidated-cart sentinel. The platform
// reports an expired or deleted cart only through the wording of its
// user-error messages, never a dedicated code, so the match lives here at
// the adapter boundary and nowhere else. Fixtures of recorded responses
// pin the wording in errors_test.go.
func isCartNotFound(errs []userError) bool {
	for _, e := range errs {
		msg := strings.ToLower(e.Message)
		if strings.Contains(msg, "cart not found") || strings.Contains(msg, "does not exist") {
			return true
		}
	}
	return false
}

func userErrorsToRemote(op string, errs []userError) error {
	if len(errs) == 0 {
		return nil
	}
	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		messages = append(messages, e.Message)
	}
	return &domain.RemoteError{Op: op, Messages: messages, CartNotFound: isCartNotFound(errs)}
}

func remoteErr(op string, messages []string) error {
	return &domain.RemoteError{Op: op, Messages: messages}
}

func transportErr(op string, err error) error {
	return &domain.TransportError{Op: op, Err: err}
}
