package tool

import (
	"fmt"

	"github.com/google/uuid"
)

func GenerateUUIDV7() string {
	return uuid.Must(uuid.NewV7()).String()
}

// GenerateTransactionID returns a short client-facing transaction id of the
// form tx_<12 hex chars>.
func GenerateTransactionID() string {
	u := uuid.New()
	return fmt.Sprintf("tx_%x", u[:6])
}

// GenerateUsername returns a provider-prefixed username such as
// google_1f2e3d4c.
func GenerateUsername(provider string) string {
	u := uuid.New()
	return fmt.Sprintf("%s_%x", provider, u[:4])
}
