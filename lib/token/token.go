package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// New generates a new token for the provided prefix. Tokens are used as
// unique identifiers for objects stored by the service as well as for
// request-scoped resources such as transactions.
func New(prefix string) string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return fmt.Sprintf("%s_%s", prefix, hex.EncodeToString(b))
}
