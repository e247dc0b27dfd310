// README: Identifier type shared by requests and candidates.
package types

import (
	"strings"

	"github.com/google/uuid"
)

type ID string

// NewID returns a random 32-char hex identifier.
func NewID() ID {
	return ID(strings.ReplaceAll(uuid.NewString(), "-", ""))
}
