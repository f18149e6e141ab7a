// README: User profile mirrored from the identity provider, plus push tokens.
package user

import (
	"time"

	"packpal/internal/types"
)

type User struct {
	ID         types.ID
	FirstName  string
	LastName   string
	Email      string
	PushTokens []string
	CreatedAt  time.Time
}
