// README: In-app notification record persisted per recipient.
package notification

import (
	"time"

	"packpal/internal/types"
)

type Notification struct {
	ID          types.ID
	RecipientID types.ID
	Title       string
	Body        string
	Data        map[string]string
	CreatedAt   time.Time
	Read        bool
}
