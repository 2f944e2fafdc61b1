// File: internal/events/publisher.go
package events

import (
	"context"

	"github.com/lafoken/withfy-backend-open/internal/domain/models"
)

// Publisher dispatches domain events to the event bus. Implementations must
// be safe for concurrent use by request handlers.
type Publisher interface {
	PublishUserRegistered(ctx context.Context, event models.UserRegisteredEvent) error
	PublishUserBanned(ctx context.Context, event models.UserBannedEvent) error
}
