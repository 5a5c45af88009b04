package providers

import (
	"context"

	"github.com/havenlink/communitymatch/internal/domain/entities"
)

// EventBus defines publish/subscribe for recommendation events.
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.RecommendationEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.RecommendationEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

// Event channel names.
const (
	// EventChannelRecommendations carries all recommendation-run events
	EventChannelRecommendations = "recommendations:updates"

	// eventChannelPatientPrefix prefixes per-patient channels
	eventChannelPatientPrefix = "recommendations:patient:"
)

// GetPatientChannel returns the channel name for one patient's events.
func GetPatientChannel(patientID string) string {
	return eventChannelPatientPrefix + patientID
}
