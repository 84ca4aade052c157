package collector

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fivetwenty-io/cfv2-client/internal/constants"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfv2"
)

// Kind names a usage event stream.
type Kind string

// Usage event kinds.
const (
	KindApp     Kind = "app"
	KindService Kind = "service"
)

// ParseKind maps a configured name onto a Kind.
func ParseKind(name string) (Kind, error) {
	switch Kind(name) {
	case KindApp, KindService:
		return Kind(name), nil
	default:
		return "", fmt.Errorf("%w: %q", constants.ErrUnknownEventKind, name)
	}
}

// TableName is the Postgres table events of this kind are stored in.
func (k Kind) TableName() string {
	return string(k) + "_usage_events"
}

// Event is a usage event of either kind as it travels from source to sink.
type Event struct {
	GUID      string
	CreatedAt time.Time
	// Entity is the entity block alone, used for filtering.
	Entity json.RawMessage
	// Raw is the complete resource, metadata included.
	Raw json.RawMessage
}

func newEvent[E any](resource cfv2.Resource[E]) (Event, error) {
	createdAt, err := time.Parse(time.RFC3339, resource.Metadata.CreatedAt)
	if err != nil {
		return Event{}, fmt.Errorf("event %s has invalid created_at: %w", resource.Metadata.ID, err)
	}

	entity, err := json.Marshal(resource.Entity)
	if err != nil {
		return Event{}, fmt.Errorf("encoding event %s: %w", resource.Metadata.ID, err)
	}

	raw, err := json.Marshal(resource)
	if err != nil {
		return Event{}, fmt.Errorf("encoding event %s: %w", resource.Metadata.ID, err)
	}

	return Event{
		GUID:      resource.Metadata.ID,
		CreatedAt: createdAt,
		Entity:    entity,
		Raw:       raw,
	}, nil
}
