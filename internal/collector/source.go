package collector

import (
	"context"
	"time"

	"github.com/fivetwenty-io/cfv2-client/pkg/cfapi"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfv2"
)

// Source reads usage events of one kind in the order Cloud Controller
// recorded them.
type Source interface {
	Kind() Kind
	// Fetch returns up to limit settled events after afterGUID. An empty
	// afterGUID starts from the oldest event.
	Fetch(ctx context.Context, afterGUID string, limit int) ([]Event, error)
}

type pageFunc[E any] func(ctx context.Context, afterGUID string, limit int) *cfapi.Future[cfv2.PaginatedResponse[cfv2.Resource[E]]]

type usageEventSource[E any] struct {
	kind   Kind
	page   pageFunc[E]
	minAge time.Duration
	now    func() time.Time
}

// NewApplicationUsageEventSource reads /v2/app_usage_events. Events younger
// than minAge, and every event after the first of them, are held back until
// a later fetch.
func NewApplicationUsageEventSource(events cfv2.ApplicationUsageEvents, minAge time.Duration) Source {
	return &usageEventSource[cfv2.ApplicationUsageEventEntity]{
		kind:   KindApp,
		minAge: minAge,
		now:    time.Now,
		page: func(ctx context.Context, afterGUID string, limit int) *cfapi.Future[cfv2.ListApplicationUsageEventsResponse] {
			return events.List(ctx, cfv2.ListApplicationUsageEventsRequest{
				PaginatedRequest:             cfv2.PaginatedRequest{ResultsPerPage: &limit},
				AfterApplicationUsageEventID: afterGUID,
			})
		},
	}
}

// NewServiceUsageEventSource reads /v2/service_usage_events with the same
// settling rule as NewApplicationUsageEventSource.
func NewServiceUsageEventSource(events cfv2.ServiceUsageEvents, minAge time.Duration) Source {
	return &usageEventSource[cfv2.ServiceUsageEventEntity]{
		kind:   KindService,
		minAge: minAge,
		now:    time.Now,
		page: func(ctx context.Context, afterGUID string, limit int) *cfapi.Future[cfv2.ListServiceUsageEventsResponse] {
			return events.List(ctx, cfv2.ListServiceUsageEventsRequest{
				PaginatedRequest:         cfv2.PaginatedRequest{ResultsPerPage: &limit},
				AfterServiceUsageEventID: afterGUID,
			})
		},
	}
}

func (s *usageEventSource[E]) Kind() Kind {
	return s.kind
}

func (s *usageEventSource[E]) Fetch(ctx context.Context, afterGUID string, limit int) ([]Event, error) {
	page, err := s.page(ctx, afterGUID, limit).Await(ctx)
	if err != nil {
		return nil, err
	}

	if page == nil {
		return nil, nil
	}

	settledBefore := s.now().Add(-s.minAge)
	events := make([]Event, 0, len(page.Resources))

	for _, resource := range page.Resources {
		event, err := newEvent(resource)
		if err != nil {
			return nil, err
		}

		if event.CreatedAt.After(settledBefore) {
			break
		}

		events = append(events, event)
	}

	return events, nil
}
