package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/fivetwenty-io/cfv2-client/pkg/cfv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const serviceUsageEventFixture = `{
  "metadata": {
    "guid": "test-event-guid",
    "url": "/v2/service_usage_events/test-event-guid",
    "created_at": "2016-03-14T18:26:52Z"
  },
  "entity": {
    "state": "CREATED",
    "org_guid": "test-org-guid",
    "space_guid": "test-space-guid",
    "space_name": "test-space-name",
    "service_instance_guid": "test-instance-guid",
    "service_instance_name": "test-instance-name",
    "service_instance_type": "managed_service_instance",
    "service_plan_guid": "test-plan-guid",
    "service_plan_name": "test-plan-name",
    "service_guid": "test-service-guid",
    "service_label": "test-service-label",
    "service_broker_name": "test-broker-name",
    "service_broker_guid": "test-broker-guid"
  }
}`

func TestServiceUsageEventsClient_Get(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v2/service_usage_events/test-event-guid", r.URL.Path)

		writeJSON(t, w, http.StatusOK, serviceUsageEventFixture)
	})

	event, err := client.ServiceUsageEvents().
		Get(context.Background(), cfv2.GetServiceUsageEventRequest{ServiceUsageEventID: "test-event-guid"}).
		Await(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "test-event-guid", event.Metadata.ID)
	assert.Equal(t, "CREATED", event.Entity.State)
	assert.Equal(t, "test-instance-guid", event.Entity.ServiceInstanceID)
	assert.Equal(t, "managed_service_instance", event.Entity.ServiceInstanceType)
	assert.Equal(t, "test-broker-guid", event.Entity.ServiceBrokerID)
}

func TestServiceUsageEventsClient_List(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/service_usage_events", r.URL.Path)
		assert.Equal(t, "test-after-guid", r.URL.Query().Get("after_guid"))
		assert.Equal(t, []string{
			"service_instance_type:managed_service_instance",
			"service_guid IN test-service-guid-1,test-service-guid-2",
		}, r.URL.Query()["q"])

		writeJSON(t, w, http.StatusOK, `{"total_results":1,"total_pages":1,"resources":[`+serviceUsageEventFixture+`]}`)
	})

	page, err := client.ServiceUsageEvents().List(context.Background(), cfv2.ListServiceUsageEventsRequest{
		AfterServiceUsageEventID: "test-after-guid",
		ServiceInstanceTypes:     cfv2.Filter("managed_service_instance"),
		ServiceIDs:               cfv2.Filter("test-service-guid-1", "test-service-guid-2"),
	}).Await(context.Background())
	require.NoError(t, err)

	require.Len(t, page.Resources, 1)
	assert.Equal(t, "test-service-label", page.Resources[0].Entity.ServiceLabel)
}

func TestServiceUsageEventsClient_PurgeAndReseed(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/service_usage_events/destructively_purge_all_and_reseed_existing_instances", r.URL.Path)

		w.WriteHeader(http.StatusNoContent)
	})

	_, err := client.ServiceUsageEvents().
		PurgeAndReseed(context.Background(), cfv2.PurgeAndReseedServiceUsageEventsRequest{}).
		Await(context.Background())
	require.NoError(t, err)
}
