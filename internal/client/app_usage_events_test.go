package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/fivetwenty-io/cfv2-client/pkg/cfapi"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const appUsageEventFixture = `{
  "metadata": {
    "guid": "test-event-guid",
    "url": "/v2/app_usage_events/test-event-guid",
    "created_at": "2016-03-14T18:26:51Z"
  },
  "entity": {
    "state": "STARTED",
    "previous_state": "STOPPED",
    "memory_in_mb_per_instance": 564,
    "previous_memory_in_mb_per_instance": 128,
    "instance_count": 1,
    "previous_instance_count": 2,
    "app_guid": "test-app-guid",
    "app_name": "test-app-name",
    "space_guid": "test-space-guid",
    "space_name": "test-space-name",
    "org_guid": "test-org-guid",
    "buildpack_guid": "test-buildpack-guid",
    "buildpack_name": "test-buildpack-name",
    "package_state": "PENDING",
    "previous_package_state": "UNKNOWN",
    "parent_app_guid": "test-parent-app-guid",
    "parent_app_name": "test-parent-app-name",
    "process_type": "web",
    "task_guid": null,
    "task_name": null
  }
}`

func TestApplicationUsageEventsClient_Get(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v2/app_usage_events/test-event-guid", r.URL.Path)
		assert.Empty(t, r.URL.RawQuery)

		writeJSON(t, w, http.StatusOK, appUsageEventFixture)
	})

	event, err := client.ApplicationUsageEvents().
		Get(context.Background(), cfv2.GetApplicationUsageEventRequest{ApplicationUsageEventID: "test-event-guid"}).
		Await(context.Background())
	require.NoError(t, err)
	require.NotNil(t, event)

	assert.Equal(t, "test-event-guid", event.Metadata.ID)
	assert.Equal(t, "2016-03-14T18:26:51Z", event.Metadata.CreatedAt)
	assert.Equal(t, "STARTED", event.Entity.State)
	assert.Equal(t, "STOPPED", *event.Entity.PreviousState)
	assert.Equal(t, 564, event.Entity.MemoryInMBPerInstance)
	assert.Equal(t, 128, *event.Entity.PreviousMemoryInMBPerInstance)
	assert.Equal(t, 1, event.Entity.InstanceCount)
	assert.Equal(t, 2, *event.Entity.PreviousInstanceCount)
	assert.Equal(t, "test-app-guid", event.Entity.ApplicationID)
	assert.Equal(t, "test-buildpack-name", *event.Entity.BuildpackName)
	assert.Equal(t, "PENDING", event.Entity.PackageState)
	assert.Equal(t, "test-parent-app-name", *event.Entity.ParentApplicationName)
	assert.Nil(t, event.Entity.TaskID)
}

func TestApplicationUsageEventsClient_List(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v2/app_usage_events", r.URL.Path)
		assert.Equal(t, "results-per-page=1&after_guid=test-after-guid", r.URL.RawQuery)

		writeJSON(t, w, http.StatusOK, `{
		  "total_results": 2,
		  "total_pages": 2,
		  "prev_url": null,
		  "next_url": "/v2/app_usage_events?after_guid=test-after-guid&page=2&results-per-page=1",
		  "resources": [`+appUsageEventFixture+`]
		}`)
	})

	page, err := client.ApplicationUsageEvents().List(context.Background(), cfv2.ListApplicationUsageEventsRequest{
		PaginatedRequest:             cfv2.PaginatedRequest{ResultsPerPage: cfv2.IntPtr(1)},
		AfterApplicationUsageEventID: "test-after-guid",
	}).Await(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, page.TotalResults)
	assert.Equal(t, 2, page.TotalPages)
	assert.Nil(t, page.PrevURL)
	require.NotNil(t, page.NextURL)
	require.Len(t, page.Resources, 1)
	assert.Equal(t, "test-event-guid", page.Resources[0].Metadata.ID)
}

func TestApplicationUsageEventsClient_PurgeAndReseed(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/app_usage_events/destructively_purge_all_and_reseed_started_apps", r.URL.Path)

		w.WriteHeader(http.StatusNoContent)
	})

	result, err := client.ApplicationUsageEvents().
		PurgeAndReseed(context.Background(), cfv2.PurgeAndReseedApplicationUsageEventsRequest{}).
		Await(context.Background())
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestApplicationUsageEventsClient_GetInvalid(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s %s", r.Method, r.URL)
	})

	_, err := client.ApplicationUsageEvents().
		Get(context.Background(), cfv2.GetApplicationUsageEventRequest{}).
		Await(context.Background())

	var validationErr *cfapi.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, []string{"application usage event id must be specified"}, validationErr.Messages)
}

func TestApplicationUsageEventsClient_RequestResources(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page")

		resources := appUsageEventFixture
		if page == "2" {
			resources = `{"metadata":{"guid":"second-event-guid"},"entity":{"state":"STOPPED"}}`
		}

		writeJSON(t, w, http.StatusOK, `{"total_results":2,"total_pages":2,"resources":[`+resources+`]}`)
	})

	events := client.ApplicationUsageEvents()
	all, err := cfv2.RequestResources(context.Background(), func(ctx context.Context, page int) *cfapi.Future[cfv2.ListApplicationUsageEventsResponse] {
		return events.List(ctx, cfv2.ListApplicationUsageEventsRequest{
			PaginatedRequest: cfv2.PaginatedRequest{ResultsPerPage: cfv2.IntPtr(1)}.WithPage(page),
		})
	}).Await(context.Background())
	require.NoError(t, err)

	require.Len(t, all.Resources, 2)
	assert.Equal(t, "test-event-guid", all.Resources[0].Metadata.ID)
	assert.Equal(t, "second-event-guid", all.Resources[1].Metadata.ID)
	assert.Equal(t, 2, all.TotalPages)
	assert.Equal(t, 2, all.TotalResults)
}
