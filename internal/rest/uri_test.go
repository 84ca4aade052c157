package rest_test

import (
	"testing"

	"github.com/fivetwenty-io/cfv2-client/internal/rest"
	"github.com/stretchr/testify/assert"
)

func TestURIBuilder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		build     func(b *rest.URIBuilder)
		wantPath  string
		wantQuery string
	}{
		{
			name:     "path only",
			build:    func(b *rest.URIBuilder) { b.PathSegment("v2", "app_usage_events", "event-guid") },
			wantPath: "/v2/app_usage_events/event-guid",
		},
		{
			name:     "escapes segments",
			build:    func(b *rest.URIBuilder) { b.PathSegment("v2", "apps", "a b/c") },
			wantPath: "/v2/apps/a%20b%2Fc",
		},
		{
			name: "query keeps insertion order",
			build: func(b *rest.URIBuilder) {
				b.PathSegment("v2", "apps").
					QueryParam("results-per-page", "10").
					QueryParam("q", "name:web", "space_guid IN a,b").
					QueryParam("empty")
			},
			wantPath:  "/v2/apps",
			wantQuery: "results-per-page=10&q=name%3Aweb&q=space_guid+IN+a%2Cb",
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			builder := rest.NewURIBuilder()
			testCase.build(builder)

			assert.Equal(t, testCase.wantPath, builder.Path())
			assert.Equal(t, testCase.wantQuery, builder.RawQuery())
			assert.NoError(t, builder.Err())
		})
	}
}

func TestURIBuilder_Build(t *testing.T) {
	t.Parallel()

	builder := rest.NewURIBuilder().
		PathSegment("v2", "blobstores", "buildpack_cache").
		QueryParam("async", "true")

	assert.Equal(t, "https://api.example.com/v2/blobstores/buildpack_cache?async=true", builder.Build("https://api.example.com/"))
	assert.Equal(t, "https://api.example.com/v2/info", rest.NewURIBuilder().PathSegment("v2", "info").Build("https://api.example.com"))
}
