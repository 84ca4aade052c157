package rest

import (
	"net/url"
	"strings"
)

type queryParam struct {
	key    string
	values []string
}

// URIBuilder assembles the path and query of a single request. Operation
// implementations receive one through the mutator passed to Execute.
type URIBuilder struct {
	segments []string
	params   []queryParam
	err      error
}

// NewURIBuilder creates an empty builder.
func NewURIBuilder() *URIBuilder {
	return &URIBuilder{}
}

// PathSegment appends escaped path segments.
func (b *URIBuilder) PathSegment(segments ...string) *URIBuilder {
	for _, segment := range segments {
		b.segments = append(b.segments, url.PathEscape(segment))
	}

	return b
}

// QueryParam appends a query parameter, once per value. Parameters keep
// insertion order.
func (b *URIBuilder) QueryParam(key string, values ...string) *URIBuilder {
	if len(values) == 0 {
		return b
	}

	b.params = append(b.params, queryParam{key: key, values: values})

	return b
}

// Augment appends the query-eligible fields of request. See AugmentQuery.
func (b *URIBuilder) Augment(request any) *URIBuilder {
	if b.err != nil {
		return b
	}

	b.err = AugmentQuery(b, request)

	return b
}

// Err returns the first error recorded while building.
func (b *URIBuilder) Err() error {
	return b.err
}

// Path returns the escaped path, rooted at "/".
func (b *URIBuilder) Path() string {
	return "/" + strings.Join(b.segments, "/")
}

// RawQuery returns the encoded query string in insertion order.
func (b *URIBuilder) RawQuery() string {
	var sb strings.Builder

	for _, param := range b.params {
		for _, value := range param.values {
			if sb.Len() > 0 {
				sb.WriteByte('&')
			}

			sb.WriteString(url.QueryEscape(param.key))
			sb.WriteByte('=')
			sb.WriteString(url.QueryEscape(value))
		}
	}

	return sb.String()
}

// Build returns the full URI under root.
func (b *URIBuilder) Build(root string) string {
	uri := strings.TrimSuffix(root, "/") + b.Path()
	if query := b.RawQuery(); query != "" {
		uri += "?" + query
	}

	return uri
}
