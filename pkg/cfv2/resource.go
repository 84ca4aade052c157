package cfv2

import (
	"net/url"
	"strings"
)

// Metadata is the metadata block of every v2 resource.
type Metadata struct {
	ID        string `json:"guid"                 yaml:"guid"`
	URL       string `json:"url"                  yaml:"url"`
	CreatedAt string `json:"created_at"           yaml:"created_at"`
	UpdatedAt string `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// Resource is the v2 envelope pairing metadata with an entity.
type Resource[E any] struct {
	Metadata Metadata `json:"metadata" yaml:"metadata"`
	Entity   E        `json:"entity"   yaml:"entity"`
}

// PaginatedResponse is the v2 list envelope.
type PaginatedResponse[R any] struct {
	TotalResults int     `json:"total_results" yaml:"total_results"`
	TotalPages   int     `json:"total_pages"   yaml:"total_pages"`
	PrevURL      *string `json:"prev_url"      yaml:"prev_url"`
	NextURL      *string `json:"next_url"      yaml:"next_url"`
	Resources    []R     `json:"resources"     yaml:"resources"`
}

// OrderDirection is the sort direction of a list.
type OrderDirection string

// Order directions.
const (
	OrderAscending  OrderDirection = "asc"
	OrderDescending OrderDirection = "desc"
)

// PaginatedRequest holds the paging parameters shared by every v2 list
// request.
type PaginatedRequest struct {
	OrderDirection OrderDirection `json:"-" url:"order-direction,omitempty"  validate:"omitempty,oneof=asc desc" label:"order direction"`
	Page           *int           `json:"-" url:"page,omitempty"             validate:"omitempty,min=1"`
	ResultsPerPage *int           `json:"-" url:"results-per-page,omitempty" validate:"omitempty,min=1,max=100" label:"results per page"`
}

// WithPage returns a copy of the request set to page.
func (p PaginatedRequest) WithPage(page int) PaginatedRequest {
	p.Page = &page

	return p
}

// FilterParameter is a v2 "q" filter on the field named by the url tag. One
// value encodes as q=field:value, several as q=field IN a,b.
type FilterParameter []string

// QueryKey returns the parameter every filter encodes under.
func (f FilterParameter) QueryKey() string {
	return "q"
}

// EncodeValues implements query.Encoder.
func (f FilterParameter) EncodeValues(key string, values *url.Values) error {
	switch len(f) {
	case 0:
		return nil
	case 1:
		values.Add(f.QueryKey(), key+":"+f[0])
	default:
		values.Add(f.QueryKey(), key+" IN "+strings.Join(f, ","))
	}

	return nil
}

// Filter builds a FilterParameter, skipping empty values.
func Filter(values ...string) FilterParameter {
	var filter FilterParameter

	for _, value := range values {
		if value != "" {
			filter = append(filter, value)
		}
	}

	return filter
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}

// BoolPtr returns a pointer to v.
func BoolPtr(v bool) *bool {
	return &v
}

// StringPtr returns a pointer to v.
func StringPtr(v string) *string {
	return &v
}
