package cfv2

import (
	"context"

	"github.com/fivetwenty-io/cfv2-client/pkg/cfapi"
)

// GetInfoRequest is the request for GET /v2/info.
type GetInfoRequest struct{}

// Validate implements cfapi.Validatable.
func (r GetInfoRequest) Validate() cfapi.ValidationResult {
	return cfapi.ValidationResult{}
}

// GetInfoResponse describes the Cloud Controller and its companion endpoints.
type GetInfoResponse struct {
	Name                     string  `json:"name"                                   yaml:"name"`
	Build                    string  `json:"build"                                  yaml:"build"`
	Support                  string  `json:"support"                                yaml:"support"`
	Version                  int     `json:"version"                                yaml:"version"`
	Description              string  `json:"description"                            yaml:"description"`
	AuthorizationEndpoint    string  `json:"authorization_endpoint"                 yaml:"authorization_endpoint"`
	TokenEndpoint            string  `json:"token_endpoint"                         yaml:"token_endpoint"`
	MinCLIVersion            *string `json:"min_cli_version"                        yaml:"min_cli_version"`
	MinRecommendedCLIVersion *string `json:"min_recommended_cli_version"            yaml:"min_recommended_cli_version"`
	APIVersion               string  `json:"api_version"                            yaml:"api_version"`
	OSBAPIVersion            string  `json:"osbapi_version,omitempty"               yaml:"osbapi_version,omitempty"`
	AppSSHEndpoint           string  `json:"app_ssh_endpoint,omitempty"             yaml:"app_ssh_endpoint,omitempty"`
	AppSSHHostKeyFingerprint string  `json:"app_ssh_host_key_fingerprint,omitempty" yaml:"app_ssh_host_key_fingerprint,omitempty"`
	AppSSHOAuthClient        string  `json:"app_ssh_oauth_client,omitempty"         yaml:"app_ssh_oauth_client,omitempty"`
	DopplerLoggingEndpoint   string  `json:"doppler_logging_endpoint,omitempty"     yaml:"doppler_logging_endpoint,omitempty"`
	RoutingEndpoint          string  `json:"routing_endpoint,omitempty"             yaml:"routing_endpoint,omitempty"`
	User                     string  `json:"user,omitempty"                         yaml:"user,omitempty"`
}

// Info is the v2 info operation group.
type Info interface {
	Get(ctx context.Context, request GetInfoRequest) *cfapi.Future[GetInfoResponse]
}
