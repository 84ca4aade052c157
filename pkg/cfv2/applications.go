package cfv2

import (
	"context"

	"github.com/fivetwenty-io/cfv2-client/pkg/cfapi"
)

// Application states.
const (
	ApplicationStateStarted = "STARTED"
	ApplicationStateStopped = "STOPPED"
)

// DockerCredentials authenticates against a private docker registry.
type DockerCredentials struct {
	Username string `json:"username,omitempty" yaml:"username,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
}

// ApplicationEntity is a v2 app.
type ApplicationEntity struct {
	Name                     string                 `json:"name"                                 yaml:"name"`
	Production               bool                   `json:"production"                           yaml:"production"`
	SpaceID                  string                 `json:"space_guid"                           yaml:"space_guid"`
	StackID                  string                 `json:"stack_guid"                           yaml:"stack_guid"`
	Buildpack                *string                `json:"buildpack"                            yaml:"buildpack"`
	DetectedBuildpack        *string                `json:"detected_buildpack"                   yaml:"detected_buildpack"`
	DetectedBuildpackID      *string                `json:"detected_buildpack_guid"              yaml:"detected_buildpack_guid"`
	EnvironmentJSON          map[string]interface{} `json:"environment_json"                     yaml:"environment_json"`
	Memory                   int                    `json:"memory"                               yaml:"memory"`
	Instances                int                    `json:"instances"                            yaml:"instances"`
	DiskQuota                int                    `json:"disk_quota"                           yaml:"disk_quota"`
	State                    string                 `json:"state"                                yaml:"state"`
	Version                  string                 `json:"version"                              yaml:"version"`
	Command                  *string                `json:"command"                              yaml:"command"`
	Console                  bool                   `json:"console"                              yaml:"console"`
	Debug                    *string                `json:"debug"                                yaml:"debug"`
	StagingTaskID            *string                `json:"staging_task_id"                      yaml:"staging_task_id"`
	PackageState             string                 `json:"package_state"                        yaml:"package_state"`
	HealthCheckType          string                 `json:"health_check_type"                    yaml:"health_check_type"`
	HealthCheckTimeout       *int                   `json:"health_check_timeout"                 yaml:"health_check_timeout"`
	HealthCheckHTTPEndpoint  *string                `json:"health_check_http_endpoint,omitempty" yaml:"health_check_http_endpoint,omitempty"`
	StagingFailedReason      *string                `json:"staging_failed_reason"                yaml:"staging_failed_reason"`
	StagingFailedDescription *string                `json:"staging_failed_description"           yaml:"staging_failed_description"`
	Diego                    bool                   `json:"diego"                                yaml:"diego"`
	DockerImage              *string                `json:"docker_image"                         yaml:"docker_image"`
	DockerCredentials        *DockerCredentials     `json:"docker_credentials,omitempty"         yaml:"docker_credentials,omitempty"`
	PackageUpdatedAt         *string                `json:"package_updated_at"                   yaml:"package_updated_at"`
	DetectedStartCommand     string                 `json:"detected_start_command"               yaml:"detected_start_command"`
	EnableSSH                bool                   `json:"enable_ssh"                           yaml:"enable_ssh"`
	Ports                    []int                  `json:"ports"                                yaml:"ports"`
	SpaceURL                 string                 `json:"space_url,omitempty"                  yaml:"space_url,omitempty"`
	StackURL                 string                 `json:"stack_url,omitempty"                  yaml:"stack_url,omitempty"`
	RoutesURL                string                 `json:"routes_url,omitempty"                 yaml:"routes_url,omitempty"`
	EventsURL                string                 `json:"events_url,omitempty"                 yaml:"events_url,omitempty"`
	ServiceBindingsURL       string                 `json:"service_bindings_url,omitempty"       yaml:"service_bindings_url,omitempty"`
	RouteMappingsURL         string                 `json:"route_mappings_url,omitempty"         yaml:"route_mappings_url,omitempty"`
}

// ApplicationResource is an app with its metadata.
type ApplicationResource = Resource[ApplicationEntity]

// CreateApplicationRequest is the request for POST /v2/apps. Maps and lists
// that are empty are left out of the body.
type CreateApplicationRequest struct {
	Buildpack                string                 `json:"buildpack,omitempty"`
	Command                  string                 `json:"command,omitempty"`
	Console                  *bool                  `json:"console,omitempty"`
	Debug                    *bool                  `json:"debug,omitempty"`
	DetectedStartCommand     string                 `json:"detected_start_command,omitempty"`
	Diego                    *bool                  `json:"diego,omitempty"`
	DiskQuota                *int                   `json:"disk_quota,omitempty"                 validate:"omitempty,min=0"`
	DockerCredentialsJSON    map[string]interface{} `json:"docker_credentials_json,omitempty"`
	DockerImage              string                 `json:"docker_image,omitempty"`
	EnableSSH                *bool                  `json:"enable_ssh,omitempty"`
	EnvironmentJSON          map[string]interface{} `json:"environment_json,omitempty"`
	HealthCheckTimeout       *int                   `json:"health_check_timeout,omitempty"       validate:"omitempty,min=0"`
	HealthCheckType          string                 `json:"health_check_type,omitempty"`
	Instances                *int                   `json:"instances,omitempty"                  validate:"omitempty,min=0"`
	Memory                   *int                   `json:"memory,omitempty"                     validate:"omitempty,min=0"`
	Name                     string                 `json:"name,omitempty"                       validate:"required"`
	Ports                    []int                  `json:"ports,omitempty"`
	Production               *bool                  `json:"production,omitempty"`
	SpaceID                  string                 `json:"space_guid,omitempty"                 label:"space id" validate:"required"`
	StackID                  string                 `json:"stack_guid,omitempty"`
	StagingFailedDescription string                 `json:"staging_failed_description,omitempty"`
	StagingFailedReason      string                 `json:"staging_failed_reason,omitempty"`
	State                    string                 `json:"state,omitempty"                      validate:"omitempty,oneof=STARTED STOPPED"`
}

// Validate implements cfapi.Validatable.
func (r CreateApplicationRequest) Validate() cfapi.ValidationResult {
	return cfapi.ValidateStruct(r)
}

// CreateApplicationResponse is the created app.
type CreateApplicationResponse = ApplicationResource

// GetApplicationRequest is the request for GET /v2/apps/{id}.
type GetApplicationRequest struct {
	ApplicationID string `json:"-" url:"-" label:"application id" validate:"required"`
}

// Validate implements cfapi.Validatable.
func (r GetApplicationRequest) Validate() cfapi.ValidationResult {
	return cfapi.ValidateStruct(r)
}

// GetApplicationResponse is a single app.
type GetApplicationResponse = ApplicationResource

// ListApplicationsRequest is the request for GET /v2/apps. Every filter is
// sent as a q parameter.
type ListApplicationsRequest struct {
	PaginatedRequest

	Names           FilterParameter `json:"-" url:"name,omitempty"`
	SpaceIDs        FilterParameter `json:"-" url:"space_guid,omitempty"`
	OrganizationIDs FilterParameter `json:"-" url:"organization_guid,omitempty"`
	StackIDs        FilterParameter `json:"-" url:"stack_guid,omitempty"`
	Diego           FilterParameter `json:"-" url:"diego,omitempty"`
}

// Validate implements cfapi.Validatable.
func (r ListApplicationsRequest) Validate() cfapi.ValidationResult {
	return cfapi.ValidateStruct(r)
}

// ListApplicationsResponse is a page of apps.
type ListApplicationsResponse = PaginatedResponse[ApplicationResource]

// UpdateApplicationRequest is the request for PUT /v2/apps/{id}.
type UpdateApplicationRequest struct {
	ApplicationID string `json:"-" url:"-" label:"application id" validate:"required"`

	Buildpack          string                 `json:"buildpack,omitempty"`
	Command            string                 `json:"command,omitempty"`
	Diego              *bool                  `json:"diego,omitempty"`
	DiskQuota          *int                   `json:"disk_quota,omitempty"           validate:"omitempty,min=0"`
	DockerImage        string                 `json:"docker_image,omitempty"`
	EnableSSH          *bool                  `json:"enable_ssh,omitempty"`
	EnvironmentJSON    map[string]interface{} `json:"environment_json,omitempty"`
	HealthCheckTimeout *int                   `json:"health_check_timeout,omitempty" validate:"omitempty,min=0"`
	HealthCheckType    string                 `json:"health_check_type,omitempty"`
	Instances          *int                   `json:"instances,omitempty"            validate:"omitempty,min=0"`
	Memory             *int                   `json:"memory,omitempty"               validate:"omitempty,min=0"`
	Name               string                 `json:"name,omitempty"`
	Ports              []int                  `json:"ports,omitempty"`
	SpaceID            string                 `json:"space_guid,omitempty"`
	StackID            string                 `json:"stack_guid,omitempty"`
	State              string                 `json:"state,omitempty"                validate:"omitempty,oneof=STARTED STOPPED"`
}

// Validate implements cfapi.Validatable.
func (r UpdateApplicationRequest) Validate() cfapi.ValidationResult {
	return cfapi.ValidateStruct(r)
}

// UpdateApplicationResponse is the updated app.
type UpdateApplicationResponse = ApplicationResource

// DeleteApplicationRequest is the request for DELETE /v2/apps/{id}.
type DeleteApplicationRequest struct {
	ApplicationID string `json:"-" url:"-"                   label:"application id" validate:"required"`
	Recursive     *bool  `json:"-" url:"recursive,omitempty"`
}

// Validate implements cfapi.Validatable.
func (r DeleteApplicationRequest) Validate() cfapi.ValidationResult {
	return cfapi.ValidateStruct(r)
}

// ApplicationsV2 is the v2 apps operation group.
type ApplicationsV2 interface {
	Create(ctx context.Context, request CreateApplicationRequest) *cfapi.Future[CreateApplicationResponse]
	Get(ctx context.Context, request GetApplicationRequest) *cfapi.Future[GetApplicationResponse]
	List(ctx context.Context, request ListApplicationsRequest) *cfapi.Future[ListApplicationsResponse]
	Update(ctx context.Context, request UpdateApplicationRequest) *cfapi.Future[UpdateApplicationResponse]
	Delete(ctx context.Context, request DeleteApplicationRequest) *cfapi.Future[cfapi.Empty]
}
