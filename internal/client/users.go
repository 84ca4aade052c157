package client

import (
	"context"

	"github.com/fivetwenty-io/cfv2-client/internal/rest"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfapi"
	"github.com/fivetwenty-io/cfv2-client/pkg/uaa"
)

// UsersClient implements uaa.Users over the SCIM endpoints.
type UsersClient struct {
	executor *rest.Executor
}

// NewUsersClient creates a new users client.
func NewUsersClient(executor *rest.Executor) *UsersClient {
	return &UsersClient{executor: executor}
}

// Create implements uaa.Users.Create.
func (c *UsersClient) Create(ctx context.Context, request uaa.CreateUserRequest) *cfapi.Future[uaa.CreateUserResponse] {
	return rest.Post[uaa.CreateUserResponse](ctx, c.executor, request, func(builder *rest.URIBuilder) {
		builder.PathSegment("Users")
	})
}

// Get implements uaa.Users.Get.
func (c *UsersClient) Get(ctx context.Context, request uaa.GetUserRequest) *cfapi.Future[uaa.GetUserResponse] {
	return rest.Get[uaa.GetUserResponse](ctx, c.executor, request, func(builder *rest.URIBuilder) {
		builder.PathSegment("Users", request.UserID)
	})
}

// List implements uaa.Users.List.
func (c *UsersClient) List(ctx context.Context, request uaa.ListUsersRequest) *cfapi.Future[uaa.ListUsersResponse] {
	return rest.Get[uaa.ListUsersResponse](ctx, c.executor, request, func(builder *rest.URIBuilder) {
		builder.PathSegment("Users")
		builder.Augment(request)
	})
}

// Delete implements uaa.Users.Delete.
func (c *UsersClient) Delete(ctx context.Context, request uaa.DeleteUserRequest) *cfapi.Future[uaa.DeleteUserResponse] {
	return rest.Delete[uaa.DeleteUserResponse](ctx, c.executor, request, func(builder *rest.URIBuilder) {
		builder.PathSegment("Users", request.UserID)
	})
}
