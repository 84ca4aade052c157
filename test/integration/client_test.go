//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/fivetwenty-io/cfv2-client/pkg/cfapi"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfclient"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfv2"
	"github.com/fivetwenty-io/cfv2-client/pkg/uaa"
	"github.com/stretchr/testify/suite"
)

// ClientIntegrationTestSuite runs the library against a live foundation.
type ClientIntegrationTestSuite struct {
	suite.Suite

	config *TestConfig
	client cfclient.Client
	ctx    context.Context
	cancel context.CancelFunc
}

func (s *ClientIntegrationTestSuite) SetupSuite() {
	s.config = LoadTestConfig()
	s.config.SkipIfMissingConfig(s.T())

	s.client = s.config.NewClient(s.T())
}

func (s *ClientIntegrationTestSuite) SetupTest() {
	s.ctx, s.cancel = context.WithTimeout(context.Background(), 5*time.Minute)
}

func (s *ClientIntegrationTestSuite) TearDownTest() {
	s.cancel()
}

func (s *ClientIntegrationTestSuite) TestInfo() {
	info, err := s.client.Info().Get(s.ctx, cfv2.GetInfoRequest{}).Await(s.ctx)
	s.Require().NoError(err)
	s.NotEmpty(info.TokenEndpoint)

	supported, err := cfclient.IsSupportedAPIVersion(info.APIVersion)
	s.Require().NoError(err)
	s.True(supported, "API version %s", info.APIVersion)
}

func (s *ClientIntegrationTestSuite) TestOrganizationSpaceApplicationLifecycle() {
	orgName := GenerateTestName("cfv2-org")

	org, err := s.client.Organizations().Create(s.ctx, cfv2.CreateOrganizationRequest{Name: orgName}).Await(s.ctx)
	s.Require().NoError(err)

	defer func() {
		job, err := s.client.Organizations().Delete(s.ctx, cfv2.DeleteOrganizationRequest{
			OrganizationID: org.Metadata.ID,
			Recursive:      cfv2.BoolPtr(true),
			Async:          cfv2.BoolPtr(true),
		}).Await(s.ctx)
		s.Require().NoError(err)

		if job.Entity.ID != "" {
			_, err = s.client.Jobs().WaitForCompletion(s.ctx, job.Entity.ID, 2*time.Minute).Await(s.ctx)
			s.Require().NoError(err)
		}

		_, err = s.client.Organizations().Get(s.ctx, cfv2.GetOrganizationRequest{OrganizationID: org.Metadata.ID}).Await(s.ctx)
		s.True(cfapi.IsNotFound(err), "expected organization to be gone, got %v", err)
	}()

	space, err := s.client.Spaces().Create(s.ctx, cfv2.CreateSpaceRequest{
		Name:           "space",
		OrganizationID: org.Metadata.ID,
	}).Await(s.ctx)
	s.Require().NoError(err)

	app, err := s.client.ApplicationsV2().Create(s.ctx, cfv2.CreateApplicationRequest{
		Name:    "app",
		SpaceID: space.Metadata.ID,
		Memory:  cfv2.IntPtr(64),
	}).Await(s.ctx)
	s.Require().NoError(err)
	s.Equal("STOPPED", app.Entity.State)

	app, err = s.client.ApplicationsV2().Update(s.ctx, cfv2.UpdateApplicationRequest{
		ApplicationID: app.Metadata.ID,
		Instances:     cfv2.IntPtr(2),
	}).Await(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, app.Entity.Instances)

	apps, err := s.client.ApplicationsV2().List(s.ctx, cfv2.ListApplicationsRequest{
		SpaceIDs: cfv2.Filter(space.Metadata.ID),
	}).Await(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(apps.Resources, 1)
	s.Equal(app.Metadata.ID, apps.Resources[0].Metadata.ID)
}

func (s *ClientIntegrationTestSuite) TestUsageEventsPaging() {
	first, err := s.client.ApplicationUsageEvents().List(s.ctx, cfv2.ListApplicationUsageEventsRequest{
		PaginatedRequest: cfv2.PaginatedRequest{ResultsPerPage: cfv2.IntPtr(2)},
	}).Await(s.ctx)
	s.Require().NoError(err)

	if len(first.Resources) == 0 {
		s.T().Skip("foundation has no app usage events")
	}

	afterGUID := first.Resources[0].Metadata.ID

	iterator := cfv2.NewPageIterator(s.ctx, func(ctx context.Context, page int) *cfapi.Future[cfv2.ListApplicationUsageEventsResponse] {
		return s.client.ApplicationUsageEvents().List(ctx, cfv2.ListApplicationUsageEventsRequest{
			PaginatedRequest:             cfv2.PaginatedRequest{ResultsPerPage: cfv2.IntPtr(50)}.WithPage(page),
			AfterApplicationUsageEventID: afterGUID,
		})
	})

	events, err := iterator.All()
	s.Require().NoError(err)

	for _, event := range events {
		s.NotEqual(afterGUID, event.Metadata.ID)
	}
}

func (s *ClientIntegrationTestSuite) TestUserLifecycle() {
	userName := GenerateTestName("cfv2-user")

	user, err := s.client.Users().Create(s.ctx, uaa.CreateUserRequest{
		UserName: userName,
		Password: "Integration-Pass-123",
		Name:     &uaa.Name{GivenName: "Integration", FamilyName: "User"},
		Emails:   []uaa.Email{{Value: userName + "@example.com", Primary: true}},
	}).Await(s.ctx)
	s.Require().NoError(err)
	s.Equal(userName, user.UserName)

	users, err := s.client.Users().List(s.ctx, uaa.ListUsersRequest{
		Filter: `userName eq "` + userName + `"`,
	}).Await(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(users.Resources, 1)
	s.Equal(user.ID, users.Resources[0].ID)

	deleted, err := s.client.Users().Delete(s.ctx, uaa.DeleteUserRequest{UserID: user.ID}).Await(s.ctx)
	s.Require().NoError(err)
	s.Equal(user.ID, deleted.ID)

	_, err = s.client.Users().Get(s.ctx, uaa.GetUserRequest{UserID: user.ID}).Await(s.ctx)
	s.True(cfapi.IsNotFound(err), "expected user to be gone, got %v", err)
}

func (s *ClientIntegrationTestSuite) TestIdentityZones() {
	zones, err := s.client.IdentityZones().List(s.ctx, uaa.ListIdentityZonesRequest{}).Await(s.ctx)
	s.Require().NoError(err)
	s.Require().NotEmpty(*zones)

	zone, err := s.client.IdentityZones().Get(s.ctx, uaa.GetIdentityZoneRequest{IdentityZoneID: (*zones)[0].ID}).Await(s.ctx)
	s.Require().NoError(err)
	s.Equal((*zones)[0].Subdomain, zone.Subdomain)
}

func TestClientIntegration(t *testing.T) {
	suite.Run(t, new(ClientIntegrationTestSuite))
}
