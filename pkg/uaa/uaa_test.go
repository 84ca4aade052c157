package uaa_test

import (
	"encoding/json"
	"testing"

	"github.com/fivetwenty-io/cfv2-client/pkg/cfapi"
	"github.com/fivetwenty-io/cfv2-client/pkg/uaa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestValidation(t *testing.T) {
	t.Parallel()

	startIndex := 0

	tests := []struct {
		name     string
		request  cfapi.Validatable
		messages []string
	}{
		{
			name:     "create identity zone missing fields",
			request:  uaa.CreateIdentityZoneRequest{},
			messages: []string{"subdomain must be specified", "name must be specified"},
		},
		{
			name:    "create identity zone valid",
			request: uaa.CreateIdentityZoneRequest{Name: "test-name", Subdomain: "test-subdomain"},
		},
		{
			name:     "get identity zone",
			request:  uaa.GetIdentityZoneRequest{},
			messages: []string{"identity zone id must be specified"},
		},
		{
			name:     "update identity zone",
			request:  uaa.UpdateIdentityZoneRequest{Name: "test-name"},
			messages: []string{"identity zone id must be specified", "subdomain must be specified"},
		},
		{
			name:     "delete identity zone",
			request:  uaa.DeleteIdentityZoneRequest{},
			messages: []string{"identity zone id must be specified"},
		},
		{
			name:     "create user",
			request:  uaa.CreateUserRequest{Password: "secret"},
			messages: []string{"user name must be specified"},
		},
		{
			name:     "get user",
			request:  uaa.GetUserRequest{IdentityZoned: uaa.IdentityZoned{IdentityZoneID: "zone"}},
			messages: []string{"user id must be specified"},
		},
		{
			name:    "list users",
			request: uaa.ListUsersRequest{Filter: `userName eq "bob"`, SortOrder: uaa.SortOrderAscending},
		},
		{
			name:     "list users bad paging",
			request:  uaa.ListUsersRequest{SortOrder: "sideways", StartIndex: &startIndex},
			messages: []string{"sort order must be one of [ascending descending]", "start index must be at least 1"},
		},
		{
			name:     "delete user",
			request:  uaa.DeleteUserRequest{},
			messages: []string{"user id must be specified"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := tt.request.Validate()
			assert.Equal(t, tt.messages, result.Messages)
			assert.Equal(t, len(tt.messages) == 0, result.Valid())
		})
	}
}

func TestIdentityZonedHeaders(t *testing.T) {
	t.Parallel()

	t.Run("empty targets the token zone", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, uaa.IdentityZoned{}.Headers())
	})

	t.Run("id and subdomain", func(t *testing.T) {
		t.Parallel()

		headers := uaa.GetUserRequest{
			IdentityZoned: uaa.IdentityZoned{IdentityZoneID: "zone-id", IdentityZoneSubdomain: "zone-sub"},
			UserID:        "user-id",
		}.Headers()

		assert.Equal(t, map[string]string{
			uaa.IdentityZoneIDHeader:        "zone-id",
			uaa.IdentityZoneSubdomainHeader: "zone-sub",
		}, headers)
	})

	t.Run("delete user defaults If-Match", func(t *testing.T) {
		t.Parallel()

		headers := uaa.DeleteUserRequest{UserID: "user-id"}.Headers()
		assert.Equal(t, map[string]string{uaa.IfMatchHeader: "*"}, headers)
	})

	t.Run("delete user with version", func(t *testing.T) {
		t.Parallel()

		headers := uaa.DeleteUserRequest{
			IdentityZoned: uaa.IdentityZoned{IdentityZoneSubdomain: "zone-sub"},
			UserID:        "user-id",
			Version:       "3",
		}.Headers()
		assert.Equal(t, map[string]string{
			uaa.IfMatchHeader:               "3",
			uaa.IdentityZoneSubdomainHeader: "zone-sub",
		}, headers)
	})
}

func TestCreateUserRequest_Body(t *testing.T) {
	t.Parallel()

	body, err := json.Marshal(uaa.CreateUserRequest{
		IdentityZoned: uaa.IdentityZoned{IdentityZoneID: "zone-id"},
		UserName:      "test-user",
		Emails:        []uaa.Email{{Value: "test@example.com", Primary: true}},
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{"userName":"test-user","emails":[{"value":"test@example.com","primary":true}]}`, string(body))
}

func TestIdentityZone_Decode(t *testing.T) {
	t.Parallel()

	payload := `{
	  "id": "test-identity-zone-id",
	  "subdomain": "test-subdomain",
	  "name": "test-name",
	  "version": 1,
	  "description": "test-description",
	  "created": 1426258488910,
	  "last_modified": 1426258489910,
	  "active": true,
	  "config": {
	    "tokenPolicy": {
	      "accessTokenValidity": 3600,
	      "refreshTokenValidity": 7200,
	      "jwtRevocable": false,
	      "refreshTokenUnique": false,
	      "refreshTokenFormat": "jwt",
	      "activeKeyId": "active-key-1",
	      "keys": {"active-key-1": {"signingKey": "test-key"}}
	    },
	    "links": {
	      "logout": {
	        "redirectUrl": "/login",
	        "redirectParameterName": "redirect",
	        "disableRedirectParameter": false,
	        "whitelist": ["http://example.com"]
	      },
	      "homeRedirect": "http://home.example.com",
	      "selfService": {"selfServiceLinksEnabled": true, "signup": "/signup", "passwd": "/reset"}
	    },
	    "prompts": [
	      {"name": "username", "type": "text", "text": "Email"},
	      {"name": "password", "type": "password", "text": "Password"}
	    ],
	    "idpDiscoveryEnabled": false,
	    "accountChooserEnabled": true,
	    "issuer": "http://issuer.example.com"
	  }
	}`

	var zone uaa.IdentityZone
	require.NoError(t, json.Unmarshal([]byte(payload), &zone))

	assert.Equal(t, "test-identity-zone-id", zone.ID)
	assert.Equal(t, "test-subdomain", zone.Subdomain)
	assert.Equal(t, 1, zone.Version)
	assert.Equal(t, int64(1426258489910), zone.LastModified)
	require.NotNil(t, zone.Active)
	assert.True(t, *zone.Active)

	config := zone.Configuration
	require.NotNil(t, config)
	require.NotNil(t, config.TokenPolicy)
	assert.Equal(t, 3600, *config.TokenPolicy.AccessTokenValidity)
	assert.Equal(t, "test-key", config.TokenPolicy.Keys["active-key-1"].SigningKey)

	require.NotNil(t, config.Links)
	require.NotNil(t, config.Links.Logout)
	assert.Equal(t, uaa.LogoutLink{
		DisableRedirectParameter: boolPtr(false),
		RedirectParameterName:    "redirect",
		RedirectURL:              "/login",
		Whitelist:                []string{"http://example.com"},
	}, *config.Links.Logout)
	assert.Equal(t, "/reset", config.Links.SelfService.Password)
	assert.Len(t, config.Prompts, 2)
	assert.True(t, *config.AccountChooserEnabled)
	assert.Equal(t, "http://issuer.example.com", config.Issuer)
}

func TestLogoutLink_OmitsUnset(t *testing.T) {
	t.Parallel()

	body, err := json.Marshal(uaa.LogoutLink{RedirectURL: "/login"})
	require.NoError(t, err)

	assert.JSONEq(t, `{"redirectUrl":"/login"}`, string(body))
}

func boolPtr(b bool) *bool {
	return &b
}
