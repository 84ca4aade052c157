package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/fivetwenty-io/cfv2-client/pkg/uaa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const identityZoneFixture = `{
  "id": "test-identity-zone-id",
  "subdomain": "test-subdomain",
  "config": {
    "tokenPolicy": {"accessTokenValidity": -1, "refreshTokenValidity": -1, "jwtRevocable": false},
    "links": {
      "logout": {
        "redirectUrl": "/login",
        "redirectParameterName": "redirect",
        "disableRedirectParameter": false,
        "whitelist": null
      },
      "selfService": {"selfServiceLinksEnabled": true, "signup": null, "passwd": null}
    },
    "prompts": [{"name": "username", "type": "text", "text": "Email"}],
    "idpDiscoveryEnabled": false,
    "accountChooserEnabled": false
  },
  "name": "test-name",
  "version": 0,
  "description": "test-description",
  "created": 1426258488910,
  "last_modified": 1426258488910
}`

func TestIdentityZonesClient_Create(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/identity-zones", r.URL.Path)
		assert.Equal(t, map[string]interface{}{
			"id":          "test-identity-zone-id",
			"subdomain":   "test-subdomain",
			"name":        "test-name",
			"description": "test-description",
			"config": map[string]interface{}{
				"links": map[string]interface{}{
					"logout": map[string]interface{}{"redirectUrl": "/login"},
				},
			},
		}, decodeBody(t, r))

		writeJSON(t, w, http.StatusCreated, identityZoneFixture)
	})

	zone, err := client.IdentityZones().Create(context.Background(), uaa.CreateIdentityZoneRequest{
		IdentityZoneID: "test-identity-zone-id",
		Subdomain:      "test-subdomain",
		Name:           "test-name",
		Description:    "test-description",
		Configuration: &uaa.IdentityZoneConfiguration{
			Links: &uaa.Links{Logout: &uaa.LogoutLink{RedirectURL: "/login"}},
		},
	}).Await(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "test-identity-zone-id", zone.ID)
	require.NotNil(t, zone.Configuration)
	assert.Equal(t, "redirect", zone.Configuration.Links.Logout.RedirectParameterName)
	assert.False(t, *zone.Configuration.Links.Logout.DisableRedirectParameter)
	assert.Nil(t, zone.Configuration.Links.Logout.Whitelist)
	assert.Equal(t, -1, *zone.Configuration.TokenPolicy.AccessTokenValidity)
}

func TestIdentityZonesClient_List(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/identity-zones", r.URL.Path)

		writeJSON(t, w, http.StatusOK, `[`+identityZoneFixture+`,{"id":"uaa","subdomain":"","name":"uaa","version":0}]`)
	})

	zones, err := client.IdentityZones().List(context.Background(), uaa.ListIdentityZonesRequest{}).Await(context.Background())
	require.NoError(t, err)
	require.NotNil(t, zones)
	require.Len(t, *zones, 2)
	assert.Equal(t, "uaa", (*zones)[1].ID)
}

func TestIdentityZonesClient_GetUpdateDelete(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/identity-zones/test-identity-zone-id", r.URL.Path)

		if r.Method == http.MethodPut {
			body := decodeBody(t, r)
			assert.Equal(t, "test-identity-zone-id", body["id"])
			assert.Equal(t, "updated-name", body["name"])
		}

		writeJSON(t, w, http.StatusOK, identityZoneFixture)
	})

	zones := client.IdentityZones()

	zone, err := zones.Get(context.Background(), uaa.GetIdentityZoneRequest{IdentityZoneID: "test-identity-zone-id"}).Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "test-subdomain", zone.Subdomain)

	_, err = zones.Update(context.Background(), uaa.UpdateIdentityZoneRequest{
		IdentityZoneID: "test-identity-zone-id",
		Subdomain:      "test-subdomain",
		Name:           "updated-name",
	}).Await(context.Background())
	require.NoError(t, err)

	deleted, err := zones.Delete(context.Background(), uaa.DeleteIdentityZoneRequest{IdentityZoneID: "test-identity-zone-id"}).Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "test-name", deleted.Name)
}
