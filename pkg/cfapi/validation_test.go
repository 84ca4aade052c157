package cfapi_test

import (
	"testing"

	"github.com/fivetwenty-io/cfv2-client/pkg/cfapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createThingRequest struct {
	Name      string  `json:"name,omitempty"       validate:"required"`
	SpaceID   string  `json:"space_guid,omitempty" label:"space id"    validate:"required"`
	StackID   string  `json:"stack_guid,omitempty"`
	Instances *int    `json:"instances,omitempty"  validate:"omitempty,min=0"`
	State     *string `json:"state,omitempty"      validate:"omitempty,oneof=STARTED STOPPED"`
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	negative := -1
	unknown := "RUNNING"

	tests := []struct {
		name     string
		request  createThingRequest
		messages []string
	}{
		{
			name:     "missing required fields",
			request:  createThingRequest{},
			messages: []string{"name must be specified", "space id must be specified"},
		},
		{
			name:     "missing one field",
			request:  createThingRequest{Name: "web"},
			messages: []string{"space id must be specified"},
		},
		{
			name:     "range and enum checks",
			request:  createThingRequest{Name: "web", SpaceID: "s", Instances: &negative, State: &unknown},
			messages: []string{"instances must be at least 0", "state must be one of [STARTED STOPPED]"},
		},
		{
			name:    "valid",
			request: createThingRequest{Name: "web", SpaceID: "space-guid"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := cfapi.ValidateStruct(tt.request)
			assert.Equal(t, tt.messages, result.Messages)
			assert.Equal(t, len(tt.messages) == 0, result.Valid())

			if len(tt.messages) == 0 {
				require.NoError(t, result.Err())

				return
			}

			validationErr := &cfapi.ValidationError{}
			require.ErrorAs(t, result.Err(), &validationErr)
			assert.Equal(t, tt.messages, validationErr.Messages)
		})
	}
}
