package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/fivetwenty-io/cfv2-client/internal/auth"
	"github.com/fivetwenty-io/cfv2-client/internal/constants"
	cfhttp "github.com/fivetwenty-io/cfv2-client/internal/http"
	"github.com/fivetwenty-io/cfv2-client/pkg/cfv2"
)

// discoveringUAAClient sends UAA requests to the root advertised by the Cloud
// Controller's /v2/info token_endpoint. The root is looked up on first use and
// kept once found; a failed lookup is retried on the next request.
type discoveringUAAClient struct {
	cc           *cfhttp.Client
	tokenManager auth.TokenManager
	opts         []cfhttp.Option

	mu  sync.Mutex
	uaa *cfhttp.Client
}

func newDiscoveringUAAClient(cc *cfhttp.Client, tokenManager auth.TokenManager, opts []cfhttp.Option) *discoveringUAAClient {
	return &discoveringUAAClient{
		cc:           cc,
		tokenManager: tokenManager,
		opts:         opts,
	}
}

// Do implements rest.Doer.
func (d *discoveringUAAClient) Do(ctx context.Context, req *cfhttp.Request) (*cfhttp.Response, error) {
	uaa, err := d.client(ctx)
	if err != nil {
		return nil, err
	}

	return uaa.Do(ctx, req)
}

func (d *discoveringUAAClient) client(ctx context.Context) (*cfhttp.Client, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.uaa != nil {
		return d.uaa, nil
	}

	resp, err := d.cc.Get(ctx, "/v2/info", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", constants.ErrInfoRequestFailed, err)
	}

	var info cfv2.GetInfoResponse
	if err := json.Unmarshal(resp.Body, &info); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %w", constants.ErrInfoRequestFailed, err)
	}

	root := strings.TrimSuffix(info.TokenEndpoint, "/")
	if root == "" {
		return nil, constants.ErrNoUAAEndpoint
	}

	d.uaa = cfhttp.NewClient(root, d.tokenManager, d.opts...)

	return d.uaa, nil
}
