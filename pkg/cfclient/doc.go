// Package cfclient is the entry point for building a Cloud Foundry v2 and UAA
// client.
//
// It layers endpoint normalization and UAA discovery on top of the operation
// groups declared in the cfv2 and uaa packages. Every operation returns a
// *cfapi.Future that completes when the exchange finishes.
//
//	ctx := context.Background()
//
//	cli, err := cfclient.New(ctx, &cfapi.Config{
//	  APIEndpoint:  "https://api.example.com",
//	  ClientID:     "client-id",
//	  ClientSecret: "client-secret",
//	})
//	if err != nil { log.Fatal(err) }
//
//	perPage := 50
//	events, err := cli.ApplicationUsageEvents().List(ctx, cfv2.ListApplicationUsageEventsRequest{
//	  PaginatedRequest: cfv2.PaginatedRequest{ResultsPerPage: &perPage},
//	}).Await(ctx)
//
// When credentials are given and neither Config.UAAEndpoint nor
// Config.TokenURL is set, New reads token_endpoint from /v2/info and uses it
// both for token requests and for UAA operations.
//
// # TLS and development mode
//
// Config.SkipTLSVerify is rejected unless CFV2_DEV_MODE is set to true.
package cfclient
