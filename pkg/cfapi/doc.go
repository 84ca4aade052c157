// Package cfapi provides the core types shared by the Cloud Foundry v2 and
// UAA clients: configuration, logging, error kinds, request validation, the
// Future completion handle and the execution context operations run on.
//
// # Overview
//
// Resource data types and operation interfaces live in the cfv2 and uaa
// packages. A concrete client is built by the cfclient package, which wires
// configuration, transport, authentication and endpoint discovery. Every
// operation returns a *Future:
//
//	cli, err := cfclient.New(ctx, &cfapi.Config{
//	  APIEndpoint:  "https://api.example.com",
//	  ClientID:     "admin",
//	  ClientSecret: "secret",
//	})
//	if err != nil { log.Fatal(err) }
//
//	event, err := cli.ApplicationUsageEvents().
//	  Get(ctx, cfv2.GetApplicationUsageEventRequest{ApplicationUsageEventID: guid}).
//	  Await(ctx)
//
// # Futures
//
// A Future completes exactly once. Await blocks until completion or until the
// supplied context ends; Subscribe registers a callback; Cancel aborts the
// in-flight HTTP exchange without decoding the response. An operation whose
// response type is Empty completes with a nil value.
//
// # Errors
//
// Failures surface as one of four kinds, all matched with errors.As:
//
//   - *ValidationError: the request failed its self-check, no I/O happened
//   - *TransportError: the exchange could not be completed
//   - *APIError: the server answered with a non-success status
//   - *DecodeError: a success response did not match the declared type
//
// # Execution context
//
// Operations run on a Scheduler. The default starts a goroutine per
// operation; NewBoundedScheduler caps the number of operations in flight.
package cfapi
