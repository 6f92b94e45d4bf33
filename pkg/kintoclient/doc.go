// Package kintoclient provides the primary entry point for constructing
// a Kinto API client that implements the kinto.API interface.
//
// It layers configuration, the HTTP transport, and authentication on top
// of the resource interfaces and types defined in the kinto package. Most
// applications should import kintoclient to build a client, then use the
// returned kinto.API to reach the bucket/collection/record hierarchy.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/kinto-client/pkg/kinto"
//	  "github.com/fivetwenty-io/kinto-client/pkg/kintoclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Minimal: just a server URL (no auth).
//	  cli, err := kintoclient.New(ctx, &kinto.Config{ServerURL: "https://kinto.example.com/v1"})
//	  if err != nil { log.Fatal(err) }
//
//	  // Or with an access token you already have:
//	  cli, err = kintoclient.New(ctx, &kinto.Config{
//	    ServerURL:   "https://kinto.example.com/v1",
//	    AccessToken: "eyJhbGciOi...", // bearer token
//	  })
//
//	  // Or with username/password (Basic auth):
//	  cli, err = kintoclient.New(ctx, &kinto.Config{
//	    ServerURL: "https://kinto.example.com/v1",
//	    Username:  "user",
//	    Password:  "pass",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  // Use resource clients via the kinto.API interface
//	  records, err := cli.Records("blog", "posts").List(ctx, &kinto.ListOptions{Limit: 10})
//	  if err != nil { log.Fatal(err) }
//	  _ = records
//	}
//
// # Helpers
//
// The package also provides convenience constructors NewWithEndpoint,
// NewWithToken, and NewWithBasicAuth that wrap New with the appropriate
// configuration.
package kintoclient
