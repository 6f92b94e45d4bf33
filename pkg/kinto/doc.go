// Package kinto provides types, interfaces, and helpers for working with
// a Kinto-compatible JSON document-store API.
//
// # Overview
//
// The kinto package defines the request-construction and
// response-interpretation pipeline: symbolic endpoints over the
// bucket/collection/record hierarchy, composable query modifiers
// (filter, sort, limit), generic resource descriptors with
// envelope-aware decoders, a paginated accumulator, and the typed error
// taxonomy. A concrete client built on this core is provided by the
// kintoclient package, which wires configuration, transport, and
// authentication. Most consumers should import kintoclient to construct
// a client and then work with its resource clients.
//
// Getting a client
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
//	  cli, err := kintoclient.New(ctx, &kinto.Config{ServerURL: "https://kinto.example.com/v1"})
//	  if err != nil { log.Fatal(err) }
//
//	  // List the records of a collection
//	  pager, err := cli.Records().List(ctx, "blog", "posts")
//	  if err != nil { log.Fatal(err) }
//	  _ = pager.Objects
//	}
//
// # Queries and pagination
//
// Request builders produce immutable request descriptions; modifiers
// return new values, so they compose in any order:
//
//	req := kinto.GetListRequest(client, res).
//	  WithFilter(kinto.Equal{Field: "status", Value: "published"}).
//	  WithSort("-last_modified").
//	  WithLimit(50)
//
// List responses decode into a Pager. A Pager with no next page yields
// no follow-up request; otherwise NextPageRequest targets the literal
// server-issued cursor URL and the fresh page merges into the
// accumulator:
//
//	for pager.HasNextPage() {
//	  req, _ := pager.NextPageRequest()
//	  // dispatch req, decode with pager.DecodeNextPage, then:
//	  pager = pager.Merge(next)
//	}
//
// # Errors
//
// Failures surface as one of three typed errors: *NetworkError (no
// interpretable HTTP response), *KintoError (documented error body on a
// failure status), and *ServerError (any body that does not match the
// expected shape, including decode failures on 2xx responses). Helpers
// such as IsNotFound, IsUnauthorized, and IsForbidden branch on common
// server errno values.
//
// # Interceptors and caching
//
// InterceptorChain hooks request dispatch and response delivery, and the
// Cache interface (memory, NATS KV, chained) lets the transport serve
// repeated GETs from a shared response cache.
package kinto
