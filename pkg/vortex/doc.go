// Package vortex provides the client for the Vortex vector database HTTP
// API: database, table, index, and row operations over a retrying, pooled
// transport with bearer-token authentication.
//
// Core features:
//
//   - Config struct with builder-style helpers, validated once at client
//     construction
//   - Credential handling that never exposes the API key through logs,
//     errors, or formatted output
//   - Automatic retries with exponential backoff and jitter for idempotent
//     requests; non-idempotent writes are sent exactly once
//   - Typed operations for databases, tables, vector indexes, and rows,
//     including ANN search, batch search, and paginated scalar selects
//   - Local validation that rejects malformed requests before any network
//     call
//   - Optional zap logging, otel tracing, prometheus metrics, and an Fx
//     module for dependency-injected applications
//
// Basic usage:
//
//	cfg := vortex.NewConfig("my-account", os.Getenv("VORTEX_API_KEY"), "http://127.0.0.1:5287")
//	client, err := vortex.NewClient(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	err = client.CreateDatabase(ctx, "library", vortex.WithIfNotExists())
//
//	resp, err := client.SearchRows(ctx, &api.SearchRowsArgs{
//		Database: "library",
//		Table:    "books",
//		ANNS: api.AnnsSearchParams{
//			VectorField:  "embedding",
//			VectorFloats: queryVector,
//			Params:       api.HNSWSearchParams{Ef: 200, Limit: 10},
//		},
//	})
//
// Errors are typed: service rejections surface as *api.ServiceError with
// the HTTP status, service code, and request ID; local failures surface as
// *api.ValidationError, *ConfigError, or the transport error types. See
// AsServiceError, IsTimeout, and IsRetriesExhausted.
package vortex
