// Package pokeapi provides an HTTP client for the Pokémon catalog API.
//
// # Overview
//
// This package defines the API client for communicating with the catalog
// server. It handles HTTP communication, JSON serialization, validation of
// outgoing drafts, and type-safe representation of catalog entries.
//
// # Architecture
//
// The package is split into three files:
//
//   - client.go: HTTP client implementation and request/response handling
//   - types.go: Data structures mirroring the catalog API schema
//   - draft.go: Editable entry drafts with create/edit validation rules
//
// # Client Usage
//
// Create a client using the base URL from configuration:
//
//	client, err := pokeapi.NewClient("http://localhost:3000")
//	if err != nil {
//		log.Fatalf("failed to create client: %v", err)
//	}
//
//	// Fetch one page of entries
//	page, err := client.List(ctx, 1, 20)
//	if err != nil {
//		log.Printf("list failed: %v", err)
//	}
//
//	// Fetch a single entry
//	entry, err := client.GetByID(ctx, 25)
//	if err != nil {
//		log.Printf("fetch failed: %v", err)
//	}
//
// # API Endpoints
//
// The client covers the full CRUD surface of the catalog API:
//
//   - GET /pokemons?page=N&limit=M: Paged listing with totals
//   - GET /pokemons/{id}: Single entry by id
//   - GET /pokemons/search/{name}: Single entry by exact name
//   - POST /pokemons: Create an entry from a draft
//   - PUT /pokemons/{id}: Replace an entry's editable fields
//   - DELETE /pokemons/{id}: Remove an entry
//
// All responses are decoded into strongly-typed structs.
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation and timeout control
//   - Set Accept: application/json (and Content-Type on writes)
//   - Include User-Agent: pokedeck/0.1 header
//   - Have a 10-second timeout (configurable via http.Client)
//   - Return wrapped errors with context about what failed
//
// # Error Handling
//
// Non-2xx responses are normalized into *APIError carrying the status code
// and the server's error message when the body contains one, or a generic
// "api returned status N" message otherwise. Network and decode failures
// are wrapped with fmt.Errorf context.
//
// # Drafts and Validation
//
// Mutations go through the Draft type rather than Pokemon. A draft carries
// only the editable fields; Validate enforces the creation rules (positive
// id, english name, one or two types, image URL, stats in [1,255]) and
// ValidateEdit the same rules minus the id. Validation runs locally before
// any network call so a doomed request never leaves the process.
//
// # URL Construction
//
// The client accepts several base URL formats:
//
//   - "localhost:3000" → http://localhost:3000
//   - "http://localhost:3000" → http://localhost:3000
//   - "" → http://localhost:3000 (default)
//
// The scheme defaults to "http://" if not specified. Any path, query, or
// fragment on the base URL is discarded.
//
// # Thread Safety
//
// The Client struct is safe for concurrent use. The underlying http.Client
// handles connection pooling and concurrent requests internally.
package pokeapi
