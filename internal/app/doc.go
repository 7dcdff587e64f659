// Package app provides the orchestration layer for Pokédeck.
//
// # Overview
//
// This package wires together configuration, logging, the API client, the
// favorites store, and the collection engine, then hands everything to the
// UI. It is the composition root; business logic lives in the domain
// packages.
//
// # Initialization Order
//
//  1. Load configuration from ~/.config/pokedeck/config.toml (plus .env
//     and POKEDECK_* environment overrides)
//  2. Open the log file — the TUI owns the terminal, so logs never go to
//     stderr while the program runs
//  3. Build the API client from the configured base URL
//  4. Open the favorites store
//  5. Build the collection engine and apply the configured page size
//  6. Start the TUI and block until the user exits or the context cancels
//
// Fatal errors (bad config file, unparseable API URL) are returned from
// Run; everything downstream is recoverable and surfaced inside the UI.
package app
