// Package shared provides common utilities used across the geomemo SDK for
// Go. It includes cluster normalization, payer environment variable loading,
// RPC client construction, and keypair parsing helpers.
//
// This package is typically used internally by other SDK packages but is
// also available for direct use when building custom integrations with the
// Solana ledger.
//
// # Environment Variables
//
// The shared package supports loading payer credentials from environment
// variables or .env files. See the SDK README for the full list of supported
// variable names.
package shared
