// Package constants centralizes defaults shared across the CLI.
//
// File permissions, the report filename, and the fixed key and nonce sizes the
// self-tests use live here so cmd/ and internal/ agree on them.
package constants
