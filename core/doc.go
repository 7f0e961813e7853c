// Package core provides the HyperCLOVA SDK client and types.
//
// The core package defines the provider-agnostic surface of the SDK:
// request and response types, the streaming contracts, the error
// taxonomy, and the retry policy. The wire-level implementation for
// CLOVA Studio lives in providers/clovastudio.
package core
