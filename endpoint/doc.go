// Package endpoint provides a reference implementation of the remote RPC endpoint.
//
// It is meant for local development and for verifying the bridge: a bearer secret check,
// an explicit operation table validated at registration, result shaping and the
// error envelope the bridge passes through to the client.
package endpoint
