// Package rpc implements the HTTP client side of the remote RPC endpoint.
//
// Every call is a single authenticated POST of {"method","args"} to <base>/rpc; the
// response is returned undecoded so the caller can negotiate on its content type.
package rpc
