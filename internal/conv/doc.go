// Package conv normalizes loosely typed JSON-RPC values.
package conv
