// Package bridge serves the methods of a compiled contract as MCP tools over stdio.
//
// At startup the bridge loads the contract store and the shared secret from explicit
// locations, builds a validated tool registry from the default contract and creates a
// scratch directory for image artifacts. Each tools/call then becomes one authenticated
// HTTP RPC whose response is shaped into a tool result by content type:
//
//	empty body     -> error result
//	non 2xx        -> error result with status and body
//	text/plain     -> text item
//	image/*        -> image item, optionally re-encoded
//	application/json -> envelope passed through, or wrapped into content items
//	anything else  -> error result with a preview
//
// A failed call never terminates the bridge.
package bridge
