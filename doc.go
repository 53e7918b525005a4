// Package mcprpc exposes the documented methods of a JavaScript worker class as MCP tools.
//
// The module has two halves. The extractor compiles JSDoc annotated source into a contract
// store (dist/docs.json). The bridge loads that store and serves each method of the default
// exported class as a tool over stdio, forwarding every call as one authenticated HTTP RPC to
// the remote endpoint and shaping the response into a tool result.
//
// Usage:
//
//	mcprpc docgen src/index.ts --out dist
//	mcprpc run my-worker https://my-worker.example.workers.dev .
//
// The endpoint package holds a reference implementation of the remote RPC surface.
package mcprpc
