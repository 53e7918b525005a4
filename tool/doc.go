// Package tool maps contract methods to MCP tools.
//
// A Registry is built once from the default contract and validated at registration;
// lookups and argument ordering never mutate it, so it can be shared by concurrent calls.
package tool
