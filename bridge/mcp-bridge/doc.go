// Command mcp-bridge serves a compiled contract over MCP stdio without the docgen command.
//
//	mcp-bridge <name> <url> [workdir] [--store dist/docs.json] [--secret .dev.vars]
//
// Process diagnostics go to stderr, stdout carries protocol frames only.
package main
