package server

import (
	"context"

	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
	"github.com/viant/mcp-protocol/schema"
	"github.com/viant/mcprpc/tool"
)

// Implementer serves tool operations for one session
type Implementer interface {
	Initialize(ctx context.Context, params *schema.InitializeRequestParams, result *schema.InitializeResult)

	ListTools(ctx context.Context) (*schema.ListToolsResult, *jsonrpc.Error)

	// CallTool reports call failures as error results, jsonrpc errors are reserved for protocol faults
	CallTool(ctx context.Context, params *schema.CallToolRequestParams) (*tool.Result, *jsonrpc.Error)
}

// NewImplementer creates an implementer for a session
type NewImplementer func(ctx context.Context, notifier transport.Notifier, logger *Logger) (Implementer, error)
