package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/viant/jsonrpc"
)

type setLevelParams struct {
	Level string `json:"level"`
}

// SetLevel handles the logging/setLevel method
func (h *Handler) SetLevel(ctx context.Context, request *jsonrpc.Request) (map[string]interface{}, *jsonrpc.Error) {
	params := &setLevelParams{}
	if err := json.Unmarshal(request.Params, params); err != nil {
		return nil, jsonrpc.NewInvalidParamsError(fmt.Sprintf("failed to parse: %v", err), request.Params)
	}
	level, ok := ParseLevel(params.Level)
	if !ok {
		return nil, jsonrpc.NewInvalidParamsError(fmt.Sprintf("invalid level: %v", params.Level), request.Params)
	}
	h.level.set(level)
	return map[string]interface{}{}, nil
}
