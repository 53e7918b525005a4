package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/viant/jsonrpc"
	"github.com/viant/mcprpc/internal/conv"
)

type cancelledParams struct {
	RequestId interface{} `json:"requestId"`
	Reason    string      `json:"reason,omitempty"`
}

// Cancel cancels the context of an in-flight request
func (h *Handler) Cancel(ctx context.Context, notification *jsonrpc.Notification) *jsonrpc.Error {
	params := &cancelledParams{}
	if err := json.Unmarshal(notification.Params, params); err != nil {
		return jsonrpc.NewParsingError(fmt.Sprintf("failed to parse notification: %v", err), notification.Params)
	}
	if params.RequestId == nil {
		return jsonrpc.NewInvalidParamsError("invalid requestId", notification.Params)
	}
	h.cancelOperation(conv.AsKey(params.RequestId))
	return nil
}
