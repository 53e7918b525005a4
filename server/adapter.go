package server

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/viant/jsonrpc"
	"github.com/viant/jsonrpc/transport"
	"github.com/viant/mcp-protocol/schema"
)

// Adapter drives a session handler in process, as a client would over a transport
type Adapter struct {
	handler *Handler
	seq     atomic.Int64
}

// Handler returns adapted session handler
func (a *Adapter) Handler() *Handler {
	return a.handler
}

// NextID returns the id that the next request will use
func (a *Adapter) NextID() int {
	return int(a.seq.Load()) + 1
}

func (a *Adapter) send(ctx context.Context, method string, params interface{}, result interface{}) error {
	data, err := json.Marshal(params)
	if err != nil {
		return err
	}
	envelope := fmt.Sprintf(`{"jsonrpc":%q,"id":%d,"method":%q,"params":%s}`, jsonrpc.Version, a.seq.Add(1), method, data)
	request := &jsonrpc.Request{}
	if err = json.Unmarshal([]byte(envelope), request); err != nil {
		return err
	}
	response := &jsonrpc.Response{}
	a.handler.Serve(ctx, request, response)
	if response.Error != nil {
		return response.Error
	}
	return json.Unmarshal(response.Result, result)
}

// Initialize initializes the session
func (a *Adapter) Initialize(ctx context.Context) (*schema.InitializeResult, error) {
	result := &schema.InitializeResult{}
	if err := a.send(ctx, schema.MethodInitialize, &schema.InitializeRequestParams{}, result); err != nil {
		return nil, err
	}
	a.handler.OnNotification(ctx, &jsonrpc.Notification{Method: schema.MethodNotificationInitialized})
	return result, nil
}

// Ping pings the session
func (a *Adapter) Ping(ctx context.Context) error {
	var result map[string]interface{}
	return a.send(ctx, schema.MethodPing, map[string]interface{}{}, &result)
}

// SetLevel sets the session logging level
func (a *Adapter) SetLevel(ctx context.Context, level string) error {
	var result map[string]interface{}
	return a.send(ctx, schema.MethodLoggingSetLevel, &setLevelParams{Level: level}, &result)
}

// ListTools lists tools
func (a *Adapter) ListTools(ctx context.Context) (*schema.ListToolsResult, error) {
	result := &schema.ListToolsResult{}
	if err := a.send(ctx, schema.MethodToolsList, map[string]interface{}{}, result); err != nil {
		return nil, err
	}
	return result, nil
}

// CallTool calls a tool returning the decoded result envelope
func (a *Adapter) CallTool(ctx context.Context, name string, arguments map[string]interface{}) (map[string]interface{}, error) {
	var result map[string]interface{}
	params := map[string]interface{}{"name": name, "arguments": arguments}
	if err := a.send(ctx, schema.MethodToolsCall, params, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// Cancel sends a cancellation notification for request id
func (a *Adapter) Cancel(ctx context.Context, id int) {
	params, _ := json.Marshal(&cancelledParams{RequestId: id, Reason: "cancelled by client"})
	a.handler.OnNotification(ctx, &jsonrpc.Notification{Method: schema.MethodNotificationCanceled, Params: params})
}

// Adapter creates an in process session using notifier for server notifications
func (s *Server) Adapter(ctx context.Context, notifier transport.Notifier) *Adapter {
	return &Adapter{handler: s.newHandler(ctx, notifier)}
}
