package bridge

import (
	"context"
	"encoding/json"
	"image"
	"image/jpeg"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/mcprpc/endpoint"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestEndpoint(t *testing.T, started chan struct{}) *httptest.Server {
	jpegData := testImage(t, func(w io.Writer, img image.Image) error { return jpeg.Encode(w, img, &jpeg.Options{Quality: 100}) })
	registry := endpoint.NewRegistry()
	require.NoError(t, registry.Register("hello", func(ctx context.Context, args []json.RawMessage) (interface{}, error) {
		var name string
		if len(args) > 0 {
			_ = json.Unmarshal(args[0], &name)
		}
		return "hello " + name, nil
	}))
	require.NoError(t, registry.Register("generateImage", func(ctx context.Context, args []json.RawMessage) (interface{}, error) {
		return &endpoint.Raw{ContentType: "image/jpeg", Body: jpegData}, nil
	}))
	require.NoError(t, registry.Register("object", func(ctx context.Context, args []json.RawMessage) (interface{}, error) {
		return map[string]interface{}{"x": 1}, nil
	}))
	require.NoError(t, registry.Register("text", func(ctx context.Context, args []json.RawMessage) (interface{}, error) {
		panic("text is broken")
	}))
	require.NoError(t, registry.Register("empty", func(ctx context.Context, args []json.RawMessage) (interface{}, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	}))
	return httptest.NewServer(endpoint.New(testSecret, registry, zerolog.Nop()).Handler())
}

func TestBridge_Endpoint(t *testing.T) {
	started := make(chan struct{})
	httpServer := newTestEndpoint(t, started)
	defer httpServer.Close()
	service := newTestService(t, httpServer.URL)
	srv, err := service.Server()
	require.NoError(t, err)
	ctx := context.Background()
	notifier := &nopNotifier{}
	adapter := srv.Adapter(ctx, notifier)

	initialized, err := adapter.Initialize(ctx)
	require.NoError(t, err)
	assert.Equal(t, "worker", initialized.ServerInfo.Name)
	assert.Equal(t, Version, initialized.ServerInfo.Version)
	assert.NotNil(t, initialized.Capabilities.Tools)
	require.NotNil(t, initialized.Instructions)
	assert.Equal(t, "Worker tools.", *initialized.Instructions)
	require.NoError(t, adapter.Ping(ctx))

	listed, err := adapter.ListTools(ctx)
	require.NoError(t, err)
	require.Len(t, listed.Tools, len(service.Contract().Methods))
	generate := listed.Tools[1]
	assert.Equal(t, "generateImage", generate.Name)
	assert.Equal(t, "Generate an image.", *generate.Description)
	assert.Equal(t, []string{"prompt"}, generate.InputSchema.Required)
	assert.EqualValues(t, map[string]interface{}{"type": "number", "description": "The number of diffusion steps"}, generate.InputSchema.Properties["steps"])

	result, err := adapter.CallTool(ctx, "hello", map[string]interface{}{"name": "bob"})
	require.NoError(t, err)
	assert.EqualValues(t, map[string]interface{}{"content": []interface{}{map[string]interface{}{"type": "text", "text": "hello bob"}}}, result)

	result, err = adapter.CallTool(ctx, "object", nil)
	require.NoError(t, err)
	assert.EqualValues(t, map[string]interface{}{"content": []interface{}{map[string]interface{}{"x": float64(1)}}}, result)

	result, err = adapter.CallTool(ctx, "generateImage", map[string]interface{}{"prompt": "a cat"})
	require.NoError(t, err)
	content := result["content"].([]interface{})
	require.Len(t, content, 1)
	assert.Equal(t, "image", content[0].(map[string]interface{})["type"])
	assert.Equal(t, "image/jpeg", content[0].(map[string]interface{})["mimeType"])

	result, err = adapter.CallTool(ctx, "text", nil)
	require.NoError(t, err)
	assert.Equal(t, true, result["isError"])
	content = result["content"].([]interface{})
	require.Len(t, content, 2)
	assert.Equal(t, "text is broken", content[0].(map[string]interface{})["text"])

	result, err = adapter.CallTool(ctx, "xml", nil)
	require.NoError(t, err)
	assert.Equal(t, true, result["isError"])
	assert.Contains(t, result["content"].([]interface{})[0].(map[string]interface{})["text"], "endpoint has no method 'xml'")
}

func TestBridge_Cancel(t *testing.T) {
	started := make(chan struct{})
	httpServer := newTestEndpoint(t, started)
	defer httpServer.Close()
	service := newTestService(t, httpServer.URL)
	srv, err := service.Server()
	require.NoError(t, err)
	ctx := context.Background()
	adapter := srv.Adapter(ctx, &nopNotifier{})

	id := adapter.NextID()
	done := make(chan map[string]interface{}, 1)
	go func() {
		result, err := adapter.CallTool(ctx, "empty", nil)
		assert.NoError(t, err)
		done <- result
	}()
	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("call did not reach the endpoint")
	}
	adapter.Cancel(ctx, id)
	select {
	case result := <-done:
		assert.Equal(t, true, result["isError"])
		assert.Contains(t, result["content"].([]interface{})[0].(map[string]interface{})["text"], "context canceled")
	case <-time.After(5 * time.Second):
		t.Fatal("call was not cancelled")
	}
}
